package workload

import "strings"

// headerAnchorKeywords are the keywords strategy 2 scans for among a
// table's first three rows.
var headerAnchorKeywords = []string{
	"CODIGO", "NOMBRE", "HORAS", "APROBADO", "ANTEPROYECTO", "PROYECTO",
	"PROPUESTA", "ESTUDIANTE", "TIPO DE COMISION", "CARGO", "PARTICIPACION",
}

// resolvedHeader is the Header Resolver's output: the header row's index,
// its raw cell text, and the normalized (uppercased, trimmed, collapsed)
// form used by the classifier and field normalisers.
type resolvedHeader struct {
	RowIndex int
	Raw      []string
	Norm     []string
}

// resolveHeader locates the header row within a table's row sequence using
// an ordered strategy: a background-colour hint row first, then a
// keyword-anchor row among the first three, then row 0 as the fallback.
func resolveHeader(rowHTML []string, rowCells [][]string) resolvedHeader {
	if idx, ok := backgroundHintRow(rowHTML, rowCells); ok {
		return newResolvedHeader(idx, rowCells[idx])
	}
	if idx, ok := keywordAnchorRow(rowCells); ok {
		return newResolvedHeader(idx, rowCells[idx])
	}
	if len(rowCells) == 0 {
		return resolvedHeader{}
	}
	return newResolvedHeader(0, rowCells[0])
}

func newResolvedHeader(idx int, raw []string) resolvedHeader {
	norm := make([]string, len(raw))
	for i, c := range raw {
		norm[i] = normalizeHeader(c)
	}
	return resolvedHeader{RowIndex: idx, Raw: raw, Norm: norm}
}

// backgroundHintRow implements strategy 1: the first row whose HTML
// carries a bgcolor/background hint and has at least one cell of length > 2.
func backgroundHintRow(rowHTML []string, rowCells [][]string) (int, bool) {
	for i, html := range rowHTML {
		if !hasBackgroundHint(html) {
			continue
		}
		if anyCellLongerThan(rowCells[i], 2) {
			return i, true
		}
	}
	return 0, false
}

func hasBackgroundHint(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "bgcolor") || strings.Contains(lower, "background")
}

func anyCellLongerThan(cells []string, n int) bool {
	for _, c := range cells {
		if len(c) > n {
			return true
		}
	}
	return false
}

// keywordAnchorRow implements strategy 2: among the first three rows,
// the first whose normalized cells contain any anchor keyword.
func keywordAnchorRow(rowCells [][]string) (int, bool) {
	limit := len(rowCells)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		joined := normalizeHeader(strings.Join(rowCells[i], " "))
		if containsAnyFolded(joined, headerAnchorKeywords...) {
			return i, true
		}
	}
	return 0, false
}
