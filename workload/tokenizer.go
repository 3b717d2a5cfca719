package workload

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseDocument loads html through goquery's tolerant HTML5 parser, the
// component that actually absorbs the portal's malformed nesting: unmatched
// or misnested tags are silently corrected rather than aborting the scan.
func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// tables returns every <table> element in source order, including tables
// nested inside other tables' cells. The portal's legacy markup nests
// tables routinely, and downstream classification is expected to see
// each one as its own candidate.
func tables(doc *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		out = append(out, t)
	})
	return out
}

// rows returns every <tr> reachable from a table, in source order. Rows
// belonging to a table nested inside one of this table's cells are included
// too (a naive tag scan over this era's HTML cannot distinguish them, and
// the classifier's header/keyword rules are robust to the duplication).
func rows(table *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	table.Find("tr").Each(func(_ int, r *goquery.Selection) {
		out = append(out, r)
	})
	return out
}

// cells returns the logical cell-text sequence for a row: one cellText per
// <td>/<th>, repeated colspan times so logical column indices line up
// across rows whose physical span counts differ.
func cells(row *goquery.Selection) []string {
	var out []string
	row.Find("td, th").Each(func(_ int, c *goquery.Selection) {
		html, _ := c.Html()
		text := cellText(html)
		span := colspanOf(c)
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

// colspanOf reads a cell's colspan attribute, defaulting to 1 for absent,
// malformed, or non-positive values.
func colspanOf(cell *goquery.Selection) int {
	raw, ok := cell.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// rawHTML returns a row's raw outer HTML, used by the background-hint check
// in the Header Resolver.
func rawHTML(sel *goquery.Selection) string {
	h, _ := goquery.OuterHtml(sel)
	return h
}
