package workload

import (
	"regexp"
	"strings"
)

// extractPersonalInfoTabular reads the positional rows of a table the
// classifier labelled personal_info. rows is the row-by-row cell sequence;
// row 0 is assumed to be the header.
func extractPersonalInfoTabular(rows [][]string) PersonalInfo {
	var info PersonalInfo
	if len(rows) < 2 {
		return info
	}

	basic := rows[1]
	info.NationalID = at(basic, 0)
	info.LastName1 = at(basic, 1)
	info.LastName2 = at(basic, 2)
	info.FirstName = at(basic, 3)

	// The fifth column drifts between cohorts: some pages label it UNIDAD
	// ACADEMICA or ESCUELA, others DEPARTAMENTO. The header cell decides
	// where the value lands; with no usable header it fills both.
	unit := at(basic, 4)
	unitHeader := foldAccents(normalizeHeader(at(rows[0], 4)))
	switch {
	case hasAny(unitHeader, "DEPARTAMENTO", "DPTO"):
		info.Department = unit
	case hasAny(unitHeader, "UNIDAD", "ESCUELA"):
		info.AcademicUnit = unit
	default:
		info.AcademicUnit = unit
		info.Department = unit
	}

	if len(rows) >= 4 {
		employment := rows[3]
		info.EmploymentType = at(employment, 0)
		info.Category = at(employment, 1)
		info.Dedication = at(employment, 2)
		info.LevelAttained = at(employment, 3)
		info.CostCenter = at(employment, 4)
	}

	last := len(rows)
	if last > 10 {
		last = 10
	}
	for i := 4; i < last; i++ {
		scanAnchorPairs(rows[i], &info)
	}

	return info
}

func at(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// scanAnchorPairs is the rows 4-9 fallback scan: every adjacent
// (cell_i, cell_{i+1}) pair is checked against the CARGO / DEPARTAMENTO|DPTO
// / ESCUELA anchors, filling only fields still unset.
func scanAnchorPairs(row []string, info *PersonalInfo) {
	for i := 0; i+1 < len(row); i++ {
		anchor := normalizeHeader(row[i])
		value := row[i+1]
		switch {
		case info.Position == "" && anchor == "CARGO":
			info.Position = value
		case info.Department == "" && hasAny(anchor, "DEPARTAMENTO", "DPTO"):
			info.Department = value
		case info.AcademicUnit == "" && anchor == "ESCUELA":
			info.AcademicUnit = value
		}
	}
}

var plainTextFields = []struct {
	pattern *regexp.Regexp
	assign  func(*PersonalInfo, string)
}{
	{regexp.MustCompile(`(?i)VINCULACI[OÓ]N\s*[=:]\s*([^\n\r]+)`), func(p *PersonalInfo, v string) { p.EmploymentType = v }},
	{regexp.MustCompile(`(?i)CATEGOR[IÍ]A\s*[=:]\s*([^\n\r]+)`), func(p *PersonalInfo, v string) { p.Category = v }},
	{regexp.MustCompile(`(?i)DEDICACI[OÓ]N\s*[=:]\s*([^\n\r]+)`), func(p *PersonalInfo, v string) { p.Dedication = v }},
	{regexp.MustCompile(`(?i)NIVEL ALCANZADO\s*[=:]\s*([^\n\r]+)`), func(p *PersonalInfo, v string) { p.LevelAttained = v }},
}

// applyPlainTextFallback is the plain-text fallback stage: it only ever
// fills fields the tabular stage left empty, and only with values that pass
// the same sanity checks the tabular stage would have applied.
func applyPlainTextFallback(pageText string, info *PersonalInfo) {
	for _, f := range plainTextFields {
		m := f.pattern.FindStringSubmatch(pageText)
		if m == nil {
			continue
		}
		v := collapseWhitespace(m[1])
		if v == "" || len(v) >= 100 || isHeaderEcho(v) {
			continue
		}
		probe := PersonalInfo{}
		f.assign(&probe, v)
		mergeIfEmpty(info, probe)
	}
}

// mergeIfEmpty copies every non-empty field of src into dst wherever dst's
// corresponding field is still empty. Only the four plain-text-fallback
// fields are ever non-empty in src, so this never clobbers a tabular value.
func mergeIfEmpty(dst *PersonalInfo, src PersonalInfo) {
	if dst.EmploymentType == "" {
		dst.EmploymentType = src.EmploymentType
	}
	if dst.Category == "" {
		dst.Category = src.Category
	}
	if dst.Dedication == "" {
		dst.Dedication = src.Dedication
	}
	if dst.LevelAttained == "" {
		dst.LevelAttained = src.LevelAttained
	}
}

// additionalPersonalInfo reads the table the classifier labelled
// additional_personal_info: a looser table that, unlike personal_info,
// carries no CEDULA column, keyed instead by header keyword per cell.
func additionalPersonalInfo(headerNorm []string, row []string) PersonalInfo {
	var info PersonalInfo
	for i, h := range headerNorm {
		v := guardedValue(row, i)
		if v == "" {
			continue
		}
		switch {
		case strings.Contains(h, "VINCULACION"):
			info.EmploymentType = v
		case strings.Contains(h, "CATEGORIA"):
			info.Category = v
		case strings.Contains(h, "DEDICACION"):
			info.Dedication = v
		case strings.Contains(h, "NIVEL ALCANZADO"):
			info.LevelAttained = v
		}
	}
	return info
}
