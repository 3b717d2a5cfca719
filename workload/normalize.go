package workload

import (
	"regexp"
	"strconv"
	"strings"
)

// formatHours renders an hours value for EmittedRow.Fields: a decimal
// point, one digit of precision, no trailing noise.
func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 1, 64)
}

// headerKeywordSet is the negative list used by every "header-echo" guard:
// a cell whose text literally equals one of these can never be stored as
// the value of the field that keyword names, because that almost always
// means the columns drifted out of alignment.
var headerKeywordSet = map[string]bool{}

func init() {
	for _, kw := range []string{
		"CEDULA", "DOCUMENTO", "DOCENTES", "IDENTIFICACION",
		"APELLIDO", "APELLIDOS", "NOMBRE", "1 APELLIDO", "2 APELLIDO",
		"VINCULACION", "CATEGORIA", "DEDICACION", "NIVEL ALCANZADO",
		"UNIDAD ACADEMICA", "DEPARTAMENTO", "CARGO", "ESCUELA", "DPTO",
		"CENTRO COSTO", "CODIGO", "GRUPO", "TIPO", "CREDITOS", "CREDITO",
		"FRECUENCIA", "INTENSIDAD", "HORAS", "SEMESTRE", "PORC", "TOTAL",
		"ESTUDIANTE", "TESIS", "PLAN", "TITULO", "PROYECTO", "ANTEPROYECTO",
		"APROBADO", "APROBADO POR", "PARTICIPACION", "PARTICIPACION EN",
		"TIPO DE COMISION", "DESCRIPCION DEL CARGO", "CODIGO ESTUDIANTE",
		"COD PLAN",
	} {
		headerKeywordSet[normalizeHeader(kw)] = true
	}
}

// isHeaderEcho reports whether value, once normalized and accent-folded,
// equals a known header keyword.
func isHeaderEcho(value string) bool {
	return headerKeywordSet[foldAccents(normalizeHeader(value))]
}

// findColumn returns the index of the first header cell matching want, or
// -1. want receives the normalized header text with accents folded away, so
// predicates match both spellings of a drifting header.
func findColumn(headerNorm []string, want func(string) bool) int {
	for i, h := range headerNorm {
		if want(foldAccents(h)) {
			return i
		}
	}
	return -1
}

// cellAt safely reads row[idx], guarding against header/row length drift
// (a frequent portal quirk: a row with fewer physical cells than the
// header after colspan expansion).
func cellAt(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// guardedValue returns the cell at idx unless it echoes a header keyword,
// in which case it is treated as absent.
func guardedValue(row []string, idx int) string {
	v, ok := cellAt(row, idx)
	if !ok || isHeaderEcho(v) {
		return ""
	}
	return v
}

var hoursExcludedMarkers = []string{"PORC", "%", "CRED", "TOTAL"}

// hoursColumn locates the HOURS_PER_TERM column: a header that
// contains HORAS and none of the excluded markers (PORC/%, CRED, TOTAL).
// Percentage, credit, and total columns also say HORAS on many cohorts,
// so the exclusion list is what actually picks the right one.
func hoursColumn(headerNorm []string) int {
	return findColumn(headerNorm, func(h string) bool {
		return strings.Contains(h, "HORAS") && !hasAny(h, hoursExcludedMarkers...)
	})
}

var hoursValuePattern = regexp.MustCompile(`^\d+([.,]\d+)?$`)

// parseHoursValue converts a raw HOURS_PER_TERM cell to a non-negative,
// one-decimal float. Anything that isn't a bare (optionally decimal)
// number (percentages, dashes, blanks, negatives, stray text) normalizes
// to 0.0 rather than erroring.
func parseHoursValue(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if !hoursValuePattern.MatchString(trimmed) {
		return 0.0, false
	}
	normalized := strings.Replace(trimmed, ",", ".", 1)
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0.0, false
	}
	return roundToTenth(v), true
}

func roundToTenth(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

// extractHoursPerTerm finds and parses the HOURS_PER_TERM column for a row.
// The bool return is false when the value had to be recovered to 0.0,
// letting the caller log a FieldMalformed diagnostic at DEBUG.
func extractHoursPerTerm(headerNorm []string, row []string) (float64, bool) {
	idx := hoursColumn(headerNorm)
	if idx < 0 {
		return 0.0, true
	}
	raw, ok := cellAt(row, idx)
	if !ok {
		return 0.0, true
	}
	v, clean := parseHoursValue(raw)
	return v, clean
}

var trailingPercentSuffix = regexp.MustCompile(`\s*\d+%\s*$`)

// cleanCourseName strips a defensive trailing "NN%" suffix (evidence of a
// misaligned PORC column bleeding into the name cell) and flags names that
// come out suspiciously short.
func cleanCourseName(raw string) (name string, short bool) {
	name = trailingPercentSuffix.ReplaceAllString(raw, "")
	name = collapseWhitespace(name)
	return name, len(name) > 0 && len(name) < 4
}

// rawColumnMap builds the header-indexed free-form detail map preserved
// alongside the canonical slots, required by the Row Emitter.
func rawColumnMap(headerRaw, row []string) map[string]string {
	m := make(map[string]string, len(headerRaw))
	for i, h := range headerRaw {
		v, ok := cellAt(row, i)
		if !ok {
			continue
		}
		key := collapseWhitespace(h)
		if key == "" {
			continue
		}
		m[key] = v
	}
	return m
}

// normalizeCourseRow maps a header-indexed course row into the canonical
// CourseActivity slots: CODE, GROUP, MODALITY, NAME, CREDITS,
// PERCENTAGE, FREQUENCY, INTENSITY, HOURS_PER_TERM.
func normalizeCourseRow(headerRaw, headerNorm, row []string) (CourseActivity, []string) {
	var warnings []string

	codeIdx := findColumn(headerNorm, func(h string) bool {
		return strings.Contains(h, "CODIGO") && !strings.Contains(h, "CODIGO ESTUDIANTE")
	})
	groupIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "GRUPO") })
	modalityIdx := findColumn(headerNorm, func(h string) bool {
		return h == "TIPO" || (strings.Contains(h, "TIPO") && !strings.Contains(h, "TIPO DE COMISION"))
	})
	nameIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "NOMBRE") })
	creditsIdx := findColumn(headerNorm, func(h string) bool { return hasAny(h, "CREDITOS", "CREDITO", "CRED") })
	percentIdx := findColumn(headerNorm, func(h string) bool { return hasAny(h, "PORC", "%") })
	freqIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "FRECUENCIA") })
	intensityIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "INTENSIDAD") })

	rawName := guardedValue(row, nameIdx)
	name, short := cleanCourseName(rawName)
	if short {
		warnings = append(warnings, "course name suspiciously short after cleanup: "+name)
	}

	hours, clean := extractHoursPerTerm(headerNorm, row)
	if !clean {
		warnings = append(warnings, "HOURS_PER_TERM recovered to 0.0")
	}

	act := CourseActivity{
		Code:         guardedValue(row, codeIdx),
		Group:        guardedValue(row, groupIdx),
		Modality:     guardedValue(row, modalityIdx),
		Name:         name,
		Credits:      guardedValue(row, creditsIdx),
		Percentage:   guardedValue(row, percentIdx),
		Frequency:    guardedValue(row, freqIdx),
		Intensity:    guardedValue(row, intensityIdx),
		HoursPerTerm: hours,
		Raw:          rawColumnMap(headerRaw, row),
	}
	return act, warnings
}

// normalizeThesisRow maps a header-indexed row classified thesis_direction.
func normalizeThesisRow(headerRaw, headerNorm, row []string) (ThesisActivity, []string) {
	var warnings []string
	studentIdx := findColumn(headerNorm, func(h string) bool {
		return strings.Contains(h, "CODIGO ESTUDIANTE") || strings.Contains(h, "ESTUDIANTE")
	})
	planIdx := findColumn(headerNorm, func(h string) bool { return hasAny(h, "COD PLAN", "PLAN") })
	titleIdx := findColumn(headerNorm, func(h string) bool { return hasAny(h, "TITULO", "TESIS") })

	hours, clean := extractHoursPerTerm(headerNorm, row)
	if !clean {
		warnings = append(warnings, "HOURS_PER_TERM recovered to 0.0")
	}

	act := ThesisActivity{
		StudentCode:  guardedValue(row, studentIdx),
		PlanCode:     guardedValue(row, planIdx),
		ThesisTitle:  guardedValue(row, titleIdx),
		HoursPerTerm: hours,
		Raw:          rawColumnMap(headerRaw, row),
	}
	return act, warnings
}

// normalizeResearchRow maps a header-indexed row classified research.
func normalizeResearchRow(headerRaw, headerNorm, row []string) (ResearchActivity, []string) {
	var warnings []string
	codeIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "CODIGO") })
	approvedIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "APROBADO") })
	projectIdx := findColumn(headerNorm, func(h string) bool {
		return hasAny(h, "NOMBRE DEL PROYECTO", "NOMBRE DEL ANTEPROYECTO", "NOMBRE")
	})

	hours, clean := extractHoursPerTerm(headerNorm, row)
	if !clean {
		warnings = append(warnings, "HOURS_PER_TERM recovered to 0.0")
	}

	act := ResearchActivity{
		Code:         guardedValue(row, codeIdx),
		ApprovedBy:   guardedValue(row, approvedIdx),
		ProjectName:  guardedValue(row, projectIdx),
		HoursPerTerm: hours,
		Raw:          rawColumnMap(headerRaw, row),
	}
	return act, warnings
}

// normalizeGenericRow maps a header-indexed row for the free-form
// categories (extension, intellectual, administrative, complementary,
// commission), preserving category-specific fields verbatim in Raw.
func normalizeGenericRow(subtype GenericSubtype, headerRaw, headerNorm, row []string) (GenericActivity, []string) {
	var warnings []string
	nameIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "NOMBRE") })
	if nameIdx < 0 && subtype == SubtypeAdministrative {
		nameIdx = findColumn(headerNorm, func(h string) bool {
			return strings.Contains(h, "CARGO") && !strings.Contains(h, "DESCRIPCION")
		})
	}
	descIdx := findColumn(headerNorm, func(h string) bool { return strings.Contains(h, "DESCRIPCION") })
	kindIdx := findColumn(headerNorm, subtypeKindColumn(subtype))

	hours, clean := extractHoursPerTerm(headerNorm, row)
	if !clean {
		warnings = append(warnings, "HOURS_PER_TERM recovered to 0.0")
	}

	act := GenericActivity{
		Subtype:      subtype,
		Kind:         guardedValue(row, kindIdx),
		Name:         guardedValue(row, nameIdx),
		Description:  guardedValue(row, descIdx),
		HoursPerTerm: hours,
		Raw:          rawColumnMap(headerRaw, row),
	}
	return act, warnings
}

// subtypeKindColumn picks the header carrying a generic row's own sub-kind:
// TIPO DE COMISION for commissions, PARTICIPACION EN for complementary
// activities, plain TIPO for the rest. Administrative tables have no
// sub-kind column.
func subtypeKindColumn(subtype GenericSubtype) func(string) bool {
	switch subtype {
	case SubtypeCommission:
		return func(h string) bool { return strings.Contains(h, "TIPO DE COMISION") }
	case SubtypeComplementary:
		return func(h string) bool { return strings.Contains(h, "PARTICIPACION EN") }
	case SubtypeAdministrative:
		return func(string) bool { return false }
	default:
		return func(h string) bool {
			return strings.Contains(h, "TIPO") && !strings.Contains(h, "TIPO DE COMISION")
		}
	}
}
