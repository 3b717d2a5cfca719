package workload

import "strings"

// TableClass is the Table Classifier's verdict for one source table.
type TableClass string

const (
	ClassPersonalInfo           TableClass = "personal_info"
	ClassAdditionalPersonalInfo TableClass = "additional_personal_info"
	ClassThesisDirection        TableClass = "thesis_direction"
	ClassResearch               TableClass = "research"
	ClassCourses                TableClass = "undergraduate_or_graduate_courses"
	ClassIntellectualOrArtistic TableClass = "intellectual_or_artistic"
	ClassExtension              TableClass = "extension"
	ClassAdministrative         TableClass = "administrative"
	ClassComplementary          TableClass = "complementary"
	ClassCommission             TableClass = "commission"
	ClassIgnore                 TableClass = "ignore"
)

// classifyTable assigns a table to one class given its normalized header
// vector (joined into one string for substring matching, the way the
// portal's column-naming drifts between cohorts) and the table's full text
// (needed by the research and intellectual rules, which key off prose
// preceding the data rows, not just the header). Decision order matters:
// first match wins.
func classifyTable(headerNorm []string, tableText string) TableClass {
	h := foldAccents(strings.Join(headerNorm, " "))
	text := foldAccents(normalizeHeader(stripTags(decodeEntities(tableText))))

	if hasAny(h, "CEDULA", "DOCUMENTO", "DOCENTES", "IDENTIFICACION") && hasAny(h, "APELLIDO", "APELLIDOS", "NOMBRE") {
		return ClassPersonalInfo
	}
	if !strings.Contains(h, "CEDULA") && hasAny(h, "VINCULACION", "CATEGORIA", "DEDICACION", "NIVEL ALCANZADO") {
		return ClassAdditionalPersonalInfo
	}

	researchWithoutStudent := hasAny(h, "ANTEPROYECTO", "PROPUESTA DE INVESTIGACION") && !strings.Contains(h, "ESTUDIANTE")
	isThesis := strings.Contains(h, "CODIGO ESTUDIANTE") ||
		(strings.Contains(h, "ESTUDIANTE") && hasAny(h, "PLAN", "TITULO", "TESIS")) ||
		(strings.Contains(h, "DIRECCION") && strings.Contains(h, "TESIS"))
	if isThesis && !researchWithoutStudent {
		return ClassThesisDirection
	}

	if strings.Contains(text, "ACTIVIDADES DE INVESTIGACION") &&
		hasAny(text, "CODIGO", "APROBADO POR") &&
		hasAny(text, "NOMBRE DEL PROYECTO", "NOMBRE DEL ANTEPROYECTO") &&
		strings.Contains(text, "HORAS SEMESTRE") &&
		!strings.Contains(h, "TIPO") {
		return ClassResearch
	}

	hasBareCodigo := strings.Contains(h, "CODIGO") && !strings.Contains(h, "CODIGO ESTUDIANTE")
	if hasBareCodigo &&
		hasAny(h, "NOMBRE DE ASIGNATURA", "TIPO", "GRUPO") &&
		hasAny(h, "HORAS", "SEMESTRE") &&
		!strings.Contains(h, "ESTUDIANTE") && !strings.Contains(h, "TESIS") {
		return ClassCourses
	}

	if hasAny(text, "ACTIVIDADES INTELECTUALES", "ACTIVIDADES ARTISTICAS") ||
		(strings.Contains(h, "APROBADO") && strings.Contains(h, "TIPO") && strings.Contains(h, "NOMBRE")) {
		return ClassIntellectualOrArtistic
	}

	if strings.Contains(h, "TIPO") && strings.Contains(h, "NOMBRE") &&
		hasAny(h, "HORAS", "SEMESTRE") && !strings.Contains(h, "APROBADO") {
		return ClassExtension
	}

	if strings.Contains(h, "CARGO") && strings.Contains(h, "DESCRIPCION DEL CARGO") {
		return ClassAdministrative
	}

	if strings.Contains(h, "PARTICIPACION EN") {
		return ClassComplementary
	}

	if strings.Contains(h, "TIPO DE COMISION") {
		return ClassCommission
	}

	return ClassIgnore
}

func hasAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
