package workload

import (
	"regexp"
	"strings"
)

// Keyword sets for the undergraduate/graduate discriminator. Keywords win
// over any code analysis, and graduate keywords win over undergraduate ones.
var graduateKeywords = []string{
	"MAESTRIA", "MAGISTER", "MASTER", "MAESTR", "DOCTORADO", "DOCTORAL",
	"PHD", "DOCTOR", "ESPECIALIZA", "ESPECIALIZACION", "POSTGRADO",
	"POSGRADO", "POST-GRADO", "POST GRADO", "POSTGRADUADO", "POSGRADUADO",
}

var undergradKeywords = []string{
	"LICENCIATURA", "INGENIERIA", "BACHILLERATO", "TECNOLOGIA",
	"PROFESIONAL", "CARRERA", "PREGRADO", "PRIMER CICLO", "UNDERGRADUATE",
	"TECNICO",
}

// Numeric code families. The portal assigns graduate offerings to a handful
// of numeric ranges; everything is matched against the code's digit stem
// (letters stripped), so "618050C" reasons as 618050.
var graduateCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^61[7-9]\d{2,}$`),
	regexp.MustCompile(`^[7-9]\d{2,}$`),
	regexp.MustCompile(`^0[7-9]\d{2,}$`),
	regexp.MustCompile(`^62[7-9]\d{2,}$`),
}

var undergradCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[1-5]\d{3,}$`),
	regexp.MustCompile(`^0[1-6]\d{2,}$`),
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// courseLevel is the undergraduate/graduate discriminator. It reasons over a
// course row's own fields (code, name, modality, group), never over
// surrounding table text: one MAESTRIA row must not drag its siblings along.
// The ladder is strict, first rule fires:
//
//  1. graduate keywords in name/modality/group
//  2. undergraduate keywords in name/modality/group
//  3. numeric code families over the digit stem
//  4. letter-prefixed codes (M/D/E/P graduate, L/I/T/B undergraduate)
//  5. default undergraduate
func courseLevel(code, name, modality, group string) string {
	rowText := normalizeHeader(name + " " + modality + " " + group)
	if containsAnyFolded(rowText, graduateKeywords...) {
		return CategoryPostgrado
	}
	if containsAnyFolded(rowText, undergradKeywords...) {
		return CategoryPregrado
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	stem := nonDigits.ReplaceAllString(code, "")
	for _, p := range graduateCodePatterns {
		if p.MatchString(stem) {
			return CategoryPostgrado
		}
	}
	for _, p := range undergradCodePatterns {
		if p.MatchString(stem) {
			return CategoryPregrado
		}
	}
	if len(stem) >= 2 && stem[0] == '6' {
		switch stem[1] {
		case '0', '3', '4', '5', '6', '9':
			return CategoryPregrado
		}
	}

	if len(code) >= 1 {
		switch code[0] {
		case 'M', 'D', 'E', 'P':
			return CategoryPostgrado
		case 'L', 'I', 'T', 'B':
			return CategoryPregrado
		}
	}

	return CategoryPregrado
}
