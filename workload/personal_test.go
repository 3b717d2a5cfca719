package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPersonalInfoTabularBasicRow(t *testing.T) {
	rows := [][]string{
		{"CEDULA", "1 APELLIDO", "2 APELLIDO", "NOMBRE", "ESCUELA"},
		{"12345678", "GOMEZ", "PEREZ", "ANA MARIA", "MEDICINA"},
	}
	info := extractPersonalInfoTabular(rows)
	assert.Equal(t, "12345678", info.NationalID)
	assert.Equal(t, "GOMEZ", info.LastName1)
	assert.Equal(t, "PEREZ", info.LastName2)
	assert.Equal(t, "ANA MARIA", info.FirstName)
	assert.Equal(t, "MEDICINA", info.AcademicUnit)
	assert.Equal(t, "", info.Department)
}

func TestExtractPersonalInfoTabularDepartmentColumn(t *testing.T) {
	rows := [][]string{
		{"CEDULA", "1 APELLIDO", "2 APELLIDO", "NOMBRE", "DEPARTAMENTO"},
		{"10015949", "FIGUEROA", "GUTIERREZ", "LUIS MAURICIO", "DEPARTAMENTO DE CIRUGIA"},
	}
	info := extractPersonalInfoTabular(rows)
	assert.Equal(t, "10015949", info.NationalID)
	assert.Equal(t, "DEPARTAMENTO DE CIRUGIA", info.Department)
	assert.Equal(t, "", info.AcademicUnit)
	assert.Equal(t, "LUIS MAURICIO FIGUEROA GUTIERREZ", info.FullName())
}

func TestExtractPersonalInfoTabularEmploymentRow(t *testing.T) {
	rows := [][]string{
		{"CEDULA", "1 APELLIDO", "2 APELLIDO", "NOMBRE"},
		{"12345678", "GOMEZ", "PEREZ", "ANA MARIA"},
		{""},
		{"PLANTA", "TITULAR", "TIEMPO COMPLETO", "DOCTORADO", "CC-100"},
	}
	info := extractPersonalInfoTabular(rows)
	assert.Equal(t, "PLANTA", info.EmploymentType)
	assert.Equal(t, "TITULAR", info.Category)
	assert.Equal(t, "TIEMPO COMPLETO", info.Dedication)
	assert.Equal(t, "DOCTORADO", info.LevelAttained)
	assert.Equal(t, "CC-100", info.CostCenter)
}

func TestExtractPersonalInfoTabularAnchorScan(t *testing.T) {
	rows := [][]string{
		{"CEDULA", "A", "B", "NOMBRE"},
		{"12345678", "A", "B", "ANA"},
		{""},
		{"PLANTA", "TITULAR", "TC", "DOCTORADO", "CC-100"},
		{"CARGO", "PROFESOR", "DEPARTAMENTO", "CIRUGIA"},
	}
	info := extractPersonalInfoTabular(rows)
	assert.Equal(t, "PROFESOR", info.Position)
	assert.Equal(t, "CIRUGIA", info.Department)
}

func TestExtractPersonalInfoTabularAnchorScanNeverOverwrites(t *testing.T) {
	rows := [][]string{
		{"CEDULA", "A", "B", "NOMBRE", "MEDICINA"},
		{"12345678", "A", "B", "ANA", "MEDICINA"},
		{""},
		{"PLANTA", "TITULAR", "TC", "DOCTORADO", "CC-100"},
		{"DEPARTAMENTO", "CIRUGIA"},
	}
	info := extractPersonalInfoTabular(rows)
	assert.Equal(t, "MEDICINA", info.Department)
}

func TestExtractPersonalInfoTabularTooFewRows(t *testing.T) {
	info := extractPersonalInfoTabular([][]string{{"CEDULA"}})
	assert.Equal(t, PersonalInfo{}, info)
}

func TestApplyPlainTextFallbackFillsEmptyOnly(t *testing.T) {
	info := PersonalInfo{EmploymentType: "PLANTA"}
	text := "VINCULACION = CATEDRA\nCATEGORIA: ASOCIADO\nDEDICACION = TIEMPO COMPLETO\nNIVEL ALCANZADO: MAESTRIA"
	applyPlainTextFallback(text, &info)
	assert.Equal(t, "PLANTA", info.EmploymentType)
	assert.Equal(t, "ASOCIADO", info.Category)
	assert.Equal(t, "TIEMPO COMPLETO", info.Dedication)
	assert.Equal(t, "MAESTRIA", info.LevelAttained)
}

func TestApplyPlainTextFallbackRejectsHeaderEcho(t *testing.T) {
	info := PersonalInfo{}
	text := "CATEGORIA = CATEGORIA"
	applyPlainTextFallback(text, &info)
	assert.Equal(t, "", info.Category)
}

func TestApplyPlainTextFallbackRejectsOverlongValue(t *testing.T) {
	info := PersonalInfo{}
	long := ""
	for i := 0; i < 150; i++ {
		long += "x"
	}
	text := "CATEGORIA = " + long
	applyPlainTextFallback(text, &info)
	assert.Equal(t, "", info.Category)
}

func TestAdditionalPersonalInfo(t *testing.T) {
	headerRaw := []string{"VINCULACION", "CATEGORIA", "DEDICACION", "NIVEL ALCANZADO"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"CATEDRA", "ASOCIADO", "MEDIO TIEMPO", "MAESTRIA"}
	info := additionalPersonalInfo(headerNorm, row)
	assert.Equal(t, "CATEDRA", info.EmploymentType)
	assert.Equal(t, "ASOCIADO", info.Category)
	assert.Equal(t, "MEDIO TIEMPO", info.Dedication)
	assert.Equal(t, "MAESTRIA", info.LevelAttained)
}
