package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHoursValue(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
	}{
		{"48", 48.0},
		{"48.0", 48.0},
		{"48,5", 48.5},
		{"2%", 0.0},
		{"", 0.0},
		{"–", 0.0},
		{"-5", 0.0},
		{"45.00", 45.0},
		{"80.00", 80.0},
		{"32", 32.0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, _ := parseHoursValue(tt.in)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestHoursColumnExcludesPercentCreditTotal(t *testing.T) {
	header := []string{"CODIGO", "HORAS SEMESTRE", "PORC", "TOTAL HORAS"}
	assert.Equal(t, 1, hoursColumn(header))
}

func TestHoursColumnExactMatch(t *testing.T) {
	header := []string{"HORAS SEMESTRE"}
	assert.Equal(t, 0, hoursColumn(header))
}

func TestHoursColumnAbsent(t *testing.T) {
	header := []string{"CODIGO", "NOMBRE"}
	assert.Equal(t, -1, hoursColumn(header))
}

func TestCleanCourseNameStripsPercentSuffix(t *testing.T) {
	name, short := cleanCourseName("CIRUGIA PEDIATRICA AVAN 1%")
	assert.Equal(t, "CIRUGIA PEDIATRICA AVAN", name)
	assert.False(t, short)
}

func TestCleanCourseNameFlagsShortResidual(t *testing.T) {
	name, short := cleanCourseName("CL")
	assert.Equal(t, "CL", name)
	assert.True(t, short)
}

func TestIsHeaderEcho(t *testing.T) {
	assert.True(t, isHeaderEcho("vinculacion"))
	assert.True(t, isHeaderEcho("CEDULA"))
	assert.False(t, isHeaderEcho("FIGUEROA"))
}

func TestNormalizeCourseRowS1(t *testing.T) {
	headerRaw := []string{"CODIGO", "GRUPO", "TIPO", "NOMBRE DE ASIGNATURA", "HORAS SEMESTRE", "PORC"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"618050", "1", "CL", "CIRUGIA PEDIATRICA AVAN", "45.00", "1%"}

	act, warns := normalizeCourseRow(headerRaw, headerNorm, row)
	assert.Empty(t, warns)
	assert.Equal(t, "618050", act.Code)
	assert.Equal(t, "1", act.Group)
	assert.Equal(t, "CL", act.Modality)
	assert.Equal(t, "CIRUGIA PEDIATRICA AVAN", act.Name)
	assert.Equal(t, 45.0, act.HoursPerTerm)
	assert.Equal(t, "1%", act.Percentage)
}

func TestNormalizeThesisRowS5(t *testing.T) {
	headerRaw := []string{"CODIGO ESTUDIANTE", "COD PLAN", "TITULO DE LA TESIS", "HORAS SEMESTRE"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"201956789", "MA-SAL", "Efecto de X en Y", "32"}

	act, warns := normalizeThesisRow(headerRaw, headerNorm, row)
	assert.Empty(t, warns)
	assert.Equal(t, "201956789", act.StudentCode)
	assert.Equal(t, "MA-SAL", act.PlanCode)
	assert.Equal(t, "Efecto de X en Y", act.ThesisTitle)
	assert.Equal(t, 32.0, act.HoursPerTerm)
}

func TestNormalizeResearchRowS4(t *testing.T) {
	headerRaw := []string{"CODIGO", "APROBADO POR", "NOMBRE DEL ANTEPROYECTO O PROPUESTA DE INVESTIGACION", "HORAS SEMESTRE"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"INV-07", "Consejo Fac.", "ANTEPROYECTO: Biomarcadores X", "80.00"}

	act, warns := normalizeResearchRow(headerRaw, headerNorm, row)
	assert.Empty(t, warns)
	assert.Equal(t, "Consejo Fac.", act.ApprovedBy)
	assert.Equal(t, 80.0, act.HoursPerTerm)
}

func TestNormalizeGenericRowExtractsKind(t *testing.T) {
	headerRaw := []string{"TIPO DE COMISION", "NOMBRE", "HORAS SEMESTRE"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"COMISION DE ESTUDIOS", "Pasantia en el exterior", "20"}

	act, warns := normalizeGenericRow(SubtypeCommission, headerRaw, headerNorm, row)
	assert.Empty(t, warns)
	assert.Equal(t, "COMISION DE ESTUDIOS", act.Kind)
	assert.Equal(t, "Pasantia en el exterior", act.Name)
	assert.Equal(t, 20.0, act.HoursPerTerm)
}

func TestNormalizeGenericRowAdministrativeUsesCargo(t *testing.T) {
	headerRaw := []string{"CARGO", "DESCRIPCION DEL CARGO", "HORAS SEMESTRE"}
	headerNorm := make([]string, len(headerRaw))
	for i, h := range headerRaw {
		headerNorm[i] = normalizeHeader(h)
	}
	row := []string{"Jefe de Departamento", "Gestion academica", "120"}

	act, _ := normalizeGenericRow(SubtypeAdministrative, headerRaw, headerNorm, row)
	assert.Equal(t, "Jefe de Departamento", act.Name)
	assert.Equal(t, "Gestion academica", act.Description)
	assert.Equal(t, "", act.Kind)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "45.0", formatHours(45.0))
	assert.Equal(t, "48.5", formatHours(48.5))
	assert.Equal(t, "0.0", formatHours(0.0))
}
