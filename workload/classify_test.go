package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		text     string
		expected TableClass
	}{
		{
			name:     "personal info",
			header:   []string{"CEDULA", "1 APELLIDO", "2 APELLIDO", "NOMBRE"},
			expected: ClassPersonalInfo,
		},
		{
			name:     "additional personal info",
			header:   []string{"VINCULACION", "CATEGORIA", "DEDICACION", "NIVEL ALCANZADO"},
			expected: ClassAdditionalPersonalInfo,
		},
		{
			name:     "thesis direction via codigo estudiante",
			header:   []string{"CODIGO ESTUDIANTE", "COD PLAN", "TITULO DE LA TESIS", "HORAS SEMESTRE"},
			expected: ClassThesisDirection,
		},
		{
			name:     "thesis direction via estudiante+plan",
			header:   []string{"ESTUDIANTE", "PLAN", "HORAS SEMESTRE"},
			expected: ClassThesisDirection,
		},
		{
			name:   "research table",
			header: []string{"CODIGO", "APROBADO POR", "NOMBRE DEL ANTEPROYECTO O PROPUESTA DE INVESTIGACION", "HORAS SEMESTRE"},
			text:   "ACTIVIDADES DE INVESTIGACION CODIGO APROBADO POR NOMBRE DEL ANTEPROYECTO O PROPUESTA DE INVESTIGACION HORAS SEMESTRE",
			expected: ClassResearch,
		},
		{
			name:     "anteproyecto without estudiante is not thesis",
			header:   []string{"ANTEPROYECTO", "CODIGO"},
			expected: ClassIgnore,
		},
		{
			name:     "courses",
			header:   []string{"CODIGO", "GRUPO", "TIPO", "NOMBRE DE ASIGNATURA", "HORAS SEMESTRE"},
			expected: ClassCourses,
		},
		{
			name:   "intellectual",
			header: []string{"APROBADO", "TIPO", "NOMBRE"},
			text:   "ACTIVIDADES INTELECTUALES APROBADO TIPO NOMBRE",
			expected: ClassIntellectualOrArtistic,
		},
		{
			name:     "extension",
			header:   []string{"TIPO", "NOMBRE", "HORAS SEMESTRE"},
			expected: ClassExtension,
		},
		{
			name:     "administrative",
			header:   []string{"CARGO", "DESCRIPCION DEL CARGO"},
			expected: ClassAdministrative,
		},
		{
			name:     "complementary",
			header:   []string{"PARTICIPACION EN", "HORAS SEMESTRE"},
			expected: ClassComplementary,
		},
		{
			name:     "commission",
			header:   []string{"TIPO DE COMISION", "HORAS SEMESTRE"},
			expected: ClassCommission,
		},
		{
			name:     "unrecognised table",
			header:   []string{"FOO", "BAR"},
			expected: ClassIgnore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTable(tt.header, tt.text)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestThesisResearchMutualExclusion(t *testing.T) {
	// An ANTEPROYECTO column does not disqualify a thesis table as long as
	// the table still names the student.
	header := []string{"ESTUDIANTE", "TITULO", "ANTEPROYECTO", "HORAS SEMESTRE"}
	assert.Equal(t, ClassThesisDirection, classifyTable(header, ""))

	headerNoStudent := []string{"TITULO", "DIRECCION", "TESIS", "ANTEPROYECTO", "PROPUESTA DE INVESTIGACION"}
	assert.NotEqual(t, ClassThesisDirection, classifyTable(headerNoStudent, ""))
}

func TestClassifyTableToleratesAccentedHeaders(t *testing.T) {
	header := []string{"CÓDIGO", "GRUPO", "TIPO", "NOMBRE DE ASIGNATURA", "HORAS SEMESTRE"}
	assert.Equal(t, ClassCourses, classifyTable(header, ""))
}
