package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinCodeName(t *testing.T) {
	assert.Equal(t, "618050 - Cirugia", joinCodeName("618050", "Cirugia"))
	assert.Equal(t, "618050", joinCodeName("618050", ""))
	assert.Equal(t, "Cirugia", joinCodeName("", "Cirugia"))
	assert.Equal(t, "", joinCodeName("", ""))
}

func TestJoinDetailsSkipsEmpty(t *testing.T) {
	got := joinDetails(labelled("Grupo", "1"), labelled("Tipo", ""), labelled("Créditos", "4"))
	assert.Equal(t, "Grupo: 1|Créditos: 4", got)
}

func TestEmitRowsCategoryOrder(t *testing.T) {
	rec := TeacherPeriodRecord{
		Period:    PeriodDescriptor{Label: "2024-1"},
		Undergrad: []CourseActivity{{Code: "U1", Name: "Undergrad course"}},
		Graduate:  []CourseActivity{{Code: "G1", Name: "Graduate course"}},
		Thesis:    []ThesisActivity{{StudentCode: "S1", ThesisTitle: "Thesis"}},
		Research:  []ResearchActivity{{Code: "R1", ProjectName: "Research"}},
		Extension: []GenericActivity{{Name: "Extension"}},
	}
	rows := EmitRows(rec)
	assert.Len(t, rows, 5)
	assert.Equal(t, CategoryPregrado, rows[0].Category)
	assert.Equal(t, CategoryPostgrado, rows[1].Category)
	assert.Equal(t, CategoryTesis, rows[2].Category)
	assert.Equal(t, CategoryProyecto, rows[3].Category)
	assert.Equal(t, ActivityExtension, rows[4].ActivityType)
}

func TestEmitResearchAnteproyectoCategory(t *testing.T) {
	base := EmittedRow{}
	row := emitResearch(base, ResearchActivity{ProjectName: "ANTEPROYECTO: Biomarcadores X"})
	assert.Equal(t, CategoryAnteproyecto, row.Category)

	row2 := emitResearch(base, ResearchActivity{ProjectName: "Biomarcadores X"})
	assert.Equal(t, CategoryProyecto, row2.Category)
}

func TestEmitResearchDetailStaysEmpty(t *testing.T) {
	row := emitResearch(EmittedRow{}, ResearchActivity{
		Code:        "INV-07",
		ApprovedBy:  "Consejo Fac.",
		ProjectName: "Biomarcadores X",
	})
	assert.Equal(t, "", row.ActivityDetail)
	assert.Equal(t, "INV-07", row.ID)
}

func TestEmitThesisPlanDetail(t *testing.T) {
	base := EmittedRow{}
	row := emitThesis(base, ThesisActivity{StudentCode: "S1", ThesisTitle: "T", PlanCode: "MA-SAL"})
	assert.Equal(t, "Plan: MA-SAL", row.ActivityDetail)
}

func TestEmittedBaseCarriesPersonalInfo(t *testing.T) {
	p := PersonalInfo{NationalID: "123", FirstName: "Ana", LastName1: "Gomez", AcademicUnit: "Medicina"}
	base := emittedBase(p, PeriodDescriptor{Label: "2024-1"})
	assert.Equal(t, "123", base.NationalID)
	assert.Equal(t, p.FullName(), base.FullName)
	assert.Equal(t, "Medicina", base.School)
	assert.Equal(t, "2024-1", base.PeriodLabel)
}

func TestEmitGenericUsesRowKindAsCategory(t *testing.T) {
	g := GenericActivity{
		Subtype:      SubtypeCommission,
		Kind:         "COMISION DE ESTUDIOS",
		Name:         "Pasantia",
		HoursPerTerm: 20,
	}
	row := emitGeneric(EmittedRow{}, g, ActivityComision)
	assert.Equal(t, ActivityComision, row.ActivityType)
	assert.Equal(t, "COMISION DE ESTUDIOS", row.Category)
	assert.Equal(t, 20.0, row.Hours)
}

func TestEmitRowsEmptyRecordProducesNoRows(t *testing.T) {
	rows := EmitRows(TeacherPeriodRecord{})
	assert.Empty(t, rows)
}
