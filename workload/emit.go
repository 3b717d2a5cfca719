package workload

import "strings"

// EmitRows flattens a TeacherPeriodRecord, read-only, into ordered
// EmittedRow values. Category order is fixed: pregrado, postgrado, tesis,
// investigación, extensión, intelectuales, administrativas,
// complementarias, comisión.
func EmitRows(rec TeacherPeriodRecord) []EmittedRow {
	base := emittedBase(rec.Personal, rec.Period)

	var out []EmittedRow
	for _, c := range rec.Undergrad {
		out = append(out, emitCourse(base, c, CategoryPregrado))
	}
	for _, c := range rec.Graduate {
		out = append(out, emitCourse(base, c, CategoryPostgrado))
	}
	for _, t := range rec.Thesis {
		out = append(out, emitThesis(base, t))
	}
	for _, r := range rec.Research {
		out = append(out, emitResearch(base, r))
	}
	for _, g := range rec.Extension {
		out = append(out, emitGeneric(base, g, ActivityExtension))
	}
	for _, g := range rec.Intellectual {
		out = append(out, emitGeneric(base, g, ActivityIntelectuales))
	}
	for _, g := range rec.Administrative {
		out = append(out, emitGeneric(base, g, ActivityAdministrativa))
	}
	for _, g := range rec.Complementary {
		out = append(out, emitGeneric(base, g, ActivityComplementaria))
	}
	for _, g := range rec.Commission {
		out = append(out, emitGeneric(base, g, ActivityComision))
	}
	return out
}

// emittedBase pre-fills the fields every row shares: identity, employment
// status, and the period label.
func emittedBase(p PersonalInfo, period PeriodDescriptor) EmittedRow {
	return EmittedRow{
		NationalID:     p.NationalID,
		FullName:       p.FullName(),
		School:         p.AcademicUnit,
		Department:     p.Department,
		EmploymentType: p.EmploymentType,
		Dedication:     p.Dedication,
		Level:          p.LevelAttained,
		Position:       p.Position,
		PeriodLabel:    period.Label,
	}
}

func emitCourse(base EmittedRow, c CourseActivity, category string) EmittedRow {
	row := base
	row.ActivityType = ActivityDocencia
	row.Category = category
	row.ActivityName = joinCodeName(c.Code, c.Name)
	row.Hours = c.HoursPerTerm
	row.ID = c.Code
	row.HoursPercentage = c.Percentage
	row.ActivityDetail = joinDetails(
		labelled("Grupo", c.Group),
		labelled("Tipo", c.Modality),
		labelled("Créditos", c.Credits),
		labelled("Frecuencia", c.Frequency),
		labelled("Intensidad", c.Intensity),
	)
	return row
}

func emitThesis(base EmittedRow, t ThesisActivity) EmittedRow {
	row := base
	row.ActivityType = ActivityDocencia
	row.Category = CategoryTesis
	row.ActivityName = t.ThesisTitle
	row.Hours = t.HoursPerTerm
	row.ID = t.StudentCode
	if t.PlanCode != "" {
		row.ActivityDetail = "Plan: " + t.PlanCode
	}
	return row
}

func emitResearch(base EmittedRow, r ResearchActivity) EmittedRow {
	row := base
	row.ActivityType = ActivityInvestigacion
	row.Category = CategoryProyecto
	if strings.Contains(strings.ToUpper(r.ProjectName), anteproyectoMarker) {
		row.Category = CategoryAnteproyecto
	}
	row.ActivityName = r.ProjectName
	row.Hours = r.HoursPerTerm
	row.ID = r.Code
	row.Activity = r.SourcePeriodHint
	return row
}

func emitGeneric(base EmittedRow, g GenericActivity, activityType string) EmittedRow {
	row := base
	row.ActivityType = activityType
	row.Category = g.Kind
	row.ActivityName = g.Name
	row.Hours = g.HoursPerTerm
	row.ActivityDetail = g.Description
	return row
}

// joinCodeName renders "{CODE} - {NAME}", degrading gracefully when either
// side is empty.
func joinCodeName(code, name string) string {
	switch {
	case code != "" && name != "":
		return code + " - " + name
	case code != "":
		return code
	default:
		return name
	}
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// joinDetails pipe-joins the non-empty labelled parts.
func joinDetails(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "|")
}
