// Package workload implements the HTML-to-typed-activity extraction engine:
// the core that turns one teacher-workload portal page into a typed,
// deduplicated TeacherPeriodRecord and flattens it into sink-ready rows.
//
// The package is pure apart from logging: process_page never performs I/O
// itself. Fetching the page and appending rows to a sink are the caller's
// responsibility (see the transport and sink packages).
package workload

import "errors"

// Sentinel errors for the per-page status taxonomy.
// These are never returned for data-quality problems, only for pages the
// engine cannot meaningfully process at all.
var (
	ErrSessionRequired      = errors.New("workload: upstream returned a login form")
	ErrUpstreamEmpty        = errors.New("workload: upstream page body is too small to be real")
	ErrUpstreamError        = errors.New("workload: upstream page announced an error")
	ErrCatalogueUnavailable = errors.New("workload: period catalogue yielded no entries")
)

// PageStatus classifies the outcome of processing a single page, independent
// of the (possibly empty) TeacherPeriodRecord returned alongside it.
type PageStatus string

const (
	// StatusOK means the page parsed and yielded at least personal info or
	// one activity.
	StatusOK PageStatus = "ok"
	// StatusNoData means the page parsed cleanly but carried nothing: not an
	// error, the caller may choose to skip emitting rows for it.
	StatusNoData PageStatus = "no_data"
	// StatusParseDegenerate means the page held no <table> elements at all
	// (and neither a login form nor an unfetched frame explains that);
	// logged at WARN, an empty record is still returned. A page whose tables
	// the classifier all ignores is StatusNoData instead.
	StatusParseDegenerate PageStatus = "parse_degenerate"
)

// PeriodDescriptor identifies an academic term.
type PeriodDescriptor struct {
	PeriodID int
	Year     int
	Term     int // 1 or 2
	Label    string
}

// PersonalInfo holds a teacher's identity and employment status for one
// period. Every field is optional; the zero value (empty string) means the
// page did not carry that field.
type PersonalInfo struct {
	NationalID     string
	FirstName      string
	LastName1      string
	LastName2      string
	AcademicUnit   string
	Department     string
	Position       string
	EmploymentType string
	Category       string
	Dedication     string
	LevelAttained  string
	CostCenter     string
}

// FullName renders "NOMBRE APELLIDO1 APELLIDO2" collapsed to single spaces,
// matching the Row Emitter's full_name rule.
func (p PersonalInfo) FullName() string {
	return collapseWhitespace(p.FirstName + " " + p.LastName1 + " " + p.LastName2)
}

// CourseActivity is an undergraduate or graduate course assignment.
type CourseActivity struct {
	Code         string
	Group        string
	Modality     string
	Name         string
	Credits      string
	Percentage   string
	Frequency    string
	Intensity    string
	HoursPerTerm float64

	// Raw preserves the header-indexed original values (header -> cell text)
	// for this row, required by the emitter's free-form detail field and by
	// FieldMalformed diagnostics.
	Raw map[string]string
}

// ThesisActivity is a graduate-student thesis direction.
type ThesisActivity struct {
	StudentCode  string
	PlanCode     string
	ThesisTitle  string
	HoursPerTerm float64
	Raw          map[string]string
}

// ResearchActivity is a research project or anteproyecto (draft proposal).
type ResearchActivity struct {
	Code         string
	ApprovedBy   string
	ProjectName  string
	HoursPerTerm float64
	// SourcePeriodHint preserves a PERIODO mention found in the text
	// preceding the source table, for auditing only; it never overrides
	// the caller-supplied period.
	SourcePeriodHint string
	Raw              map[string]string
}

// GenericSubtype names the GenericActivity category (extension,
// intellectual/artistic, administrative, complementary, commission).
type GenericSubtype string

const (
	SubtypeExtension      GenericSubtype = "extension"
	SubtypeIntellectual   GenericSubtype = "intellectual_or_artistic"
	SubtypeAdministrative GenericSubtype = "administrative"
	SubtypeComplementary  GenericSubtype = "complementary"
	SubtypeCommission     GenericSubtype = "commission"
)

// GenericActivity covers the categories whose schema is mostly free-form:
// extension, intellectual/artistic, administrative, complementary, and
// commission activities.
type GenericActivity struct {
	Subtype GenericSubtype
	// Kind is the row's own sub-kind cell (the TIPO, TIPO DE COMISION or
	// PARTICIPACION EN column), which the Row Emitter surfaces as the row's
	// category.
	Kind         string
	Name         string
	Description  string
	HoursPerTerm float64
	Raw          map[string]string
}

// TeacherPeriodRecord is the aggregate produced by the Period Engine for one
// (national_id, period) page. It exclusively owns its lists and PersonalInfo;
// lists are insertion-ordered and that order drives the Row Emitter's
// deterministic output.
type TeacherPeriodRecord struct {
	Period   PeriodDescriptor
	Personal PersonalInfo

	Undergrad []CourseActivity
	Graduate  []CourseActivity
	Thesis    []ThesisActivity
	Research  []ResearchActivity

	Extension      []GenericActivity
	Intellectual   []GenericActivity
	Administrative []GenericActivity
	Complementary  []GenericActivity
	Commission     []GenericActivity
}

// EmittedRow is one flat output row, the unit handed to the sink.
// Field order here matches the canonical column order of ColumnHeaders
// exactly; Fields renders these 17 fields in this order.
type EmittedRow struct {
	NationalID      string
	FullName        string
	School          string
	Department      string
	ActivityType    string
	Category        string
	ActivityName    string
	Hours           float64
	ID              string
	PeriodLabel     string
	HoursPercentage string
	ActivityDetail  string
	Activity        string
	EmploymentType  string
	Dedication      string
	Level           string
	Position        string
}

// Fields returns the row as an ordered slice of 17 strings in ColumnHeaders
// order, the shape of one row of a flat export. The sink package stores the
// typed fields instead.
func (r EmittedRow) Fields() []string {
	return []string{
		r.NationalID,
		r.FullName,
		r.School,
		r.Department,
		r.ActivityType,
		r.Category,
		r.ActivityName,
		formatHours(r.Hours),
		r.ID,
		r.PeriodLabel,
		r.HoursPercentage,
		r.ActivityDetail,
		r.Activity,
		r.EmploymentType,
		r.Dedication,
		r.Level,
		r.Position,
	}
}

// ColumnHeaders is the fixed 17-column header written to a fresh partition,
// in the exact order EmittedRow.Fields returns them.
var ColumnHeaders = []string{
	"Cedula", "Nombre Profesor", "Escuela", "Departamento", "Tipo de Actividad",
	"Categoría", "Nombre de actividad", "Número de horas", "id", "Período",
	"Porcentaje horas", "Detalle actividad", "Actividad", "Vinculación",
	"Dedicación", "Nivel", "Cargo",
}

// Activity type / category labels used by the Row Emitter.
const (
	ActivityDocencia       = "Docencia"
	ActivityInvestigacion  = "Investigación"
	ActivityExtension      = "Extensión"
	ActivityIntelectuales  = "Intelectuales"
	ActivityAdministrativa = "Administrativas"
	ActivityComplementaria = "Complementarias"
	ActivityComision       = "Comisión"

	CategoryPregrado     = "Pregrado"
	CategoryPostgrado    = "Postgrado"
	CategoryTesis        = "Tesis"
	CategoryProyecto     = "Proyecto"
	CategoryAnteproyecto = "Anteproyecto"
)
