package workload

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// FrameFetcher is the Period Engine's sole I/O seam: given
// a frame's src, it returns that frame's body. A nil FrameFetcher means the
// engine proceeds with the original document unchanged.
type FrameFetcher interface {
	FetchFrame(ctx context.Context, src string) ([]byte, error)
}

var (
	framePattern       = regexp.MustCompile(`(?is)<frame\b[^>]*>`)
	frameNamePattern   = regexp.MustCompile(`(?i)name\s*=\s*["']?([^"'\s>]+)`)
	frameSrcPattern    = regexp.MustCompile(`(?i)src\s*=\s*["']?([^"'\s>]+)`)
	loginFormPattern   = regexp.MustCompile(`(?is)<input[^>]*type\s*=\s*["']?password["']?`)
	errorTitlePattern  = regexp.MustCompile(`(?is)<title>\s*error\s*</title>`)
	periodHintPattern  = regexp.MustCompile(`(?i)PERIODO[^0-9]{0,10}(\d{4}\s*[-\s]\s*0?[12])`)
	anteproyectoMarker = "ANTEPROYECTO"
)

// ProcessPage implements the Period Engine: it turns one decoded page
// into a TeacherPeriodRecord plus a PageStatus, never returning an error for
// data-quality problems, only for pages it cannot meaningfully process.
func ProcessPage(ctx context.Context, rawBytes []byte, nationalID string, period PeriodDescriptor, fetcher FrameFetcher, log *zap.SugaredLogger) (TeacherPeriodRecord, PageStatus, error) {
	rec := TeacherPeriodRecord{Period: period}
	rec.Personal.NationalID = nationalID

	if len(rawBytes) < 100 {
		return rec, StatusNoData, ErrUpstreamEmpty
	}

	html, err := decodeLatin1(rawBytes)
	if err != nil {
		return rec, StatusNoData, err
	}

	unfetchedFrame := false
	if src, ok := mainFrameSrc(html); ok {
		if fetcher == nil {
			unfetchedFrame = true
		} else if body, ferr := fetcher.FetchFrame(ctx, src); ferr == nil && len(body) > 0 {
			if decoded, derr := decodeLatin1(body); derr == nil {
				html = decoded
			}
		}
	}

	if errorTitlePattern.MatchString(html) {
		return rec, StatusNoData, ErrUpstreamError
	}

	doc, err := parseDocument(html)
	if err != nil {
		return rec, StatusParseDegenerate, nil
	}

	tbls := tables(doc.Selection)
	if len(tbls) == 0 {
		if loginFormPattern.MatchString(html) {
			return rec, StatusNoData, ErrSessionRequired
		}
		if unfetchedFrame {
			// The content lives behind mainFrame_ and no fetcher was
			// wired; nothing to parse here, but nothing is wrong either.
			return rec, StatusNoData, nil
		}
		if log != nil {
			log.Warnw("no tables recognised on page", "national_id", nationalID, "period", period.Label)
		}
		return rec, StatusParseDegenerate, nil
	}

	for _, t := range tbls {
		tableHTML := rawHTML(t)
		rws := rows(t)
		if len(rws) == 0 {
			continue
		}

		var rowHTML []string
		var rowCells [][]string
		for _, r := range rws {
			rowHTML = append(rowHTML, rawHTML(r))
			rowCells = append(rowCells, cells(r))
		}

		header := resolveHeader(rowHTML, rowCells)
		class := classifyTable(header.Norm, tableHTML)

		// Data rows follow the header; anything above it is caption or
		// layout scaffolding, and blank separator rows carry nothing.
		dataRows := rowCells[header.RowIndex+1:]

		switch class {
		case ClassPersonalInfo:
			info := extractPersonalInfoTabular(rowCells)
			mergeTabularPersonalInfo(&rec.Personal, info)

		case ClassAdditionalPersonalInfo:
			for _, row := range dataRows {
				if isBlankRow(row) {
					continue
				}
				info := additionalPersonalInfo(header.Norm, row)
				mergeTabularPersonalInfo(&rec.Personal, info)
			}

		case ClassThesisDirection:
			for _, row := range dataRows {
				if isBlankRow(row) {
					continue
				}
				act, warns := normalizeThesisRow(header.Raw, header.Norm, row)
				logWarnings(log, nationalID, period, "thesis", warns)
				rec.Thesis = append(rec.Thesis, act)
			}

		case ClassResearch:
			hint := sourcePeriodHint(html, tableHTML)
			for _, row := range dataRows {
				if isBlankRow(row) {
					continue
				}
				act, warns := normalizeResearchRow(header.Raw, header.Norm, row)
				act.SourcePeriodHint = hint
				logWarnings(log, nationalID, period, "research", warns)
				rec.Research = append(rec.Research, act)
			}

		case ClassCourses:
			for _, row := range dataRows {
				if isBlankRow(row) {
					continue
				}
				act, warns := normalizeCourseRow(header.Raw, header.Norm, row)
				logWarnings(log, nationalID, period, "course", warns)
				if courseLevel(act.Code, act.Name, act.Modality, act.Group) == CategoryPostgrado {
					rec.Graduate = append(rec.Graduate, act)
				} else {
					rec.Undergrad = append(rec.Undergrad, act)
				}
			}

		case ClassIntellectualOrArtistic, ClassExtension, ClassAdministrative, ClassComplementary, ClassCommission:
			subtype := subtypeFor(class)
			for _, row := range dataRows {
				if isBlankRow(row) {
					continue
				}
				act, warns := normalizeGenericRow(subtype, header.Raw, header.Norm, row)
				logWarnings(log, nationalID, period, string(subtype), warns)
				appendGeneric(&rec, subtype, act)
			}

		case ClassIgnore:
			// no-op: tables that match none of the known shapes carry no
			// workload data (ads, layout scaffolding, legacy nav tables).
		}
	}

	applyPlainTextFallback(stripTags(decodeEntities(html)), &rec.Personal)
	dedupeRecord(&rec)

	if log != nil {
		log.Debugw("page processed", "national_id", nationalID, "period", period.Label,
			"undergrad", len(rec.Undergrad), "graduate", len(rec.Graduate),
			"thesis", len(rec.Thesis), "research", len(rec.Research))
	}

	if isRecordEmpty(rec) {
		return rec, StatusNoData, nil
	}
	return rec, StatusOK, nil
}

func decodeLatin1(b []byte) (string, error) {
	return DecodeLatin1(b)
}

// DecodeLatin1 decodes b as ISO-8859-1: the portal never serves UTF-8.
// Exported so callers outside the engine (notably the period catalogue
// fetch) can apply the same decoding rule.
func DecodeLatin1(b []byte) (string, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// mainFrameSrc implements the frameset-unwrap step: it finds a <frame> tag
// named mainFrame_ and returns its src attribute.
func mainFrameSrc(html string) (string, bool) {
	if !strings.Contains(strings.ToLower(html), "<frame") {
		return "", false
	}
	for _, tag := range framePattern.FindAllString(html, -1) {
		nameMatch := frameNamePattern.FindStringSubmatch(tag)
		if nameMatch == nil || nameMatch[1] != "mainFrame_" {
			continue
		}
		srcMatch := frameSrcPattern.FindStringSubmatch(tag)
		if srcMatch == nil {
			continue
		}
		return srcMatch[1], true
	}
	return "", false
}

// sourcePeriodHint locates the table inside the full document and scans up
// to 2000 characters of text immediately before it for a PERIODO mention.
// Both sides are compared as stripped, collapsed text: the parser reshapes
// markup (tbody insertion, attribute normalisation), so the serialized
// table never reliably matches the raw source bytes.
func sourcePeriodHint(fullHTML, tableHTML string) string {
	fullText := collapseWhitespace(stripTags(decodeEntities(fullHTML)))
	tableText := collapseWhitespace(stripTags(decodeEntities(tableHTML)))
	idx := strings.Index(fullText, tableText)
	if idx <= 0 || tableText == "" {
		return ""
	}
	start := idx - 2000
	if start < 0 {
		start = 0
	}
	m := periodHintPattern.FindStringSubmatch(fullText[start:idx])
	if m == nil {
		return ""
	}
	return collapseWhitespace(m[1])
}

func subtypeFor(class TableClass) GenericSubtype {
	switch class {
	case ClassIntellectualOrArtistic:
		return SubtypeIntellectual
	case ClassExtension:
		return SubtypeExtension
	case ClassAdministrative:
		return SubtypeAdministrative
	case ClassComplementary:
		return SubtypeComplementary
	case ClassCommission:
		return SubtypeCommission
	default:
		return ""
	}
}

func appendGeneric(rec *TeacherPeriodRecord, subtype GenericSubtype, act GenericActivity) {
	switch subtype {
	case SubtypeIntellectual:
		rec.Intellectual = append(rec.Intellectual, act)
	case SubtypeExtension:
		rec.Extension = append(rec.Extension, act)
	case SubtypeAdministrative:
		rec.Administrative = append(rec.Administrative, act)
	case SubtypeComplementary:
		rec.Complementary = append(rec.Complementary, act)
	case SubtypeCommission:
		rec.Commission = append(rec.Commission, act)
	}
}

// mergeTabularPersonalInfo copies every non-empty field of src into dst
// wherever dst's field is still empty, so that a later, sparser table never
// overwrites a value the first personal_info table already supplied.
func mergeTabularPersonalInfo(dst *PersonalInfo, src PersonalInfo) {
	fields := []struct {
		d *string
		s string
	}{
		{&dst.NationalID, src.NationalID}, {&dst.FirstName, src.FirstName},
		{&dst.LastName1, src.LastName1}, {&dst.LastName2, src.LastName2},
		{&dst.AcademicUnit, src.AcademicUnit}, {&dst.Department, src.Department},
		{&dst.Position, src.Position}, {&dst.EmploymentType, src.EmploymentType},
		{&dst.Category, src.Category}, {&dst.Dedication, src.Dedication},
		{&dst.LevelAttained, src.LevelAttained}, {&dst.CostCenter, src.CostCenter},
	}
	for _, f := range fields {
		if *f.d == "" && f.s != "" {
			*f.d = f.s
		}
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isRecordEmpty(rec TeacherPeriodRecord) bool {
	return rec.Personal == PersonalInfo{NationalID: rec.Personal.NationalID} &&
		len(rec.Undergrad) == 0 && len(rec.Graduate) == 0 && len(rec.Thesis) == 0 &&
		len(rec.Research) == 0 && len(rec.Extension) == 0 && len(rec.Intellectual) == 0 &&
		len(rec.Administrative) == 0 && len(rec.Complementary) == 0 && len(rec.Commission) == 0
}

func logWarnings(log *zap.SugaredLogger, nationalID string, period PeriodDescriptor, kind string, warnings []string) {
	if log == nil {
		return
	}
	for _, w := range warnings {
		log.Debugw("field malformed", "national_id", nationalID, "period", period.Label, "kind", kind, "warning", w)
	}
}
