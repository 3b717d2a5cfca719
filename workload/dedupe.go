package workload

import "strings"

// identityKey builds the identity tuple (code/student_code/approved_by,
// name/title/project_name/description, group, modality), each component
// lower-cased and trimmed. empty reports whether every component was blank,
// in which case the caller must never dedupe on this key.
func identityKey(idPart, namePart, group, modality string) (key string, empty bool) {
	a := strings.ToLower(strings.TrimSpace(idPart))
	b := strings.ToLower(strings.TrimSpace(namePart))
	c := strings.ToLower(strings.TrimSpace(group))
	d := strings.ToLower(strings.TrimSpace(modality))
	return a + "\x00" + b + "\x00" + c + "\x00" + d, a == "" && b == "" && c == "" && d == ""
}

// dedupeCourses retains the first occurrence of each identity key within a
// single category list; rows whose key is the empty tuple are never
// deduped.
func dedupeCourses(acts []CourseActivity) []CourseActivity {
	seen := make(map[string]bool, len(acts))
	out := make([]CourseActivity, 0, len(acts))
	for _, a := range acts {
		key, empty := identityKey(a.Code, a.Name, a.Group, a.Modality)
		if !empty {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, a)
	}
	return out
}

func dedupeThesis(acts []ThesisActivity) []ThesisActivity {
	seen := make(map[string]bool, len(acts))
	out := make([]ThesisActivity, 0, len(acts))
	for _, a := range acts {
		key, empty := identityKey(a.StudentCode, a.ThesisTitle, "", "")
		if !empty {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, a)
	}
	return out
}

func dedupeResearch(acts []ResearchActivity) []ResearchActivity {
	seen := make(map[string]bool, len(acts))
	out := make([]ResearchActivity, 0, len(acts))
	for _, a := range acts {
		idPart := a.Code
		if idPart == "" {
			idPart = a.ApprovedBy
		}
		key, empty := identityKey(idPart, a.ProjectName, "", "")
		if !empty {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, a)
	}
	return out
}

func dedupeGeneric(acts []GenericActivity) []GenericActivity {
	seen := make(map[string]bool, len(acts))
	out := make([]GenericActivity, 0, len(acts))
	for _, a := range acts {
		namePart := a.Name
		if namePart == "" {
			namePart = a.Description
		}
		key, empty := identityKey("", namePart, "", "")
		if !empty {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, a)
	}
	return out
}

// dedupeRecord applies the category-scoped dedupe to every list in a
// TeacherPeriodRecord. It is idempotent, so callers may safely run it more
// than once.
func dedupeRecord(rec *TeacherPeriodRecord) {
	rec.Undergrad = dedupeCourses(rec.Undergrad)
	rec.Graduate = dedupeCourses(rec.Graduate)
	rec.Thesis = dedupeThesis(rec.Thesis)
	rec.Research = dedupeResearch(rec.Research)
	rec.Extension = dedupeGeneric(rec.Extension)
	rec.Intellectual = dedupeGeneric(rec.Intellectual)
	rec.Administrative = dedupeGeneric(rec.Administrative)
	rec.Complementary = dedupeGeneric(rec.Complementary)
	rec.Commission = dedupeGeneric(rec.Commission)
}
