package forms

import (
	"strconv"
	"strings"

	"Backend-FacilityWatch-001/src/models"

	"github.com/google/uuid"
)

// ImportRow is one primary-sheet row of a bulk-import workbook. All values
// arrive as strings; typing happens in BuildFragment.
type ImportRow struct {
	Question         string
	Type             string
	HelperText       string
	FieldName        string
	Required         string
	ColumnSize       string
	Page             string
	Section          string
	ShowIf           string
	Calculation      string
	Score            string
	ReviewersComment string
	GroupName        string
}

// primary-sheet headers, matched case-insensitively
var primaryHeaders = map[string]func(*ImportRow, string){
	"question":          func(r *ImportRow, v string) { r.Question = v },
	"type":              func(r *ImportRow, v string) { r.Type = v },
	"helper text":       func(r *ImportRow, v string) { r.HelperText = v },
	"field_name":        func(r *ImportRow, v string) { r.FieldName = v },
	"required":          func(r *ImportRow, v string) { r.Required = v },
	"columnsize":        func(r *ImportRow, v string) { r.ColumnSize = v },
	"page":              func(r *ImportRow, v string) { r.Page = v },
	"section":           func(r *ImportRow, v string) { r.Section = v },
	"showif":            func(r *ImportRow, v string) { r.ShowIf = v },
	"calculation":       func(r *ImportRow, v string) { r.Calculation = v },
	"score":             func(r *ImportRow, v string) { r.Score = v },
	"reviewers_comment": func(r *ImportRow, v string) { r.ReviewersComment = v },
	"group_name":        func(r *ImportRow, v string) { r.GroupName = v },
}

// ParseSheet maps raw sheet rows (header row first) to ImportRows. Rows with
// no question text are skipped.
func ParseSheet(rows [][]string) []ImportRow {
	if len(rows) < 2 {
		return nil
	}

	setters := make([]func(*ImportRow, string), len(rows[0]))
	for i, h := range rows[0] {
		setters[i] = primaryHeaders[strings.ToLower(strings.TrimSpace(h))]
	}

	var out []ImportRow
	for _, raw := range rows[1:] {
		var row ImportRow
		for i, cell := range raw {
			if i < len(setters) && setters[i] != nil {
				setters[i](&row, strings.TrimSpace(cell))
			}
		}
		if row.Question == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

// ParseOptionsSheet maps the secondary "options" sheet (name, value, label,
// showif, score) to option lists keyed by field name.
func ParseOptionsSheet(rows [][]string) map[string][]models.Option {
	if len(rows) < 2 {
		return nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	get := func(raw []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[i])
	}

	out := map[string][]models.Option{}
	for _, raw := range rows[1:] {
		name := get(raw, "name")
		if name == "" {
			continue
		}
		opt := models.Option{
			Value:  get(raw, "value"),
			Label:  get(raw, "label"),
			ShowIf: get(raw, "showif"),
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		if s := get(raw, "score"); s != "" {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				opt.Score = &f
			}
		}
		out[name] = append(out[name], opt)
	}
	return out
}

// BuildFragment turns import rows into a definition fragment: pages and
// sections resolved by name in row order, questions appended in row order.
// Missing Type defaults to plain text; options come from the secondary
// sheet keyed by field name; a group_name value marks the row's section
// repeatable.
func BuildFragment(rows []ImportRow, options map[string][]models.Option) *models.FormDefinition {
	fragment := &models.FormDefinition{}

	for _, row := range rows {
		q := models.Question{
			ID:             uuid.NewString(),
			QuestionText:   row.Question,
			QuestionHelper: row.HelperText,
			AnswerType:     importAnswerType(row.Type),
			Required:       strings.EqualFold(row.Required, "true"),
			ColumnSize:     importColumnSize(row.ColumnSize),
		}

		q.FieldName = row.FieldName
		if q.FieldName == "" {
			q.FieldName = MakeFieldName(row.Question)
		}
		if opts, ok := options[q.FieldName]; ok {
			q.Options = opts
		}

		meta := map[string]any{}
		if row.ShowIf != "" {
			meta[models.MetaShowIf] = row.ShowIf
		}
		if row.Calculation != "" {
			meta[models.MetaComputedFormula] = row.Calculation
		}
		if row.Score != "" {
			if f, err := strconv.ParseFloat(row.Score, 64); err == nil {
				meta[models.MetaScore] = f
			}
		}
		if strings.EqualFold(row.ReviewersComment, "true") {
			meta[models.MetaDisplayReviewersComment] = true
		}
		if len(meta) > 0 {
			q.Metadata = meta
		}

		section := fragmentSection(fragment, row.Page, row.Section)
		if row.GroupName != "" {
			section.IsRepeatable = true
			section.GroupName = row.GroupName
		}
		section.Questions = append(section.Questions, q)
	}

	return fragment
}

// Merge appends the fragment's questions into def, resolving pages and
// sections by display name and creating them when absent. The result still
// has to pass ValidateForm before it is persisted.
func Merge(def *models.FormDefinition, fragment *models.FormDefinition) {
	for _, fp := range fragment.Pages {
		for _, fs := range fp.Sections {
			target := resolveSection(def, fp.Name, fs.Name)
			if fs.IsRepeatable {
				target.IsRepeatable = true
				if target.GroupName == "" {
					target.GroupName = fs.GroupName
				}
			}
			target.Questions = append(target.Questions, fs.Questions...)
		}
	}
}

func importAnswerType(raw string) models.AnswerType {
	t := models.AnswerType(strings.ToLower(strings.TrimSpace(raw)))
	if models.ValidAnswerType(t) {
		return t
	}
	return models.AnswerText
}

func importColumnSize(raw string) int {
	switch raw {
	case "6":
		return 6
	case "4":
		return 4
	case "3":
		return 3
	default:
		return 12
	}
}

func fragmentSection(def *models.FormDefinition, pageName, sectionName string) *models.FormSection {
	if pageName == "" {
		pageName = "Page 1"
	}
	if sectionName == "" {
		sectionName = "General Information"
	}
	return resolveSection(def, pageName, sectionName)
}

func resolveSection(def *models.FormDefinition, pageName, sectionName string) *models.FormSection {
	var page *models.FormPage
	for i := range def.Pages {
		if def.Pages[i].Name == pageName {
			page = &def.Pages[i]
			break
		}
	}
	if page == nil {
		def.Pages = append(def.Pages, models.FormPage{ID: uuid.NewString(), Name: pageName})
		page = &def.Pages[len(def.Pages)-1]
	}

	for i := range page.Sections {
		if page.Sections[i].Name == sectionName {
			return &page.Sections[i]
		}
	}
	page.Sections = append(page.Sections, models.FormSection{
		ID:        uuid.NewString(),
		Name:      sectionName,
		Questions: []models.Question{},
	})
	return &page.Sections[len(page.Sections)-1]
}
