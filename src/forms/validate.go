package forms

import (
	"fmt"
	"strings"

	"Backend-FacilityWatch-001/src/expr"
	"Backend-FacilityWatch-001/src/models"
)

// ValidateForm runs the save gate over the whole definition. Validation is
// all-or-nothing: any structural error anywhere blocks the save. Errors are
// reported per question, group-name problems as form-level alerts, and
// unparseable expressions as non-blocking warnings so the builder can fix
// them before fill-time falls open.
func ValidateForm(def *models.FormDefinition) models.ValidationResult {
	result := models.ValidationResult{
		Valid:     true,
		Questions: map[string]models.QuestionErrors{},
	}
	if def == nil || len(def.Pages) == 0 {
		result.Valid = false
		result.Alerts = append(result.Alerts, "Form must have at least one page")
		return result
	}

	fieldNameCounts := map[string]int{}
	fieldNames := map[string]bool{}
	def.EachQuestion(func(_ *models.FormPage, _ *models.FormSection, q *models.Question) {
		fn := strings.TrimSpace(q.FieldName)
		if fn != "" {
			fieldNameCounts[fn]++
			fieldNames[fn] = true
		}
	})

	setError := func(id string, patch func(*models.QuestionErrors)) {
		e := result.Questions[id]
		patch(&e)
		result.Questions[id] = e
		result.Valid = false
	}

	def.EachQuestion(func(_ *models.FormPage, _ *models.FormSection, q *models.Question) {
		if strings.TrimSpace(q.QuestionText) == "" {
			setError(q.ID, func(e *models.QuestionErrors) {
				e.QuestionText = "Question text is required"
			})
		}

		if q.AnswerType.HasOptions() && len(q.Options) == 0 {
			setError(q.ID, func(e *models.QuestionErrors) {
				e.Options = "At least one option is required for this question type"
			})
		}

		fn := strings.TrimSpace(q.FieldName)

		if q.AnswerType == models.AnswerComputed {
			if fn == "" {
				setError(q.ID, func(e *models.QuestionErrors) {
					e.FieldName = "Computed fields require a machine-friendly field name"
				})
			}
			if strings.TrimSpace(q.MetaString(models.MetaComputedFormula)) == "" {
				setError(q.ID, func(e *models.QuestionErrors) {
					e.QuestionText = "Computed field requires a formula"
				})
			}
		}

		if fn != "" && fieldNameCounts[fn] > 1 {
			setError(q.ID, func(e *models.QuestionErrors) {
				e.FieldName = "Field name must be unique across the form"
			})
		}

		result.Warnings = append(result.Warnings, expressionWarnings(q, fieldNames)...)
	})

	result.Alerts = append(result.Alerts, groupNameAlerts(def)...)
	if len(result.Alerts) > 0 {
		result.Valid = false
	}
	if len(result.Questions) == 0 {
		result.Questions = nil
	}
	return result
}

// groupNameAlerts checks the repeatable-section invariant: every repeatable
// section carries a non-empty group name, unique across the definition.
func groupNameAlerts(def *models.FormDefinition) []string {
	var alerts []string
	counts := map[string]int{}
	for _, p := range def.Pages {
		for _, s := range p.Sections {
			if !s.IsRepeatable {
				continue
			}
			name := strings.TrimSpace(s.GroupName)
			if name == "" {
				alerts = append(alerts, fmt.Sprintf("Repeatable section %q must have a group name", s.Name))
				continue
			}
			counts[name]++
		}
	}
	for name, n := range counts {
		if n > 1 {
			alerts = append(alerts, fmt.Sprintf("Group name %q is used by %d repeatable sections; group names must be unique", name, n))
		}
	}
	return alerts
}

// expressionWarnings parses showIf and computedFormula strings. Broken
// expressions do not block the save (fill-time fails open), but the author
// is told about them.
func expressionWarnings(q *models.Question, fieldNames map[string]bool) []string {
	var warnings []string

	if showIf := strings.TrimSpace(q.MetaString(models.MetaShowIf)); showIf != "" {
		if _, err := expr.Parse(showIf); err != nil {
			warnings = append(warnings, fmt.Sprintf("Question %q: showIf does not parse (%v); it will always be visible", q.QuestionText, err))
		}
	}

	formula := strings.TrimSpace(q.MetaString(models.MetaComputedFormula))
	if q.AnswerType == models.AnswerComputed && formula != "" {
		node, err := expr.Parse(formula)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Question %q: formula does not parse (%v)", q.QuestionText, err))
			return warnings
		}
		for _, ref := range expr.Identifiers(node) {
			if !fieldNames[ref] {
				warnings = append(warnings, fmt.Sprintf("Question %q: formula references unknown field %q", q.QuestionText, ref))
			}
		}
	}

	for _, opt := range q.Options {
		if opt.ShowIf == "" {
			continue
		}
		if _, err := expr.Parse(opt.ShowIf); err != nil {
			warnings = append(warnings, fmt.Sprintf("Question %q option %q: showif does not parse (%v)", q.QuestionText, opt.Label, err))
		}
	}

	return warnings
}
