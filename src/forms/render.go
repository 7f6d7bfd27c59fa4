package forms

import (
	"strconv"
	"strings"

	"Backend-FacilityWatch-001/src/expr"
	"Backend-FacilityWatch-001/src/models"
)

// QuestionState is the live render contract for a single question: what the
// UI needs to decide whether and how to draw it.
type QuestionState struct {
	QuestionID    string          `json:"questionId"`
	FieldName     string          `json:"fieldName,omitempty"`
	Visible       bool            `json:"visible"`
	Value         any             `json:"value,omitempty"`
	ComputedValue any             `json:"computedValue,omitempty"` // nil = undefined sentinel
	Options       []models.Option `json:"options,omitempty"`       // options passing their showif
	Score         float64         `json:"score"`
}

// InstanceResult is one instance of a repeatable section.
type InstanceResult struct {
	Questions map[string]QuestionState `json:"questions"`
	Score     float64                  `json:"score"`
}

// RenderResult aggregates the evaluation of a whole definition against one
// answer set.
type RenderResult struct {
	Questions     map[string]QuestionState    `json:"questions"`               // by question ID, non-repeatable sections
	Groups        map[string][]InstanceResult `json:"groups,omitempty"`        // by group name, repeatable sections
	SectionScores map[string]float64          `json:"sectionScores,omitempty"` // by section ID
	TotalScore    float64                     `json:"totalScore"`
}

// Evaluate resolves visibility, computed values and scores for every
// question in def against the given answers. Hidden or unanswered questions
// contribute zero score. Repeatable sections are evaluated once per answer
// instance, with instance fields shadowing top-level fields; formulas cannot
// reach across instances.
func Evaluate(def *models.FormDefinition, answers models.AnswerSet) RenderResult {
	result := RenderResult{
		Questions:     map[string]QuestionState{},
		SectionScores: map[string]float64{},
	}
	if def == nil {
		return result
	}

	// scope over answered top-level fields only: an unanswered field must be
	// absent so that referencing it is an evaluation error (fail-open for
	// showIf, undefined sentinel for formulas)
	scope := expr.Scope{}
	def.EachQuestion(func(_ *models.FormPage, s *models.FormSection, q *models.Question) {
		if s.IsRepeatable || q.FieldName == "" {
			return
		}
		if v, ok := answers.Values[q.ID]; ok && Answered(v) {
			scope[q.FieldName] = coerce(v)
		}
	})

	computed := resolveComputed(def, scope, func(s *models.FormSection) bool { return !s.IsRepeatable })

	for pi := range def.Pages {
		page := &def.Pages[pi]
		for si := range page.Sections {
			section := &page.Sections[si]
			if section.IsRepeatable {
				instances := evaluateRepeatable(def, section, answers, scope)
				var sectionScore float64
				for _, inst := range instances {
					sectionScore += inst.Score
				}
				if result.Groups == nil {
					result.Groups = map[string][]InstanceResult{}
				}
				result.Groups[section.GroupName] = instances
				result.SectionScores[section.ID] = sectionScore
				result.TotalScore += sectionScore
				continue
			}

			var sectionScore float64
			for qi := range section.Questions {
				q := &section.Questions[qi]
				state := evaluateQuestion(q, answers.Values[q.ID], computed[q.ID], scope)
				result.Questions[q.ID] = state
				sectionScore += state.Score
			}
			result.SectionScores[section.ID] = sectionScore
			result.TotalScore += sectionScore
		}
	}

	return result
}

// evaluateRepeatable evaluates each answer instance of a repeatable section.
// The instance scope is the outer scope with the section's own answered
// fields laid over it.
func evaluateRepeatable(def *models.FormDefinition, section *models.FormSection, answers models.AnswerSet, outer expr.Scope) []InstanceResult {
	instanceAnswers := answers.Groups[section.GroupName]
	instances := make([]InstanceResult, 0, len(instanceAnswers))

	for _, values := range instanceAnswers {
		scope := expr.Scope{}
		for k, v := range outer {
			scope[k] = v
		}
		for qi := range section.Questions {
			q := &section.Questions[qi]
			if q.FieldName == "" {
				continue
			}
			if v, ok := values[q.ID]; ok && Answered(v) {
				scope[q.FieldName] = coerce(v)
			}
		}

		computed := resolveComputed(def, scope, func(s *models.FormSection) bool { return s.ID == section.ID })

		inst := InstanceResult{Questions: map[string]QuestionState{}}
		for qi := range section.Questions {
			q := &section.Questions[qi]
			state := evaluateQuestion(q, values[q.ID], computed[q.ID], scope)
			inst.Questions[q.ID] = state
			inst.Score += state.Score
		}
		instances = append(instances, inst)
	}
	return instances
}

// resolveComputed evaluates every computed question in sections accepted by
// include, writing results back into scope so chained formulas can settle.
// Recompute-all is iterated to a fixpoint bounded by the number of computed
// questions, which is the path length of the longest possible dependency
// chain.
func resolveComputed(def *models.FormDefinition, scope expr.Scope, include func(*models.FormSection) bool) map[string]any {
	type computedQ struct {
		id, fieldName, formula string
	}
	var qs []computedQ
	def.EachQuestion(func(_ *models.FormPage, s *models.FormSection, q *models.Question) {
		if !include(s) || q.AnswerType != models.AnswerComputed {
			return
		}
		qs = append(qs, computedQ{q.ID, q.FieldName, strings.TrimSpace(q.MetaString(models.MetaComputedFormula))})
	})

	values := map[string]any{}
	for pass := 0; pass <= len(qs); pass++ {
		changed := false
		for _, cq := range qs {
			v, ok := expr.EvaluateFormula(cq.formula, scope)
			if !ok {
				continue
			}
			if prev, seen := values[cq.id]; !seen || prev != v {
				values[cq.id] = v
				changed = true
			}
			if cq.fieldName != "" {
				scope[cq.fieldName] = v
			}
		}
		if !changed {
			break
		}
	}
	return values
}

func evaluateQuestion(q *models.Question, value, computedValue any, scope expr.Scope) QuestionState {
	state := QuestionState{
		QuestionID: q.ID,
		FieldName:  q.FieldName,
		Visible:    expr.EvaluateVisibility(strings.TrimSpace(q.MetaString(models.MetaShowIf)), scope),
		Value:      value,
	}

	if q.AnswerType == models.AnswerComputed {
		state.ComputedValue = computedValue
		state.Value = computedValue
	}

	for _, opt := range q.Options {
		if expr.EvaluateVisibility(opt.ShowIf, scope) {
			state.Options = append(state.Options, opt)
		}
	}

	if state.Visible {
		state.Score = questionScore(q, state)
	}
	return state
}

// questionScore sums the applicable score for one visible question: option
// scores matched by answer value (checkbox sums every selected option),
// otherwise the question's direct metadata score. Unanswered questions
// contribute zero.
func questionScore(q *models.Question, state QuestionState) float64 {
	if !Answered(state.Value) {
		return 0
	}

	if len(state.Options) > 0 {
		optionScores := map[string]float64{}
		for _, opt := range state.Options {
			if opt.Score != nil {
				optionScores[opt.Value] = *opt.Score
			}
		}
		if len(optionScores) > 0 {
			var total float64
			matched := false
			for _, selected := range selectedValues(state.Value) {
				if s, ok := optionScores[selected]; ok {
					total += s
					matched = true
				}
			}
			if matched {
				return total
			}
		}
	}

	if q.Metadata != nil {
		if raw, ok := q.Metadata[models.MetaScore]; ok {
			if f, ok := toFloat(raw); ok {
				return f
			}
		}
	}
	return 0
}

// selectedValues normalizes an answer to the option values it selects.
func selectedValues(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, answerString(item))
		}
		return out
	default:
		return []string{answerString(v)}
	}
}

func answerString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Answered reports whether a value counts as an answer: nil, empty string
// and empty slices do not.
func Answered(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(x) != ""
	case []any:
		return len(x) > 0
	case []string:
		return len(x) > 0
	default:
		return true
	}
}

// coerce turns numeric answer strings into numbers so comparisons and
// formulas behave; everything else passes through unchanged.
func coerce(v any) any {
	if s, ok := v.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" {
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return f
			}
		}
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
