package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
)

func score(v float64) *float64 { return &v }

func renderDefinition() *models.FormDefinition {
	return &models.FormDefinition{
		ActivityID: primitive.NewObjectID(),
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:   "s1",
				Name: "General Information",
				Questions: []models.Question{
					{ID: "q_a", FieldName: "a", QuestionText: "A", AnswerType: models.AnswerNumber},
					{ID: "q_double", FieldName: "a_double", QuestionText: "Double of A", AnswerType: models.AnswerComputed,
						Metadata: map[string]any{models.MetaComputedFormula: "a * 2"}},
					{ID: "q_age", FieldName: "age", QuestionText: "Age", AnswerType: models.AnswerNumber},
					{ID: "q_adult", FieldName: "adult_detail", QuestionText: "Adult detail", AnswerType: models.AnswerText,
						Metadata: map[string]any{models.MetaShowIf: "age > 18"}},
				},
			}},
		}},
	}
}

func TestEvaluateComputedField(t *testing.T) {
	def := renderDefinition()

	t.Run("ResolvesFromAnswer", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_a": float64(5)}})
		assert.Equal(t, float64(10), result.Questions["q_double"].ComputedValue)
	})

	t.Run("NumericStringAnswer", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_a": "5"}})
		assert.Equal(t, float64(10), result.Questions["q_double"].ComputedValue)
	})

	t.Run("UnansweredDependencyIsUndefined", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{}})
		assert.Nil(t, result.Questions["q_double"].ComputedValue)
	})

	t.Run("ChainedFormulasSettle", func(t *testing.T) {
		chained := renderDefinition()
		chained.Pages[0].Sections[0].Questions = append(chained.Pages[0].Sections[0].Questions, models.Question{
			ID: "q_quad", FieldName: "a_quad", QuestionText: "Quadruple", AnswerType: models.AnswerComputed,
			Metadata: map[string]any{models.MetaComputedFormula: "a_double * 2"},
		})
		result := Evaluate(chained, models.AnswerSet{Values: map[string]any{"q_a": float64(3)}})
		assert.Equal(t, float64(6), result.Questions["q_double"].ComputedValue)
		assert.Equal(t, float64(12), result.Questions["q_quad"].ComputedValue)
	})
}

func TestEvaluateVisibilityStates(t *testing.T) {
	def := renderDefinition()

	t.Run("ConditionTrue", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_age": float64(30)}})
		assert.True(t, result.Questions["q_adult"].Visible)
	})

	t.Run("ConditionFalse", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_age": float64(12)}})
		assert.False(t, result.Questions["q_adult"].Visible)
	})

	// an unanswered dependency makes the reference fail, and failure means
	// the question is shown
	t.Run("UnansweredDependencyShowsQuestion", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{}})
		assert.True(t, result.Questions["q_adult"].Visible)
	})

	t.Run("EmptyStringAnswerCountsAsUnanswered", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_age": "  "}})
		assert.True(t, result.Questions["q_adult"].Visible)
	})
}

func TestEvaluateScoring(t *testing.T) {
	def := &models.FormDefinition{
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:   "s1",
				Name: "Power",
				Questions: []models.Question{
					{ID: "q_src", FieldName: "power_source", QuestionText: "Source", AnswerType: models.AnswerRadio,
						Options: []models.Option{
							{Label: "Grid", Value: "grid", Score: score(5)},
							{Label: "None", Value: "none", Score: score(0)},
						}},
					{ID: "q_svc", FieldName: "services", QuestionText: "Services", AnswerType: models.AnswerCheckbox,
						Options: []models.Option{
							{Label: "OPD", Value: "opd", Score: score(1)},
							{Label: "Lab", Value: "lab", Score: score(2)},
							{Label: "Surgery", Value: "surgery", Score: score(3)},
						}},
					{ID: "q_meta", FieldName: "has_fence", QuestionText: "Fenced?", AnswerType: models.AnswerText,
						Metadata: map[string]any{models.MetaScore: float64(2)}},
				},
			}},
		}},
	}

	t.Run("RadioScoresSelectedOption", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_src": "grid"}})
		assert.Equal(t, float64(5), result.Questions["q_src"].Score)
	})

	t.Run("CheckboxSumsSelections", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_svc": []any{"opd", "lab"}}})
		assert.Equal(t, float64(3), result.Questions["q_svc"].Score)
	})

	t.Run("MetadataScoreWhenAnswered", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_meta": "yes"}})
		assert.Equal(t, float64(2), result.Questions["q_meta"].Score)
	})

	t.Run("UnansweredScoresZero", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{}})
		assert.Zero(t, result.Questions["q_src"].Score)
		assert.Zero(t, result.Questions["q_meta"].Score)
	})

	t.Run("TotalAndSectionScores", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{
			"q_src":  "grid",
			"q_svc":  []any{"surgery"},
			"q_meta": "yes",
		}})
		assert.Equal(t, float64(10), result.SectionScores["s1"])
		assert.Equal(t, float64(10), result.TotalScore)
	})
}

func TestEvaluateHiddenQuestionScoresZero(t *testing.T) {
	def := &models.FormDefinition{
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:   "s1",
				Name: "S",
				Questions: []models.Question{
					{ID: "q_gate", FieldName: "gate", QuestionText: "Gate", AnswerType: models.AnswerText},
					{ID: "q_hidden", FieldName: "hidden", QuestionText: "Hidden", AnswerType: models.AnswerText,
						Metadata: map[string]any{
							models.MetaShowIf: "gate == 'open'",
							models.MetaScore:  float64(5),
						}},
				},
			}},
		}},
	}

	result := Evaluate(def, models.AnswerSet{Values: map[string]any{
		"q_gate":   "closed",
		"q_hidden": "stale answer",
	}})
	assert.False(t, result.Questions["q_hidden"].Visible)
	assert.Zero(t, result.Questions["q_hidden"].Score)
	assert.Zero(t, result.TotalScore)
}

func TestEvaluateOptionShowIf(t *testing.T) {
	def := &models.FormDefinition{
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:   "s1",
				Name: "S",
				Questions: []models.Question{
					{ID: "q_beds", FieldName: "bed_count", QuestionText: "Beds", AnswerType: models.AnswerNumber},
					{ID: "q_svc", FieldName: "services", QuestionText: "Services", AnswerType: models.AnswerCheckbox,
						Options: []models.Option{
							{Label: "OPD", Value: "opd"},
							{Label: "Surgery", Value: "surgery", ShowIf: "bed_count > 10"},
						}},
				},
			}},
		}},
	}

	t.Run("OptionHiddenBelowThreshold", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_beds": float64(4)}})
		assert.Len(t, result.Questions["q_svc"].Options, 1)
		assert.Equal(t, "opd", result.Questions["q_svc"].Options[0].Value)
	})

	t.Run("OptionShownAboveThreshold", func(t *testing.T) {
		result := Evaluate(def, models.AnswerSet{Values: map[string]any{"q_beds": float64(30)}})
		assert.Len(t, result.Questions["q_svc"].Options, 2)
	})
}

func TestEvaluateRepeatableSections(t *testing.T) {
	def := &models.FormDefinition{
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{
				{
					ID:   "s1",
					Name: "General",
					Questions: []models.Question{
						{ID: "q_state", FieldName: "state", QuestionText: "State", AnswerType: models.AnswerText},
					},
				},
				{
					ID:           "s2",
					Name:         "Staff",
					IsRepeatable: true,
					GroupName:    "staff",
					Questions: []models.Question{
						{ID: "q_years", FieldName: "years", QuestionText: "Years", AnswerType: models.AnswerNumber},
						{ID: "q_senior", FieldName: "senior_note", QuestionText: "Senior note", AnswerType: models.AnswerText,
							Metadata: map[string]any{models.MetaShowIf: "years >= 10"}},
						{ID: "q_double", FieldName: "years_double", QuestionText: "Double", AnswerType: models.AnswerComputed,
							Metadata: map[string]any{models.MetaComputedFormula: "years * 2"}},
					},
				},
			},
		}},
	}

	answers := models.AnswerSet{
		Values: map[string]any{"q_state": "Kano"},
		Groups: map[string][]map[string]any{
			"staff": {
				{"q_years": float64(12)},
				{"q_years": float64(3)},
			},
		},
	}

	result := Evaluate(def, answers)
	instances := result.Groups["staff"]
	assert.Len(t, instances, 2)

	t.Run("InstancesEvaluateIndependently", func(t *testing.T) {
		assert.True(t, instances[0].Questions["q_senior"].Visible)
		assert.False(t, instances[1].Questions["q_senior"].Visible)
		assert.Equal(t, float64(24), instances[0].Questions["q_double"].ComputedValue)
		assert.Equal(t, float64(6), instances[1].Questions["q_double"].ComputedValue)
	})

	t.Run("OuterFieldsVisibleInsideInstances", func(t *testing.T) {
		withOuter := Clone(def)
		withOuter.Pages[0].Sections[1].Questions[1].Metadata[models.MetaShowIf] = "state == 'Kano' && years >= 10"
		r := Evaluate(withOuter, answers)
		assert.True(t, r.Groups["staff"][0].Questions["q_senior"].Visible)
		assert.False(t, r.Groups["staff"][1].Questions["q_senior"].Visible)
	})

	t.Run("NoInstancesNoGroupResults", func(t *testing.T) {
		r := Evaluate(def, models.AnswerSet{Values: map[string]any{}})
		assert.Empty(t, r.Groups["staff"])
	})
}

func TestAnswered(t *testing.T) {
	assert.False(t, Answered(nil))
	assert.False(t, Answered(""))
	assert.False(t, Answered("   "))
	assert.False(t, Answered([]any{}))
	assert.False(t, Answered([]string{}))
	assert.True(t, Answered("yes"))
	assert.True(t, Answered(float64(0)))
	assert.True(t, Answered([]string{"a"}))
}
