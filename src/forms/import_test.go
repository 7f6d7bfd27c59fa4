package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
)

func TestParseSheet(t *testing.T) {
	rows := [][]string{
		{"Question", "Type", "field_name", "Required", "Page", "Section", "showif", "calculation", "group_name"},
		{"Facility name", "textbox", "facility_name", "TRUE", "Page 1", "General", "", "", ""},
		{"Beds", "number", "bed_count", "true", "Page 1", "General", "", "", ""},
		{"", "number", "ignored", "", "", "", "", "", ""},
		{"Staff years", "number", "years", "", "Page 2", "Staff", "", "", "staff"},
	}

	parsed := ParseSheet(rows)
	assert.Len(t, parsed, 3)

	assert.Equal(t, "Facility name", parsed[0].Question)
	assert.Equal(t, "textbox", parsed[0].Type)
	assert.Equal(t, "facility_name", parsed[0].FieldName)
	assert.Equal(t, "TRUE", parsed[0].Required)
	assert.Equal(t, "staff", parsed[2].GroupName)

	t.Run("HeaderCaseInsensitive", func(t *testing.T) {
		upper := [][]string{
			{"QUESTION", "TYPE"},
			{"Beds", "number"},
		}
		p := ParseSheet(upper)
		assert.Len(t, p, 1)
		assert.Equal(t, "number", p[0].Type)
	})

	t.Run("UnknownColumnsIgnored", func(t *testing.T) {
		extra := [][]string{
			{"Question", "internal_note"},
			{"Beds", "leftover"},
		}
		p := ParseSheet(extra)
		assert.Len(t, p, 1)
		assert.Equal(t, "Beds", p[0].Question)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		assert.Nil(t, ParseSheet([][]string{{"Question"}}))
	})
}

func TestParseOptionsSheet(t *testing.T) {
	rows := [][]string{
		{"name", "value", "label", "showif", "score"},
		{"power_source", "grid", "National grid", "", "5"},
		{"power_source", "none", "", "", "0"},
		{"services", "surgery", "Surgery", "bed_count > 10", ""},
		{"", "orphan", "Orphan", "", ""},
	}

	options := ParseOptionsSheet(rows)
	assert.Len(t, options, 2)
	assert.Len(t, options["power_source"], 2)

	grid := options["power_source"][0]
	assert.Equal(t, "National grid", grid.Label)
	assert.Equal(t, float64(5), *grid.Score)

	t.Run("LabelDefaultsToValue", func(t *testing.T) {
		assert.Equal(t, "none", options["power_source"][1].Label)
	})

	t.Run("ShowIfCarriedThrough", func(t *testing.T) {
		assert.Equal(t, "bed_count > 10", options["services"][0].ShowIf)
		assert.Nil(t, options["services"][0].Score)
	})
}

func TestBuildFragment(t *testing.T) {
	rows := []ImportRow{
		{Question: "Facility name", Type: "textbox", FieldName: "facility_name", Required: "true", ColumnSize: "6", Page: "Page 1", Section: "General"},
		{Question: "Power source", Type: "radio", FieldName: "power_source", Page: "Page 1", Section: "Power"},
		{Question: "Staff years", Type: "number", FieldName: "years", Page: "Page 2", Section: "Staff", GroupName: "staff"},
	}
	options := map[string][]models.Option{
		"power_source": {{Label: "Grid", Value: "grid"}},
	}

	fragment := BuildFragment(rows, options)
	assert.Len(t, fragment.Pages, 2)
	assert.Len(t, fragment.Pages[0].Sections, 2)

	t.Run("QuestionMapping", func(t *testing.T) {
		q := fragment.Pages[0].Sections[0].Questions[0]
		assert.Equal(t, "Facility name", q.QuestionText)
		assert.Equal(t, models.AnswerText, q.AnswerType)
		assert.True(t, q.Required)
		assert.Equal(t, 6, q.ColumnSize)
	})

	t.Run("OptionsJoinedByFieldName", func(t *testing.T) {
		q := fragment.Pages[0].Sections[1].Questions[0]
		assert.Len(t, q.Options, 1)
		assert.Equal(t, "grid", q.Options[0].Value)
	})

	t.Run("GroupNameMarksSectionRepeatable", func(t *testing.T) {
		s := fragment.Pages[1].Sections[0]
		assert.True(t, s.IsRepeatable)
		assert.Equal(t, "staff", s.GroupName)
	})
}

func TestBuildFragmentDefaults(t *testing.T) {
	fragment := BuildFragment([]ImportRow{{Question: "How many beds?"}}, nil)

	assert.Len(t, fragment.Pages, 1)
	assert.Equal(t, "Page 1", fragment.Pages[0].Name)
	assert.Equal(t, "General Information", fragment.Pages[0].Sections[0].Name)

	q := fragment.Pages[0].Sections[0].Questions[0]

	t.Run("MissingTypeDefaultsToText", func(t *testing.T) {
		assert.Equal(t, models.AnswerText, q.AnswerType)
	})

	t.Run("FieldNameDerivedFromQuestion", func(t *testing.T) {
		assert.Equal(t, "how_many_beds", q.FieldName)
	})

	t.Run("ColumnSizeDefaultsToFull", func(t *testing.T) {
		assert.Equal(t, 12, q.ColumnSize)
	})

	t.Run("UnknownTypeDefaultsToText", func(t *testing.T) {
		f := BuildFragment([]ImportRow{{Question: "X", Type: "nonsense"}}, nil)
		assert.Equal(t, models.AnswerText, f.Pages[0].Sections[0].Questions[0].AnswerType)
	})
}

func TestBuildFragmentMetadata(t *testing.T) {
	rows := []ImportRow{
		{Question: "Adult detail", ShowIf: "age > 18"},
		{Question: "Total", Type: "computed", FieldName: "total", Calculation: "a + b"},
		{Question: "Fenced?", Score: "2.5"},
		{Question: "Remarks", ReviewersComment: "true"},
	}

	qs := BuildFragment(rows, nil).Pages[0].Sections[0].Questions
	assert.Equal(t, "age > 18", qs[0].Metadata[models.MetaShowIf])
	assert.Equal(t, "a + b", qs[1].Metadata[models.MetaComputedFormula])
	assert.Equal(t, models.AnswerComputed, qs[1].AnswerType)
	assert.Equal(t, float64(2.5), qs[2].Metadata[models.MetaScore])
	assert.Equal(t, true, qs[3].Metadata[models.MetaDisplayReviewersComment])
}

func TestMerge(t *testing.T) {
	def := &models.FormDefinition{
		ActivityID: primitive.NewObjectID(),
		Pages: []models.FormPage{{
			ID:   "p1",
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:   "s1",
				Name: "General",
				Questions: []models.Question{
					{ID: "q1", FieldName: "existing", QuestionText: "Existing", AnswerType: models.AnswerText},
				},
			}},
		}},
	}

	fragment := BuildFragment([]ImportRow{
		{Question: "New in general", FieldName: "new_general", Page: "Page 1", Section: "General"},
		{Question: "On a new page", FieldName: "new_page_q", Page: "Page 2", Section: "Extras"},
	}, nil)

	Merge(def, fragment)

	t.Run("AppendsIntoExistingSection", func(t *testing.T) {
		qs := def.Pages[0].Sections[0].Questions
		assert.Len(t, qs, 2)
		assert.Equal(t, "existing", qs[0].FieldName)
		assert.Equal(t, "new_general", qs[1].FieldName)
	})

	t.Run("CreatesMissingPagesAndSections", func(t *testing.T) {
		assert.Len(t, def.Pages, 2)
		assert.Equal(t, "Page 2", def.Pages[1].Name)
		assert.Equal(t, "Extras", def.Pages[1].Sections[0].Name)
		assert.Len(t, def.Pages[1].Sections[0].Questions, 1)
	})

	t.Run("MergedResultPassesValidation", func(t *testing.T) {
		result := ValidateForm(def)
		assert.True(t, result.Valid)
	})

	t.Run("RepeatableFlagPropagates", func(t *testing.T) {
		repeat := BuildFragment([]ImportRow{
			{Question: "Years", FieldName: "years", Page: "Page 1", Section: "General", GroupName: "staff"},
		}, nil)
		Merge(def, repeat)
		s := def.Pages[0].Sections[0]
		assert.True(t, s.IsRepeatable)
		assert.Equal(t, "staff", s.GroupName)
	})
}
