package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
)

func TestNewDefinition(t *testing.T) {
	def := NewDefinition(primitive.NewObjectID())

	assert.Len(t, def.Pages, 1)
	assert.Equal(t, "Page 1", def.Pages[0].Name)
	assert.Len(t, def.Pages[0].Sections, 1)
	assert.Equal(t, "General Information", def.Pages[0].Sections[0].Name)
	assert.Empty(t, def.Pages[0].Sections[0].Questions)
}

func TestBuilderPages(t *testing.T) {
	b := NewBuilder(NewDefinition(primitive.NewObjectID()))

	t.Run("AddPageNumbersSequentially", func(t *testing.T) {
		page := b.AddPage()
		assert.Equal(t, "Page 2", page.Name)
		assert.Len(t, page.Sections, 1)
	})

	t.Run("DeletePage", func(t *testing.T) {
		assert.NoError(t, b.DeletePage(1))
		assert.Len(t, b.Def.Pages, 1)
	})

	t.Run("DeleteLastPageRejected", func(t *testing.T) {
		err := b.DeletePage(0)
		assert.ErrorIs(t, err, ErrLastPage)
		assert.Len(t, b.Def.Pages, 1)
	})

	t.Run("DeleteOutOfRange", func(t *testing.T) {
		assert.ErrorIs(t, b.DeletePage(5), ErrIndexOutOfRange)
	})
}

func TestBuilderQuestions(t *testing.T) {
	b := NewBuilder(NewDefinition(primitive.NewObjectID()))

	t.Run("AddQuestionDefaults", func(t *testing.T) {
		q, err := b.AddQuestion(0, 0, models.AnswerText)
		assert.NoError(t, err)
		assert.Equal(t, "New Question", q.QuestionText)
		assert.Equal(t, 12, q.ColumnSize)
		assert.Equal(t, "new_question", q.FieldName)
		assert.Empty(t, q.Options)
	})

	t.Run("SecondQuestionGetsSuffixedFieldName", func(t *testing.T) {
		q, err := b.AddQuestion(0, 0, models.AnswerText)
		assert.NoError(t, err)
		assert.Equal(t, "new_question_1", q.FieldName)
	})

	t.Run("OptionTypesStartWithOneOption", func(t *testing.T) {
		q, err := b.AddQuestion(0, 0, models.AnswerDropdown)
		assert.NoError(t, err)
		assert.Len(t, q.Options, 1)
	})

	t.Run("FileTypeGetsAllowedTypes", func(t *testing.T) {
		q, err := b.AddQuestion(0, 0, models.AnswerFile)
		assert.NoError(t, err)
		assert.Contains(t, q.Metadata, models.MetaAllowedFileTypes)
	})

	t.Run("MoveQuestionSwapsNeighbors", func(t *testing.T) {
		first := b.Def.Pages[0].Sections[0].Questions[0].ID
		second := b.Def.Pages[0].Sections[0].Questions[1].ID

		assert.NoError(t, b.MoveQuestion(0, 0, 0, MoveDown))
		qs := b.Def.Pages[0].Sections[0].Questions
		assert.Equal(t, second, qs[0].ID)
		assert.Equal(t, first, qs[1].ID)
	})

	t.Run("MovePastBoundaryIsNoOp", func(t *testing.T) {
		before := b.Def.Pages[0].Sections[0].Questions[0].ID
		assert.NoError(t, b.MoveQuestion(0, 0, 0, MoveUp))
		assert.Equal(t, before, b.Def.Pages[0].Sections[0].Questions[0].ID)
	})

	t.Run("DeleteQuestion", func(t *testing.T) {
		count := len(b.Def.Pages[0].Sections[0].Questions)
		assert.NoError(t, b.DeleteQuestion(0, 0, 0))
		assert.Len(t, b.Def.Pages[0].Sections[0].Questions, count-1)
	})
}

func TestBuilderSections(t *testing.T) {
	b := NewBuilder(NewDefinition(primitive.NewObjectID()))

	s, err := b.AddSection(0)
	assert.NoError(t, err)
	assert.Equal(t, "New Section", s.Name)

	t.Run("MoveSection", func(t *testing.T) {
		first := b.Def.Pages[0].Sections[0].ID
		assert.NoError(t, b.MoveSection(0, 1, MoveUp))
		assert.Equal(t, first, b.Def.Pages[0].Sections[1].ID)
	})

	t.Run("MoveSectionPastBoundaryIsNoOp", func(t *testing.T) {
		first := b.Def.Pages[0].Sections[0].ID
		assert.NoError(t, b.MoveSection(0, 0, MoveUp))
		assert.Equal(t, first, b.Def.Pages[0].Sections[0].ID)
	})
}

func TestSetRepeatable(t *testing.T) {
	b := NewBuilder(NewDefinition(primitive.NewObjectID()))
	b.Def.Pages[0].Sections[0].Name = "Staff Details"

	t.Run("AssignsGroupNameFromSectionName", func(t *testing.T) {
		assert.NoError(t, b.SetRepeatable(0, 0, true))
		s := b.Def.Pages[0].Sections[0]
		assert.True(t, s.IsRepeatable)
		assert.Equal(t, "staff_details", s.GroupName)
	})

	t.Run("TurningOffClearsGroupName", func(t *testing.T) {
		assert.NoError(t, b.SetRepeatable(0, 0, false))
		s := b.Def.Pages[0].Sections[0]
		assert.False(t, s.IsRepeatable)
		assert.Empty(t, s.GroupName)
	})
}

func TestGenerateUniqueGroupName(t *testing.T) {
	def := NewDefinition(primitive.NewObjectID())

	t.Run("SlugifiesSectionName", func(t *testing.T) {
		assert.Equal(t, "staff_details", GenerateUniqueGroupName(def, "Staff Details"))
	})

	t.Run("SuffixesOnCollision", func(t *testing.T) {
		def.Pages[0].Sections[0].GroupName = "staff_details"
		assert.Equal(t, "staff_details_1", GenerateUniqueGroupName(def, "Staff Details"))
	})

	t.Run("CountsUpPastExistingSuffixes", func(t *testing.T) {
		def.Pages[0].Sections = append(def.Pages[0].Sections, models.FormSection{
			ID: "s2", Name: "More Staff", GroupName: "staff_details_1",
		})
		assert.Equal(t, "staff_details_2", GenerateUniqueGroupName(def, "Staff Details"))
	})

	t.Run("EmptyNameFallsBack", func(t *testing.T) {
		assert.Equal(t, "group", GenerateUniqueGroupName(NewDefinition(primitive.NilObjectID), "  "))
	})
}

func TestMakeFieldName(t *testing.T) {
	assert.Equal(t, "patient_age", MakeFieldName("Patient Age"))
	assert.Equal(t, "how_many_beds", MakeFieldName("How many beds?"))
	assert.Equal(t, "q1_total", MakeFieldName("Q1 (total)"))

	// unusable text still yields a non-empty identifier
	assert.NotEmpty(t, MakeFieldName("???"))
	assert.NotEqual(t, MakeFieldName("???"), MakeFieldName("Patient Age"))
}

func TestClone(t *testing.T) {
	def := NewDefinition(primitive.NewObjectID())
	b := NewBuilder(def)
	q, _ := b.AddQuestion(0, 0, models.AnswerRadio)
	q.Metadata = map[string]any{models.MetaShowIf: "x == 1"}

	clone := Clone(def)
	clone.Pages[0].Sections[0].Questions[0].Options[0].Label = "changed"
	clone.Pages[0].Sections[0].Questions[0].Metadata[models.MetaShowIf] = "x == 2"

	assert.Equal(t, "Option 1", def.Pages[0].Sections[0].Questions[0].Options[0].Label)
	assert.Equal(t, "x == 1", def.Pages[0].Sections[0].Questions[0].Metadata[models.MetaShowIf])
}
