// Package forms is the form-definition core: structural mutation of the
// schema tree, save-time validation, fill-time evaluation and bulk-import
// row mapping. The package is pure — persistence and transport live in
// services and controllers.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"Backend-FacilityWatch-001/src/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Direction of an adjacent-swap move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

var (
	ErrLastPage        = errors.New("a form must keep at least one page")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NewDefinition returns the empty definition every activity starts from:
// one page with one untouched section.
func NewDefinition(activityID primitive.ObjectID) *models.FormDefinition {
	return &models.FormDefinition{
		ActivityID: activityID,
		Pages: []models.FormPage{{
			ID:   uuid.NewString(),
			Name: "Page 1",
			Sections: []models.FormSection{{
				ID:        uuid.NewString(),
				Name:      "General Information",
				Questions: []models.Question{},
			}},
		}},
	}
}

// Builder mutates one in-memory definition tree. One builder per editing
// session; nothing is persisted until the service saves the whole tree.
type Builder struct {
	Def *models.FormDefinition
}

func NewBuilder(def *models.FormDefinition) *Builder {
	if def == nil {
		def = NewDefinition(primitive.NilObjectID)
	}
	if len(def.Pages) == 0 {
		def.Pages = NewDefinition(def.ActivityID).Pages
	}
	return &Builder{Def: def}
}

// Clone deep-copies the definition so an editing draft can be discarded.
func Clone(def *models.FormDefinition) *models.FormDefinition {
	if def == nil {
		return nil
	}
	out := &models.FormDefinition{ID: def.ID, ActivityID: def.ActivityID}
	out.Pages = make([]models.FormPage, len(def.Pages))
	for pi, p := range def.Pages {
		np := models.FormPage{ID: p.ID, Name: p.Name}
		np.Sections = make([]models.FormSection, len(p.Sections))
		for si, s := range p.Sections {
			ns := s
			ns.Questions = make([]models.Question, len(s.Questions))
			for qi, q := range s.Questions {
				nq := q
				if q.Options != nil {
					nq.Options = append([]models.Option(nil), q.Options...)
				}
				if q.Metadata != nil {
					nq.Metadata = make(map[string]any, len(q.Metadata))
					for k, v := range q.Metadata {
						nq.Metadata[k] = v
					}
				}
				ns.Questions[qi] = nq
			}
			np.Sections[si] = ns
		}
		out.Pages[pi] = np
	}
	return out
}

// AddPage appends a page with one empty section and returns it.
func (b *Builder) AddPage() *models.FormPage {
	page := models.FormPage{
		ID:   uuid.NewString(),
		Name: fmt.Sprintf("Page %d", len(b.Def.Pages)+1),
		Sections: []models.FormSection{{
			ID:        uuid.NewString(),
			Name:      "New Section",
			Questions: []models.Question{},
		}},
	}
	b.Def.Pages = append(b.Def.Pages, page)
	return &b.Def.Pages[len(b.Def.Pages)-1]
}

// DeletePage removes the page at index. Deleting the last remaining page is
// rejected so the page invariant always holds.
func (b *Builder) DeletePage(index int) error {
	if index < 0 || index >= len(b.Def.Pages) {
		return ErrIndexOutOfRange
	}
	if len(b.Def.Pages) == 1 {
		return ErrLastPage
	}
	b.Def.Pages = append(b.Def.Pages[:index], b.Def.Pages[index+1:]...)
	return nil
}

// AddSection appends an empty section to the page at pageIndex.
func (b *Builder) AddSection(pageIndex int) (*models.FormSection, error) {
	if pageIndex < 0 || pageIndex >= len(b.Def.Pages) {
		return nil, ErrIndexOutOfRange
	}
	page := &b.Def.Pages[pageIndex]
	page.Sections = append(page.Sections, models.FormSection{
		ID:        uuid.NewString(),
		Name:      "New Section",
		Questions: []models.Question{},
	})
	return &page.Sections[len(page.Sections)-1], nil
}

// MoveSection swaps the section with its neighbor. Moves past either end are
// silent no-ops, matching the disabled arrows in the builder UI.
func (b *Builder) MoveSection(pageIndex, sectionIndex int, dir Direction) error {
	if pageIndex < 0 || pageIndex >= len(b.Def.Pages) {
		return ErrIndexOutOfRange
	}
	sections := b.Def.Pages[pageIndex].Sections
	if sectionIndex < 0 || sectionIndex >= len(sections) {
		return ErrIndexOutOfRange
	}
	switch {
	case dir == MoveUp && sectionIndex > 0:
		sections[sectionIndex], sections[sectionIndex-1] = sections[sectionIndex-1], sections[sectionIndex]
	case dir == MoveDown && sectionIndex < len(sections)-1:
		sections[sectionIndex], sections[sectionIndex+1] = sections[sectionIndex+1], sections[sectionIndex]
	}
	return nil
}

// AddQuestion appends a question of the given type with builder defaults.
func (b *Builder) AddQuestion(pageIndex, sectionIndex int, t models.AnswerType) (*models.Question, error) {
	section, err := b.section(pageIndex, sectionIndex)
	if err != nil {
		return nil, err
	}

	q := models.Question{
		ID:           uuid.NewString(),
		QuestionText: "New Question",
		AnswerType:   t,
		ColumnSize:   12,
		FieldName:    b.uniqueFieldName(MakeFieldName("New Question")),
	}
	if t.HasOptions() {
		q.Options = []models.Option{{Label: "Option 1", Value: "1"}}
	}
	if t == models.AnswerFile {
		q.Metadata = map[string]any{models.MetaAllowedFileTypes: []string{"image/*", ".pdf"}}
	}

	section.Questions = append(section.Questions, q)
	return &section.Questions[len(section.Questions)-1], nil
}

// DeleteQuestion removes the question at the given position.
func (b *Builder) DeleteQuestion(pageIndex, sectionIndex, questionIndex int) error {
	section, err := b.section(pageIndex, sectionIndex)
	if err != nil {
		return err
	}
	if questionIndex < 0 || questionIndex >= len(section.Questions) {
		return ErrIndexOutOfRange
	}
	section.Questions = append(section.Questions[:questionIndex], section.Questions[questionIndex+1:]...)
	return nil
}

// MoveQuestion swaps the question with its neighbor; boundary moves are
// silent no-ops.
func (b *Builder) MoveQuestion(pageIndex, sectionIndex, questionIndex int, dir Direction) error {
	section, err := b.section(pageIndex, sectionIndex)
	if err != nil {
		return err
	}
	qs := section.Questions
	if questionIndex < 0 || questionIndex >= len(qs) {
		return ErrIndexOutOfRange
	}
	switch {
	case dir == MoveUp && questionIndex > 0:
		qs[questionIndex], qs[questionIndex-1] = qs[questionIndex-1], qs[questionIndex]
	case dir == MoveDown && questionIndex < len(qs)-1:
		qs[questionIndex], qs[questionIndex+1] = qs[questionIndex+1], qs[questionIndex]
	}
	return nil
}

// SetRepeatable toggles a section's repeatable flag. Turning it on assigns a
// group name derived from the section name, made unique across the whole
// definition. A later rename can reintroduce a collision; validation catches
// that at save time.
func (b *Builder) SetRepeatable(pageIndex, sectionIndex int, repeatable bool) error {
	section, err := b.section(pageIndex, sectionIndex)
	if err != nil {
		return err
	}
	section.IsRepeatable = repeatable
	if repeatable && section.GroupName == "" {
		section.GroupName = GenerateUniqueGroupName(b.Def, section.Name)
	}
	if !repeatable {
		section.GroupName = ""
	}
	return nil
}

func (b *Builder) section(pageIndex, sectionIndex int) (*models.FormSection, error) {
	if pageIndex < 0 || pageIndex >= len(b.Def.Pages) {
		return nil, ErrIndexOutOfRange
	}
	page := &b.Def.Pages[pageIndex]
	if sectionIndex < 0 || sectionIndex >= len(page.Sections) {
		return nil, ErrIndexOutOfRange
	}
	return &page.Sections[sectionIndex], nil
}

// uniqueFieldName suffixes base until it is unused in the definition, so a
// freshly added question never starts out colliding.
func (b *Builder) uniqueFieldName(base string) string {
	used := map[string]bool{}
	b.Def.EachQuestion(func(_ *models.FormPage, _ *models.FormSection, q *models.Question) {
		if q.FieldName != "" {
			used[q.FieldName] = true
		}
	})
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// MakeFieldName derives a machine identifier from question text: lowercased,
// runs of non-alphanumerics collapsed to '_', leading/trailing '_' trimmed.
// Never returns "".
func MakeFieldName(text string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.Trim(sb.String(), "_")
	if name == "" {
		return "f_" + strings.Split(uuid.NewString(), "-")[0]
	}
	return name
}

// GenerateUniqueGroupName slugifies preferred (falling back to "group") and
// appends _1, _2, ... until the name collides with no group name in the
// definition.
func GenerateUniqueGroupName(def *models.FormDefinition, preferred string) string {
	base := MakeFieldName(preferred)
	if strings.TrimSpace(preferred) == "" {
		base = "group"
	}

	used := map[string]bool{}
	for _, p := range def.Pages {
		for _, s := range p.Sections {
			if s.GroupName != "" {
				used[s.GroupName] = true
			}
		}
	}

	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}
