package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerType คือชนิดคำตอบของคำถามในฟอร์ม
type AnswerType string

const (
	AnswerText      AnswerType = "textbox"
	AnswerNumber    AnswerType = "number"
	AnswerEmail     AnswerType = "email"
	AnswerPhone     AnswerType = "phone"
	AnswerDate      AnswerType = "date"
	AnswerTextarea  AnswerType = "textarea"
	AnswerDropdown  AnswerType = "dropdown"
	AnswerCheckbox  AnswerType = "checkbox"
	AnswerRadio     AnswerType = "radio"
	AnswerFile      AnswerType = "file"
	AnswerComputed  AnswerType = "computed"
	AnswerParagraph AnswerType = "paragraph"
)

// HasOptions reports whether questions of this type must carry options.
func (t AnswerType) HasOptions() bool {
	return t == AnswerDropdown || t == AnswerRadio || t == AnswerCheckbox
}

// ValidAnswerType reports whether t is one of the supported answer types.
func ValidAnswerType(t AnswerType) bool {
	switch t {
	case AnswerText, AnswerNumber, AnswerEmail, AnswerPhone, AnswerDate,
		AnswerTextarea, AnswerDropdown, AnswerCheckbox, AnswerRadio,
		AnswerFile, AnswerComputed, AnswerParagraph:
		return true
	}
	return false
}

// Metadata keys recognized by the builder and renderer. The map is open:
// unknown keys are stored and returned untouched.
const (
	MetaShowIf                  = "showIf"
	MetaComputedFormula         = "computedFormula"
	MetaScore                   = "score"
	MetaAllowedFileTypes        = "allowedFileTypes"
	MetaShowOnMap               = "show_on_map"
	MetaShowOnMapRoles          = "show_on_map_roles"
	MetaDisplayReviewersComment = "displayReviewersComment"
)

// --- Option ---
type Option struct {
	Label  string   `bson:"label" json:"label"`
	Value  string   `bson:"value" json:"value"`
	Score  *float64 `bson:"score,omitempty" json:"score,omitempty"`
	ShowIf string   `bson:"showif,omitempty" json:"showif,omitempty"`
}

// --- Question ---
type Question struct {
	ID             string         `bson:"_id" json:"id"`
	FieldName      string         `bson:"fieldName,omitempty" json:"fieldName,omitempty"`
	QuestionText   string         `bson:"questionText" json:"questionText"`
	QuestionHelper string         `bson:"questionHelper,omitempty" json:"questionHelper,omitempty"`
	AnswerType     AnswerType     `bson:"answerType" json:"answerType"`
	Options        []Option       `bson:"options,omitempty" json:"options,omitempty"`
	Required       bool           `bson:"required" json:"required"`
	ColumnSize     int            `bson:"columnSize" json:"columnSize"` // 12, 6, 4 or 3 (layout only)
	QuestionGroup  string         `bson:"questionGroup,omitempty" json:"questionGroup,omitempty"`
	Metadata       map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// MetaString returns metadata[key] as a trimmed-type string ("" when absent
// or not a string).
func (q *Question) MetaString(key string) string {
	if q.Metadata == nil {
		return ""
	}
	s, _ := q.Metadata[key].(string)
	return s
}

// --- FormSection ---
type FormSection struct {
	ID           string     `bson:"_id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	IsRepeatable bool       `bson:"isRepeatable,omitempty" json:"isRepeatable,omitempty"`
	GroupName    string     `bson:"groupName,omitempty" json:"groupName,omitempty"`
	Questions    []Question `bson:"questions" json:"questions"`
}

// --- FormPage ---
type FormPage struct {
	ID       string        `bson:"_id" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Sections []FormSection `bson:"sections" json:"sections"`
}

// FormDefinition คือโครงสร้างฟอร์มทั้งหมดของ Activity หนึ่งรายการ
// (Pages -> Sections -> Questions) บันทึกทั้งต้นไม้ในเอกสารเดียว
type FormDefinition struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ActivityID primitive.ObjectID `bson:"activityId" json:"activityId"`
	Pages      []FormPage         `bson:"pages" json:"pages"`
}

// EachQuestion calls fn for every question in page/section order.
func (fd *FormDefinition) EachQuestion(fn func(p *FormPage, s *FormSection, q *Question)) {
	for pi := range fd.Pages {
		p := &fd.Pages[pi]
		for si := range p.Sections {
			s := &p.Sections[si]
			for qi := range s.Questions {
				fn(p, s, &s.Questions[qi])
			}
		}
	}
}

// QuestionErrors เก็บข้อความ validation ต่อคำถามหนึ่งข้อ
type QuestionErrors struct {
	QuestionText string `json:"questionText,omitempty"`
	Options      string `json:"options,omitempty"`
	FieldName    string `json:"fieldName,omitempty"`
}

// Empty reports whether no error message is set.
func (e QuestionErrors) Empty() bool {
	return e.QuestionText == "" && e.Options == "" && e.FieldName == ""
}

// ValidationResult is the aggregate outcome of validating a FormDefinition
// before save. Alerts are blocking form-level messages (group-name problems),
// Warnings are non-blocking (unparseable expressions).
type ValidationResult struct {
	Valid     bool                      `json:"valid"`
	Questions map[string]QuestionErrors `json:"questions,omitempty"` // keyed by question ID
	Alerts    []string                  `json:"alerts,omitempty"`
	Warnings  []string                  `json:"warnings,omitempty"`
}
