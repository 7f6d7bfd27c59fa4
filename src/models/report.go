package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerSet คือคำตอบทั้งชุดของการกรอกฟอร์มหนึ่งครั้ง
// Values:  questionId -> answer value (คำถามนอก repeatable section)
// Groups:  groupName  -> instances, แต่ละ instance คือ questionId -> value
type AnswerSet struct {
	Values map[string]any              `bson:"values" json:"values"`
	Groups map[string][]map[string]any `bson:"groups,omitempty" json:"groups,omitempty"`
}

// ActivityReport คือผลการกรอกฟอร์มหนึ่งครั้ง พร้อมคะแนนที่คำนวณตอน submit
type ActivityReport struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	ActivityID     primitive.ObjectID  `bson:"activityId" json:"activityId"`
	FacilityID     *primitive.ObjectID `bson:"facilityId,omitempty" json:"facilityId,omitempty"`
	UserID         *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Answers        AnswerSet           `bson:"answers" json:"answers"`
	Score          float64             `bson:"score" json:"score"`
	SectionScores  map[string]float64  `bson:"sectionScores,omitempty" json:"sectionScores,omitempty"`
	Status         string              `bson:"status" json:"status"` // Pending, Reviewed, Completed
	PreparedBy     string              `bson:"preparedBy,omitempty" json:"preparedBy,omitempty"`
	Remarks        string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	SubmissionDate time.Time           `bson:"submissionDate" json:"submissionDate"`
}
