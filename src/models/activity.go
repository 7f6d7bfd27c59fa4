package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity คือกิจกรรมเก็บข้อมูลหนึ่งรายการ ฟอร์มหนึ่งชุดผูกกับ Activity แบบ 1:1
type Activity struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title               string             `bson:"title" json:"title" validate:"required"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Category            string             `bson:"category,omitempty" json:"category,omitempty"`
	DataCollectionLevel string             `bson:"dataCollectionLevel" json:"dataCollectionLevel" validate:"omitempty,oneof=User Facility"`
	Status              string             `bson:"status" json:"status" validate:"omitempty,oneof=Draft Published Archived"`
	CreatedBy           string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt           time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
