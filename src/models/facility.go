package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Facility คือสถานพยาบาล/สถานที่ที่ถูกติดตามบนแผนที่
type Facility struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	State         string             `bson:"state" json:"state" validate:"required"`
	LGA           string             `bson:"lga" json:"lga"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	ContactPerson string             `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Latitude      *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude     *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Remarks       string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
}
