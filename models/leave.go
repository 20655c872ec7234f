// models/leave.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Leave struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StartDate string             `bson:"startDate" json:"startDate"`
	EndDate   string             `bson:"endDate" json:"endDate"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status    string             `bson:"status" json:"status"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
