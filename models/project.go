// models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number      int64              `bson:"number" json:"number"`
	Title       string             `bson:"title" json:"title"`
	Client      string             `bson:"client" json:"client"`
	Status      string             `bson:"status" json:"status"`
	ManagerID   string             `bson:"managerId,omitempty" json:"managerId,omitempty"`
	EngineerIDs []string           `bson:"engineerIds" json:"engineerIds"`
	CreatedBy   primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
