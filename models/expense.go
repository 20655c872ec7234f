// models/expense.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalEntry is one immutable audit record of a decision made against
// an expense. Entries are only ever appended, never reordered or removed.
type ApprovalEntry struct {
	By     primitive.ObjectID `bson:"by" json:"by"`
	Role   string             `bson:"role" json:"role"`
	Action string             `bson:"action" json:"action"`
	Note   string             `bson:"note,omitempty" json:"note,omitempty"`
	At     time.Time          `bson:"at" json:"at"`
}

type Expense struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectID   string               `bson:"projectId" json:"projectId"`
	Amount      primitive.Decimal128 `bson:"amount" json:"amount"`
	Currency    string               `bson:"currency" json:"currency"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Status      string               `bson:"status" json:"status"`
	RequestedBy primitive.ObjectID   `bson:"requestedBy" json:"requestedBy"`
	Approvals   []ApprovalEntry      `bson:"approvals" json:"approvals"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
