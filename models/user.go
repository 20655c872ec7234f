// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid user roles. Everything role-gated in the API checks against these.
const (
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleEngineer   = "Engineer"
	RoleAccountant = "Accountant"
)

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	// NOTE: stored as plain text to match the system this replaces.
	// Hash before any production use.
	Password  string    `bson:"password" json:"-"`
	Role      string    `bson:"role" json:"role"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
