// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"intrack/config"
	"intrack/database"
)

var (
	userCollection     *mongo.Collection
	sessionCollection  *mongo.Collection
	projectCollection  *mongo.Collection
	expenseCollection  *mongo.Collection
	leaveCollection    *mongo.Collection
	documentCollection *mongo.Collection
	counterCollection  *mongo.Collection
	auditLogCollection *mongo.Collection
)

func InitCollections() {
	db := database.Client.Database(config.DatabaseName)

	userCollection = db.Collection("users")
	sessionCollection = db.Collection("sessions")
	projectCollection = db.Collection("projects")
	expenseCollection = db.Collection("expenses")
	leaveCollection = db.Collection("leaves")
	documentCollection = db.Collection("documents")
	counterCollection = db.Collection("counters")
	auditLogCollection = db.Collection("audit_logs")
}
