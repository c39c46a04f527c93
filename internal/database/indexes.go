// server/internal/database/indexes.go
package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the API.
const (
	Users                 = "users"
	Patients              = "patients"
	HealthcareProviders   = "healthcare_providers"
	NGOs                  = "ngos"
	Events                = "events"
	Reports               = "reports"
	Prescriptions         = "prescriptions"
	HealthRecommendations = "health_recommendations"
)

// EnsureIndexes creates the unique and geospatial indexes the data model
// relies on. It runs at startup, before the server accepts traffic, so the
// 2dsphere indexes on events and reports exist at all times.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(HealthcareProviders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "licenseId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	for _, name := range []string{Events, Reports} {
		_, err = db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		})
		if err != nil {
			return err
		}
	}

	log.Println("Database indexes ensured.")
	return nil
}
