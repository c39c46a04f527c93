// server/internal/models/prescription.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription stores the analysis of an uploaded prescription image.
// Content is the AI service's JSON kept as opaque text; ImageURL points at
// the object-storage copy of the original upload.
type Prescription struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	Content        string             `bson:"content" json:"content"`
	PrescriptionOf primitive.ObjectID `bson:"prescriptionOf" json:"prescriptionOf"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HealthRecommendation stores a generated lifestyle coaching plan as opaque
// JSON text.
type HealthRecommendation struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content           string             `bson:"content" json:"content"`
	RecommendationFor primitive.ObjectID `bson:"recommendationFor" json:"recommendationFor"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
