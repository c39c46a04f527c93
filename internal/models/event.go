// server/internal/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a community health event listed by an NGO or a provider.
// EventDate is kept as the free-form string the lister typed. Events are
// immutable once created; there is no update or delete surface.
type Event struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	EventDate    string             `bson:"eventDate" json:"eventDate"`
	ListedBy     primitive.ObjectID `bson:"listedBy" json:"listedBy"`
	Location     GeoPoint           `bson:"location" json:"location"`
	LocationDesc string             `bson:"locationDesc" json:"locationDesc"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
