// server/internal/api/handlers/provider_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProviderHandler struct {
	DB *mongo.Database
}

// ListProviders returns the provider directory: profile fields flattened
// together with the owning user's contact details. Internal references are
// never exposed; the projected id is the user's, which is what the booking
// flow keys on.
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	pipeline := mongo.Pipeline{
		database.LookupUser("user", "user"),
		database.Unwind("$user"),
		database.Project(bson.M{
			"_id":                    "$user._id",
			"fullname":               "$user.fullname",
			"email":                  "$user.email",
			"phone":                  "$user.phone",
			"specialization":         1,
			"associatedOrganization": 1,
			"yearsOfExperience":      1,
			"calLink":                1,
		}),
	}

	cursor, err := h.DB.Collection(database.HealthcareProviders).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query providers"})
		return
	}
	defer cursor.Close(context.Background())

	var providers []bson.M
	if err = cursor.All(context.Background(), &providers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode providers"})
		return
	}
	if providers == nil {
		providers = []bson.M{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Health Providers fetched", "data": providers})
}

// GetBookingLink returns the calling provider's consultation booking link.
func (h *ProviderHandler) GetBookingLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var provider models.HealthcareProvider
	err := h.DB.Collection(database.HealthcareProviders).
		FindOne(context.Background(), bson.M{"user": userID}).Decode(&provider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Provider profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to fetch booking link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link fetched", "data": gin.H{"link": provider.CalLink}})
}

// SaveBookingLink sets the calling provider's booking link with a single
// atomic find-and-update.
func (h *ProviderHandler) SaveBookingLink(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	calLink := c.PostForm("calLink")
	if calLink == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Missing required fields"})
		return
	}

	result := h.DB.Collection(database.HealthcareProviders).FindOneAndUpdate(
		context.Background(),
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"calLink": calLink, "updatedAt": time.Now()}},
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Provider profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to update link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link Updated"})
}
