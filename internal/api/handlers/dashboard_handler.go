// server/internal/api/handlers/dashboard_handler.go
package handlers

import (
	"context"
	"net/http"

	"community-health-api-server/internal/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DashboardHandler serves the per-role dashboard payloads the gate redirects
// to: the caller's role profile flattened together with their user document.
type DashboardHandler struct {
	DB *mongo.Database
}

func (h *DashboardHandler) PatientDashboard(c *gin.Context) {
	h.profile(c, database.Patients, "user", bson.M{
		"_id":           0,
		"fullname":      "$owner.fullname",
		"email":         "$owner.email",
		"phone":         "$owner.phone",
		"address":       "$owner.address",
		"preferredLang": 1,
	})
}

func (h *DashboardHandler) ProviderDashboard(c *gin.Context) {
	h.profile(c, database.HealthcareProviders, "user", bson.M{
		"_id":                    0,
		"fullname":               "$owner.fullname",
		"email":                  "$owner.email",
		"phone":                  "$owner.phone",
		"specialization":         1,
		"associatedOrganization": 1,
		"yearsOfExperience":      1,
		"preferredLang":          1,
		"calLink":                1,
	})
}

func (h *DashboardHandler) NGODashboard(c *gin.Context) {
	h.profile(c, database.NGOs, "contactPerson", bson.M{
		"_id":              0,
		"fullname":         "$owner.fullname",
		"email":            "$owner.email",
		"phone":            "$owner.phone",
		"organizationName": 1,
		"areaOfFocus":      1,
	})
}

// profile runs the owner-join pipeline for one role collection. A missing
// profile for an authenticated caller means the registration invariant was
// broken, so it answers not-found rather than an empty object.
func (h *DashboardHandler) profile(c *gin.Context, collection, ownerField string, projection bson.M) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	pipeline := mongo.Pipeline{
		database.MatchOwner(ownerField, userID),
		database.LookupUser(ownerField, "owner"),
		database.Unwind("$owner"),
		database.Project(projection),
	}

	cursor, err := h.DB.Collection(collection).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query profile"})
		return
	}
	defer cursor.Close(context.Background())

	var profiles []bson.M
	if err = cursor.All(context.Background(), &profiles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode profile"})
		return
	}
	if len(profiles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile fetched", "data": profiles[0]})
}
