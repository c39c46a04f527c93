// server/internal/api/handlers/event_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EventHandler struct {
	DB *mongo.Database
}

// eventProjection is the public view of an event: the owner reference is
// replaced by the lister's display name.
func eventProjection() bson.M {
	return bson.M{
		"_id":          1,
		"name":         1,
		"eventDate":    1,
		"listedBy":     "$lister.fullname",
		"location":     1,
		"locationDesc": 1,
	}
}

// CreateEvent lists a new community health event for the calling NGO or
// provider. Events are immutable once created.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	name := c.PostForm("name")
	eventDate := c.PostForm("eventDate")
	location := c.PostForm("location")
	locationDesc := c.PostForm("locationDesc")

	if name == "" || eventDate == "" || location == "" || locationDesc == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Missing required fields"})
		return
	}

	point, err := models.ParseCoordinatePair(location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	now := time.Now()
	event := models.Event{
		Name:         name,
		EventDate:    eventDate,
		ListedBy:     userID,
		Location:     point,
		LocationDesc: locationDesc,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.DB.Collection(database.Events).InsertOne(context.Background(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to list event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event listed successfully"})
}

// ListAllEvents returns every event joined to its lister. Public.
func (h *EventHandler) ListAllEvents(c *gin.Context) {
	pipeline := mongo.Pipeline{
		database.LookupUser("listedBy", "lister"),
		database.Unwind("$lister"),
		database.Project(eventProjection()),
	}
	h.runEventPipeline(c, pipeline)
}

// ListMyEvents returns the events listed by the calling user.
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	pipeline := mongo.Pipeline{
		database.MatchOwner("listedBy", userID),
		database.LookupUser("listedBy", "lister"),
		database.Unwind("$lister"),
		database.Project(eventProjection()),
	}
	h.runEventPipeline(c, pipeline)
}

// GetEventByID returns one projected event or a structured not-found.
func (h *EventHandler) GetEventByID(c *gin.Context) {
	eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid event ID"})
		return
	}

	pipeline := mongo.Pipeline{
		database.MatchID(eventID),
		database.LookupUser("listedBy", "lister"),
		database.Unwind("$lister"),
		database.Project(eventProjection()),
	}

	cursor, err := h.DB.Collection(database.Events).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query events"})
		return
	}
	defer cursor.Close(context.Background())

	var events []bson.M
	if err = cursor.All(context.Background(), &events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode events"})
		return
	}
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event fetched", "data": events[0]})
}

func (h *EventHandler) runEventPipeline(c *gin.Context, pipeline mongo.Pipeline) {
	cursor, err := h.DB.Collection(database.Events).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query events"})
		return
	}
	defer cursor.Close(context.Background())

	var events []bson.M
	if err = cursor.All(context.Background(), &events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode events"})
		return
	}
	if events == nil {
		events = []bson.M{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Events fetched", "data": events})
}
