// server/internal/api/handlers/translate_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"community-health-api-server/internal/ai"
	"community-health-api-server/internal/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TranslateHandler struct {
	DB *mongo.Database
	AI ContentGenerator
}

// TranslateContent translates previously generated AI content into the
// calling patient's preferred language. The translation preserves the shape
// of the input object and never mutates the stored source, so toggling
// between the original and translated views is lossless.
func (h *TranslateHandler) TranslateContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	content := c.PostForm("content")
	if strings.TrimSpace(content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Content not provided"})
		return
	}

	// Resolve the target language from the patient profile joined to the user.
	pipeline := mongo.Pipeline{
		database.MatchOwner("user", userID),
		database.LookupUser("user", "patientDetails"),
		database.Unwind("$patientDetails"),
		database.Project(bson.M{
			"_id":           0,
			"fullname":      "$patientDetails.fullname",
			"preferredLang": 1,
		}),
	}

	cursor, err := h.DB.Collection(database.Patients).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to resolve patient profile"})
		return
	}
	defer cursor.Close(context.Background())

	var profiles []struct {
		Fullname      string `bson:"fullname"`
		PreferredLang string `bson:"preferredLang"`
	}
	if err = cursor.All(context.Background(), &profiles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to resolve patient profile"})
		return
	}
	if len(profiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Patient profile not found"})
		return
	}

	prompt := ai.TranslatePrompt(profiles[0].PreferredLang, content)
	raw, err := h.AI.GenerateContent(c.Request.Context(), prompt)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ai.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": true, "message": err.Error()})
		return
	}

	translated, err := ai.ParseObject(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to translate content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content translated successfully",
		"data":    translated,
	})
}
