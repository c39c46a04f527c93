// server/internal/api/handlers/coach_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"community-health-api-server/internal/ai"
	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type CoachHandler struct {
	DB *mongo.Database
	AI ContentGenerator
}

// GenerateCoachingPlan asks the AI service for a lifestyle plan tailored to
// the submitted vitals and persists it as a health recommendation.
func (h *CoachHandler) GenerateCoachingPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	age, _ := strconv.Atoi(c.PostForm("age"))
	gender := c.PostForm("gender")
	height, _ := strconv.Atoi(c.PostForm("height"))
	weight, _ := strconv.Atoi(c.PostForm("weight"))
	disease := c.PostForm("disease")

	if age <= 0 || gender == "" || height <= 0 || weight <= 0 || disease == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Please fill all the fields"})
		return
	}

	prompt := ai.CoachPrompt(age, gender, height, weight, disease)
	raw, err := h.AI.GenerateContent(c.Request.Context(), prompt)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ai.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": true, "message": err.Error()})
		return
	}

	plan, err := ai.ParseObject(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to generate a coaching plan"})
		return
	}

	contentJSON, err := json.Marshal(plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "An unexpected error occurred"})
		return
	}

	now := time.Now()
	recommendation := models.HealthRecommendation{
		Content:           string(contentJSON),
		RecommendationFor: userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := h.DB.Collection(database.HealthRecommendations).InsertOne(context.Background(), recommendation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to save recommendation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Health recommendation generated successfully",
		"data":    plan,
	})
}
