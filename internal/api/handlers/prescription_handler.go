// server/internal/api/handlers/prescription_handler.go
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"community-health-api-server/internal/ai"
	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PrescriptionHandler struct {
	DB       *mongo.Database
	AI       ContentGenerator
	Uploader FileStore
}

// AnalyzePrescription runs the multi-step prescription flow: AI vision
// analysis, object-storage upload, then the database write inside a session
// transaction. A failure after the upload compensates by deleting the stored
// object, so no partial record survives any exit path.
func (h *PrescriptionHandler) AnalyzePrescription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	fileHeader, err := c.FormFile("imgFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Image file not found"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to read image file"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to read image file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	base64Data := base64.StdEncoding.EncodeToString(fileBytes)

	raw, err := h.AI.GenerateContentWithInlineData(c.Request.Context(), ai.PrescriptionPrompt(), mimeType, base64Data)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ai.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": true, "message": err.Error()})
		return
	}

	analysis, err := ai.ParseObject(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to analyze the prescription image"})
		return
	}

	// The service reports unreadable or non-prescription uploads through its
	// error flag; surface the message and persist nothing.
	if message, flagged := ai.ErrorFlag(analysis); flagged {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": message})
		return
	}

	contentJSON, err := json.Marshal(analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "An unexpected error occurred"})
		return
	}

	dataURI := "data:" + mimeType + ";base64," + base64Data
	imageURL, objectKey, err := h.Uploader.UploadDataURI(context.Background(), dataURI, "prescriptions")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to upload prescription image"})
		return
	}

	session, err := h.DB.Client().StartSession()
	if err != nil {
		h.compensateUpload(objectKey)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to start database session"})
		return
	}
	defer session.EndSession(context.Background())

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		now := time.Now()
		prescription := models.Prescription{
			ImageURL:       imageURL,
			Content:        string(contentJSON),
			PrescriptionOf: userID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return h.DB.Collection(database.Prescriptions).InsertOne(sessCtx, prescription)
	}

	if _, err := session.WithTransaction(context.Background(), callback); err != nil {
		h.compensateUpload(objectKey)
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to save prescription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Prescription analyzed successfully",
		"data":    analysis,
	})
}

func (h *PrescriptionHandler) compensateUpload(objectKey string) {
	if err := h.Uploader.DeleteFile(context.Background(), objectKey); err != nil {
		log.Printf("Failed to delete orphaned prescription upload %s: %v", objectKey, err)
	}
}

// ListMyPrescriptions returns the calling patient's analyzed prescriptions.
func (h *PrescriptionHandler) ListMyPrescriptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	pipeline := mongo.Pipeline{
		database.MatchOwner("prescriptionOf", userID),
		database.LookupUser("prescriptionOf", "owner"),
		database.Unwind("$owner"),
		database.Project(bson.M{
			"_id":            1,
			"imageUrl":       1,
			"content":        1,
			"prescriptionOf": "$owner.fullname",
			"createdAt":      1,
		}),
	}

	cursor, err := h.DB.Collection(database.Prescriptions).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query prescriptions"})
		return
	}
	defer cursor.Close(context.Background())

	var prescriptions []bson.M
	if err = cursor.All(context.Background(), &prescriptions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode prescriptions"})
		return
	}
	if prescriptions == nil {
		prescriptions = []bson.M{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Prescriptions fetched", "data": prescriptions})
}
