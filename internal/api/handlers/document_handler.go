// server/internal/api/handlers/document_handler.go
package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"community-health-api-server/internal/ai"

	"github.com/gin-gonic/gin"
)

// MedicalDocHandler analyzes general medical documents (lab reports,
// discharge summaries, doctor's notes). Unlike prescriptions nothing is
// persisted; the parsed analysis goes straight back to the caller.
type MedicalDocHandler struct {
	AI ContentGenerator
}

func (h *MedicalDocHandler) AnalyzeMedicalDocument(c *gin.Context) {
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

	raw, err := h.AI.GenerateContentWithInlineData(
		c.Request.Context(),
		ai.MedicalDocPrompt(),
		mimeType,
		base64.StdEncoding.EncodeToString(fileBytes),
	)
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
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Failed to analyze the medical document"})
		return
	}

	if message, flagged := ai.ErrorFlag(analysis); flagged {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Medical document analyzed successfully",
		"data":    analysis,
	})
}
