// server/internal/api/handlers/handlers.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentGenerator is the slice of the AI client the handlers depend on.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateContentWithInlineData(ctx context.Context, prompt, mimeType, base64Data string) (string, error)
}

// FileStore is the slice of the object-storage uploader the handlers depend
// on: the upload step of the prescription flow and its compensating delete.
type FileStore interface {
	UploadDataURI(ctx context.Context, dataURI, folder string) (url, objectKey string, err error)
	DeleteFile(ctx context.Context, objectKey string) error
}

// currentUserID reads the authenticated caller's id set by the Authenticate
// middleware. The bool is false when the request somehow bypassed it.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	idHex := c.GetString("user_id")
	if idHex == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// abortUnauthorized answers the context-missing case uniformly.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized user"})
}
