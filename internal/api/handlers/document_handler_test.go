package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-health-api-server/internal/ai"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocRouter(stub *stubGenerator) *gin.Engine {
	handler := &MedicalDocHandler{AI: stub}
	router := gin.New()
	router.POST("/p/medical-doc", handler.AnalyzeMedicalDocument)
	return router
}

func postImage(t *testing.T, router *gin.Engine, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, formContentType := multipartImage(t, contentType, payload)
	req := httptest.NewRequest(http.MethodPost, "/p/medical-doc", body)
	req.Header.Set("Content-Type", formContentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeMedicalDocument(t *testing.T) {
	stub := &stubGenerator{text: "```json\n{\"title\":\"Blood Report\",\"error\":false,\"sections\":[]}\n```"}
	router := newDocRouter(stub)
	payload := []byte("fake scan bytes")

	w := postImage(t, router, "image/png", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Blood Report", resp.Data["title"])

	// The document travels to the AI service exactly as uploaded.
	assert.Equal(t, "image/png", stub.lastMime)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), stub.lastData)
	assert.Contains(t, stub.lastPrompt, `"sections"`)
}

func TestAnalyzeMedicalDocumentDefaultsMIMEType(t *testing.T) {
	stub := &stubGenerator{text: `{"title":"Scan","error":false}`}
	router := newDocRouter(stub)

	w := postImage(t, router, "", []byte("bytes"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", stub.lastMime)
}

func TestAnalyzeMedicalDocumentWithoutFile(t *testing.T) {
	stub := &stubGenerator{}
	router := newDocRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/p/medical-doc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image file not found")
	assert.Equal(t, 0, stub.calls)
}

func TestAnalyzeMedicalDocumentTimeout(t *testing.T) {
	stub := &stubGenerator{err: ai.ErrTimeout}
	router := newDocRouter(stub)

	w := postImage(t, router, "image/png", []byte("bytes"))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestAnalyzeMedicalDocumentUnparsableResponse(t *testing.T) {
	stub := &stubGenerator{text: "I cannot read this image."}
	router := newDocRouter(stub)

	w := postImage(t, router, "image/png", []byte("bytes"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to analyze the medical document")
}

// A response that parses but declares error:true is a rejection, not a result.
func TestAnalyzeMedicalDocumentDeclaredError(t *testing.T) {
	stub := &stubGenerator{text: `{"error":true,"errorMessage":"This is not a medical document"}`}
	router := newDocRouter(stub)

	w := postImage(t, router, "image/png", []byte("bytes"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This is not a medical document")
	assert.NotContains(t, w.Body.String(), `"success"`)
}
