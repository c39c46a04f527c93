package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// stubFileStore records upload and delete calls for saga assertions.
type stubFileStore struct {
	url string
	key string
	err error

	uploads []string
	deleted []string
}

func (s *stubFileStore) UploadDataURI(_ context.Context, _, folder string) (string, string, error) {
	s.uploads = append(s.uploads, folder)
	if s.err != nil {
		return "", "", s.err
	}
	return s.url, s.key, nil
}

func (s *stubFileStore) DeleteFile(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func newLensRouter(handler *PrescriptionHandler) *gin.Engine {
	router := gin.New()
	router.POST("/p/lens", asUser(primitive.NewObjectID()), handler.AnalyzePrescription)
	return router
}

func postLensImage(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, "image/png", []byte("fake scan"))
	req := httptest.NewRequest(http.MethodPost, "/p/lens", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// An AI-declared failure ends the flow before the upload step: nothing is
// stored and nothing needs compensating.
func TestAnalyzePrescriptionDeclaredErrorSkipsUpload(t *testing.T) {
	store := &stubFileStore{}
	handler := &PrescriptionHandler{
		AI:       &stubGenerator{text: `{"error":true,"errorMessage":"Not a prescription"}`},
		Uploader: store,
	}

	w := postLensImage(t, newLensRouter(handler))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not a prescription")
	assert.Empty(t, store.uploads)
	assert.Empty(t, store.deleted)
}

func TestAnalyzePrescriptionUploadFailure(t *testing.T) {
	store := &stubFileStore{err: errors.New("bucket unavailable")}
	handler := &PrescriptionHandler{
		AI:       &stubGenerator{text: `{"title":"Rx","error":false,"medicines":[]}`},
		Uploader: store,
	}

	w := postLensImage(t, newLensRouter(handler))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to upload prescription image")
	assert.Empty(t, store.deleted)
}

// A failed transactional save must delete the object that was already
// uploaded, so no orphaned file survives the request.
func TestAnalyzePrescriptionCompensatesFailedSave(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert failure deletes upload", func(mt *mtest.T) {
		store := &stubFileStore{
			url: "https://cdn.example.org/prescriptions/x.png",
			key: "prescriptions/x.png",
		}
		handler := &PrescriptionHandler{
			DB:       mt.DB,
			AI:       &stubGenerator{text: `{"title":"Rx","error":false,"medicines":[]}`},
			Uploader: store,
		}

		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate"}),
			mtest.CreateSuccessResponse(), // abortTransaction
		)

		w := postLensImage(mt.T, newLensRouter(handler))

		assert.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.Contains(mt, w.Body.String(), "Failed to save prescription")
		assert.Equal(mt, []string{"prescriptions"}, store.uploads)
		assert.Equal(mt, []string{"prescriptions/x.png"}, store.deleted)
	})
}
