package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// stubGenerator is a canned AI client for handler tests.
type stubGenerator struct {
	text string
	err  error

	calls      int
	lastPrompt string
	lastMime   string
	lastData   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.text, s.err
}

func (s *stubGenerator) GenerateContentWithInlineData(_ context.Context, prompt, mimeType, base64Data string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastMime = mimeType
	s.lastData = base64Data
	return s.text, s.err
}

// asUser attaches the authenticated identity the way Authenticate does.
func asUser(id primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id.Hex())
		c.Set("user_role", "patient")
	}
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartImage builds a request body with an imgFile part. An empty
// contentType leaves the part header without one.
func multipartImage(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="imgFile"; filename="scan.png"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestGenerateCoachingPlanRequiresAllFields(t *testing.T) {
	stub := &stubGenerator{}
	handler := &CoachHandler{AI: stub}

	router := gin.New()
	router.POST("/p/coach", asUser(primitive.NewObjectID()), handler.GenerateCoachingPlan)

	cases := []url.Values{
		{},
		{"age": {"34"}, "gender": {"female"}, "height": {"165"}, "weight": {"60"}},             // no disease
		{"age": {"0"}, "gender": {"female"}, "height": {"165"}, "weight": {"60"}, "disease": {"asthma"}}, // zero age
		{"age": {"x"}, "gender": {"female"}, "height": {"165"}, "weight": {"60"}, "disease": {"asthma"}}, // non-numeric age
	}

	for _, form := range cases {
		w := postForm(router, "/p/coach", form)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please fill all the fields")
	}
	// Invalid input must never reach the AI service.
	assert.Equal(t, 0, stub.calls)
}

func TestGenerateCoachingPlanWithoutIdentity(t *testing.T) {
	handler := &CoachHandler{AI: &stubGenerator{}}
	router := gin.New()
	router.POST("/p/coach", handler.GenerateCoachingPlan)

	w := postForm(router, "/p/coach", url.Values{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateCoachingPlanRejectsUnparsableResponse(t *testing.T) {
	stub := &stubGenerator{text: "Sorry, I can only help with medical questions."}
	handler := &CoachHandler{AI: stub}
	router := gin.New()
	router.POST("/p/coach", asUser(primitive.NewObjectID()), handler.GenerateCoachingPlan)

	w := postForm(router, "/p/coach", url.Values{
		"age": {"34"}, "gender": {"female"}, "height": {"165"}, "weight": {"60"}, "disease": {"asthma"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate a coaching plan")
	assert.Contains(t, stub.lastPrompt, "34-year-old female")
}

func TestCreateReportValidation(t *testing.T) {
	handler := &ReportHandler{}
	router := gin.New()
	router.POST("/p/report", asUser(primitive.NewObjectID()), handler.CreateReport)

	cases := []struct {
		name    string
		form    url.Values
		message string
	}{
		{
			"missing fields",
			url.Values{"title": {"Dengue cluster"}},
			"Missing required fields",
		},
		{
			"unknown report type",
			url.Values{"title": {"t"}, "reportType": {"weather"}, "details": {"d"}, "location": {"77.5,12.9"}},
			"Invalid report type",
		},
		{
			"latitude out of range",
			url.Values{"title": {"t"}, "reportType": {"illness"}, "details": {"d"}, "location": {"77.5,95"}},
			"",
		},
		{
			"single coordinate",
			url.Values{"title": {"t"}, "reportType": {"illness"}, "details": {"d"}, "location": {"77.5"}},
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(router, "/p/report", tc.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			if tc.message != "" {
				assert.Contains(t, w.Body.String(), tc.message)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	handler := &AuthHandler{}
	router := gin.New()
	router.POST("/auth/register", handler.Register)

	w := postForm(router, "/auth/register", url.Values{"name": {"Asha"}, "email": {"asha@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required.")

	w = postForm(router, "/auth/register", url.Values{
		"name": {"Asha"}, "email": {"asha@example.com"}, "password": {"secret"},
		"role": {"patient"}, "phone_number": {"9999999999"}, "address": {"not json"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid address payload.")

	// A role outside the closed set is rejected before any write.
	w = postForm(router, "/auth/register", url.Values{
		"name": {"Asha"}, "email": {"asha@example.com"}, "password": {"secret"},
		"role": {"admin"}, "phone_number": {"9999999999"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role specified.")
}

func TestLoginRequiresCredentials(t *testing.T) {
	handler := &AuthHandler{}
	router := gin.New()
	router.POST("/auth/login", handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"asha@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email and password are required.")
}
