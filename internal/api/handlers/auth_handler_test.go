package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newRegisterRouter(handler *AuthHandler) *gin.Engine {
	router := gin.New()
	router.POST("/auth/register", handler.Register)
	return router
}

func providerForm() url.Values {
	return url.Values{
		"name":           {"Dr. Rao"},
		"email":          {"rao@example.com"},
		"password":       {"secret"},
		"role":           {"healthcare_provider"},
		"phone_number":   {"9999999999"},
		"licenseId":      {"LIC-1"},
		"specialization": {"Cardiology"},
	}
}

func startedCommands(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

// A failed profile insert must delete the already-inserted user, so no
// identity survives without a matching profile.
func TestRegisterRollsBackFailedProfileInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate license id", func(mt *mtest.T) {
		router := newRegisterRouter(&AuthHandler{DB: mt.DB})

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "health.users", mtest.FirstBatch), // email is free
			mtest.CreateSuccessResponse(),                                   // user insert
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(), // compensating user delete
		)

		w := postForm(router, "/auth/register", providerForm())

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "A provider with this license ID already exists.")
		assert.Contains(mt, startedCommands(mt), "delete")
	})
}

// A non-numeric yearsOfExperience is a client error; the user insert that
// preceded the profile build is rolled back.
func TestRegisterRejectsMalformedExperience(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non-numeric years", func(mt *mtest.T) {
		router := newRegisterRouter(&AuthHandler{DB: mt.DB})

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "health.users", mtest.FirstBatch),
			mtest.CreateSuccessResponse(), // user insert
			mtest.CreateSuccessResponse(), // compensating user delete
		)

		form := providerForm()
		form.Set("yearsOfExperience", "abc")
		w := postForm(router, "/auth/register", form)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Years of experience must be a non-negative number.")

		// Exactly one insert (the user) was attempted, then compensated.
		names := startedCommands(mt)
		inserts := 0
		for _, name := range names {
			if name == "insert" {
				inserts++
			}
		}
		assert.Equal(mt, 1, inserts)
		assert.Contains(mt, names, "delete")
	})
}
