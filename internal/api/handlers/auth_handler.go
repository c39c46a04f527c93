// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"community-health-api-server/internal/auth"
	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB *mongo.Database
}

// Register creates a user document plus the matching role profile. The two
// writes must both land: an invalid role or a failed profile insert
// compensates by deleting the user again, so no orphaned identity survives.
func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	role := c.PostForm("role")
	phone := c.PostForm("phone_number")
	addressJSON := c.PostForm("address")

	if name == "" || email == "" || password == "" || role == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "All fields are required."})
		return
	}
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": errInvalidRole.Error()})
		return
	}

	var address models.Address
	if addressJSON != "" {
		if err := json.Unmarshal([]byte(addressJSON), &address); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid address payload."})
			return
		}
	}

	users := h.DB.Collection(database.Users)

	count, err := users.CountDocuments(context.Background(), bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Registration failed. Please try again later."})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "User with this email already exists."})
		return
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Registration failed. Please try again later."})
		return
	}

	now := time.Now()
	newUser := models.User{
		Fullname:  name,
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := users.InsertOne(context.Background(), newUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "User with this email already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Registration failed. Please try again later."})
		return
	}
	userID := result.InsertedID.(primitive.ObjectID)

	profileCollection, profile, err := h.buildRoleProfile(c, role, userID, now)
	if err != nil {
		// Rejected profile fields: roll the user back so no identity exists
		// without a matching profile.
		users.DeleteOne(context.Background(), bson.M{"_id": userID})
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	if _, err := h.DB.Collection(profileCollection).InsertOne(context.Background(), profile); err != nil {
		users.DeleteOne(context.Background(), bson.M{"_id": userID})
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "A provider with this license ID already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Registration failed. Please try again later."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully.",
		"data": gin.H{
			"name":  newUser.Fullname,
			"email": newUser.Email,
		},
	})
}

// buildRoleProfile assembles the role-specific document for a new user.
func (h *AuthHandler) buildRoleProfile(c *gin.Context, role string, userID primitive.ObjectID, now time.Time) (string, interface{}, error) {
	switch role {
	case models.RolePatient:
		preferredLang := c.PostForm("preferredLang")
		if preferredLang == "" {
			preferredLang = "english"
		}
		return database.Patients, models.Patient{
			User:          userID,
			PreferredLang: preferredLang,
			CreatedAt:     now,
			UpdatedAt:     now,
		}, nil

	case models.RoleProvider:
		// An omitted field defaults to 0; anything present must parse as a
		// non-negative number.
		years := 0
		if raw := c.PostForm("yearsOfExperience"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return "", nil, errInvalidExperience
			}
			years = parsed
		}
		return database.HealthcareProviders, models.HealthcareProvider{
			User:                   userID,
			LicenseID:              c.PostForm("licenseId"),
			Specialization:         c.PostForm("specialization"),
			AssociatedOrganization: c.PostForm("associatedOrganization"),
			YearsOfExperience:      years,
			PreferredLang:          c.PostForm("preferredLang"),
			CalLink:                "",
			CreatedAt:              now,
			UpdatedAt:              now,
		}, nil

	case models.RoleNGO:
		return database.NGOs, models.NGO{
			ContactPerson:    userID,
			OrganizationName: c.PostForm("organizationName"),
			AreaOfFocus:      c.PostForm("areaOfFocus"),
			CreatedAt:        now,
			UpdatedAt:        now,
		}, nil
	}

	return "", nil, errInvalidRole
}

var (
	errInvalidRole       = errorString("Invalid role specified.")
	errInvalidExperience = errorString("Years of experience must be a non-negative number.")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// Login checks credentials and issues the session token the gate consumes.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Email and password are required."})
		return
	}

	var user models.User
	err := h.DB.Collection(database.Users).FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Could not generate token"})
		return
	}

	c.SetCookie(auth.SessionCookie, token, int((24 * time.Hour).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in",
		"data": gin.H{
			"token": token,
			"role":  user.Role,
		},
	})
}
