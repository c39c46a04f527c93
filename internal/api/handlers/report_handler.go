// server/internal/api/handlers/report_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"community-health-api-server/internal/database"
	"community-health-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReportHandler struct {
	DB *mongo.Database
}

// CreateReport submits a geo-tagged incident report for the calling patient.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	title := c.PostForm("title")
	reportType := c.PostForm("reportType")
	details := c.PostForm("details")
	location := c.PostForm("location")

	if title == "" || reportType == "" || details == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Missing required fields"})
		return
	}
	if !models.ValidReportType(reportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid report type"})
		return
	}

	point, err := models.ParseCoordinatePair(location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	now := time.Now()
	report := models.Report{
		Title:      title,
		ReportType: reportType,
		Details:    details,
		ReportedBy: userID,
		Location:   point,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := h.DB.Collection(database.Reports).InsertOne(context.Background(), report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to submit report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report submitted successfully"})
}

// ListAllReports returns every report with the reporter's display name, for
// the NGO listing view.
func (h *ReportHandler) ListAllReports(c *gin.Context) {
	pipeline := mongo.Pipeline{
		database.LookupUser("reportedBy", "reporter"),
		database.Unwind("$reporter"),
		database.Project(bson.M{
			"_id":        1,
			"title":      1,
			"reportType": 1,
			"details":    1,
			"reportedBy": "$reporter.fullname",
			"location":   1,
		}),
	}

	cursor, err := h.DB.Collection(database.Reports).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query reports"})
		return
	}
	defer cursor.Close(context.Background())

	var reports []bson.M
	if err = cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode reports"})
		return
	}
	if reports == nil {
		reports = []bson.M{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reports fetched", "data": reports})
}

// GetReportByID returns one report with the reporter's name and, when the
// reporter happens to be an NGO contact, the organization name. The NGO join
// is optional decoration; the owner join stays strict.
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "Invalid report ID"})
		return
	}

	pipeline := mongo.Pipeline{
		database.MatchID(reportID),
		database.LookupUser("reportedBy", "reporter"),
		database.LookupNGOByContact("reportedBy", "ngoDetails"),
		database.Unwind("$reporter"),
		database.UnwindOptional("$ngoDetails"),
		database.Project(bson.M{
			"_id":        1,
			"title":      1,
			"reportType": 1,
			"details":    1,
			"reportedBy": "$reporter.fullname",
			"location":   1,
			"createdAt":  1,
			"ngoName":    bson.M{"$ifNull": bson.A{"$ngoDetails.organizationName", ""}},
		}),
	}

	cursor, err := h.DB.Collection(database.Reports).Aggregate(context.Background(), pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to query reports"})
		return
	}
	defer cursor.Close(context.Background())

	var reports []bson.M
	if err = cursor.All(context.Background(), &reports); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to decode reports"})
		return
	}
	if len(reports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report fetched", "data": reports[0]})
}
