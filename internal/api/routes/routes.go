// server/internal/api/routes/routes.go
package routes

import (
	"net/http"

	"community-health-api-server/config"
	"community-health-api-server/internal/api/handlers"
	"community-health-api-server/internal/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers together and mounts the role gate in front
// of every route.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	aiClient handlers.ContentGenerator,
	fileStore handlers.FileStore,
) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RoleGate())

	authHandler := &handlers.AuthHandler{DB: db}
	eventHandler := &handlers.EventHandler{DB: db}
	reportHandler := &handlers.ReportHandler{DB: db}
	providerHandler := &handlers.ProviderHandler{DB: db}
	coachHandler := &handlers.CoachHandler{DB: db, AI: aiClient}
	prescriptionHandler := &handlers.PrescriptionHandler{DB: db, AI: aiClient, Uploader: fileStore}
	documentHandler := &handlers.MedicalDocHandler{AI: aiClient}
	translateHandler := &handlers.TranslateHandler{DB: db, AI: aiClient}
	dashboardHandler := &handlers.DashboardHandler{DB: db}

	// Role-neutral landing path; the gate pushes authenticated callers off it.
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Community health coordination API"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public event listing, no session required.
	router.GET("/events", eventHandler.ListAllEvents)
	router.GET("/events/:id", eventHandler.GetEventByID)

	// Patient namespace.
	patient := router.Group("/p")
	patient.Use(middleware.Authenticate())
	{
		patient.GET("/dashboard", dashboardHandler.PatientDashboard)
		patient.POST("/coach", coachHandler.GenerateCoachingPlan)
		patient.POST("/lens", prescriptionHandler.AnalyzePrescription)
		patient.GET("/prescriptions", prescriptionHandler.ListMyPrescriptions)
		patient.POST("/medical-doc", documentHandler.AnalyzeMedicalDocument)
		patient.POST("/translate", translateHandler.TranslateContent)
		patient.POST("/report", reportHandler.CreateReport)
		patient.GET("/providers", providerHandler.ListProviders)
		patient.GET("/events", eventHandler.ListAllEvents)
		patient.GET("/events/:id", eventHandler.GetEventByID)
	}

	// Healthcare provider namespace.
	provider := router.Group("/d")
	provider.Use(middleware.Authenticate())
	{
		provider.GET("/dashboard", dashboardHandler.ProviderDashboard)
		provider.POST("/events", eventHandler.CreateEvent)
		provider.GET("/events", eventHandler.ListMyEvents)
		provider.GET("/booking-link", providerHandler.GetBookingLink)
		provider.POST("/booking-link", providerHandler.SaveBookingLink)
	}

	// NGO namespace.
	ngo := router.Group("/n")
	ngo.Use(middleware.Authenticate())
	{
		ngo.GET("/dashboard", dashboardHandler.NGODashboard)
		ngo.POST("/events", eventHandler.CreateEvent)
		ngo.GET("/events", eventHandler.ListMyEvents)
		ngo.GET("/events/:id", eventHandler.GetEventByID)
		ngo.GET("/reports", reportHandler.ListAllReports)
		ngo.GET("/reports/:id", reportHandler.GetReportByID)
	}

	return router
}
