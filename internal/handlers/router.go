package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/services"
	"github.com/SR-Exam/scheduler-service/internal/session"
	"github.com/SR-Exam/scheduler-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	syncHandler    *SyncHandler
	bookingHandler *BookingHandler
	catalogHandler *CatalogHandler
	reportHandler  *ReportHandler
	sess           *session.Session
}

func NewHandlerManager(serviceManager services.ServiceManager, sess *session.Session, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		syncHandler:    NewSyncHandler(serviceManager.Sync(), logger),
		bookingHandler: NewBookingHandler(serviceManager.Booking(), logger),
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), logger),
		reportHandler:  NewReportHandler(serviceManager.Report(), logger),
		sess:           sess,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	sessionRequired := SessionRequiredMiddleware(hm.sess)

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.GET("/me", sessionRequired, hm.authHandler.Me)
			auth.PUT("/password", sessionRequired, hm.authHandler.ChangePassword)
		}

		// Role management - coordinators only
		v1.PUT("/users/:bn_number/role",
			RequireRoleMiddleware(hm.sess, models.RoleExamCoordinator),
			hm.authHandler.EditRole)

		// Sync routes
		sync := v1.Group("/sync")
		{
			sync.POST("", hm.syncHandler.SyncAll)
			sync.POST("/users", hm.syncHandler.SyncUsers)
			sync.POST("/rooms", hm.syncHandler.SyncRooms)
			sync.POST("/subjects", hm.syncHandler.SyncSubjects)
			sync.POST("/enrollments", hm.syncHandler.SyncEnrollments)
		}

		// Catalog reads
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/users", hm.catalogHandler.ListUsers)
			catalog.GET("/rooms", hm.catalogHandler.ListRooms)
			catalog.GET("/subjects", hm.catalogHandler.ListSubjects)
			catalog.GET("/enrollments", hm.catalogHandler.ListEnrollments)
			catalog.GET("/password/:nim", hm.authHandler.RemotePassword)
		}
		v1.GET("/shifts", hm.catalogHandler.ListShifts)

		// Booking routes; writes require a session
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", hm.bookingHandler.ListBookings)
			bookings.GET("/occupancy", hm.bookingHandler.GetOccupancy)
			bookings.POST("", sessionRequired, hm.bookingHandler.CreateBooking)
			bookings.PUT("/:id/proctor", sessionRequired, hm.bookingHandler.AssignProctor)
		}

		// Reports
		v1.GET("/reports/schedule", hm.reportHandler.ScheduleReport)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "scheduler-service",
		})
	})
}
