package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/config"
	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/auth"
	"github.com/sharath018/rental-management-backend/internal/rent"
	"github.com/sharath018/rental-management-backend/internal/reports"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
	"github.com/sharath018/rental-management-backend/internal/updaterequest"
	"github.com/sharath018/rental-management-backend/middleware"
	"github.com/sharath018/rental-management-backend/utils"
)

// Setup wires repositories, services and handlers and registers every
// route on the engine. It returns the rent service so main can hand it
// to the scheduler.
func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config, storage utils.Storage) rent.Service {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter(cfg))

	// ------------------- Audit Logs -------------------
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ------------------- Auth -------------------
	tenantRepo := tenant.NewRepository(db)
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, tenantRepo, cfg, auditSvc)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ------------------- Protected -------------------
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	adminOnly := protected.Group("/")
	adminOnly.Use(middleware.RequireAdmin())

	tenantOnly := protected.Group("/")
	tenantOnly.Use(middleware.RequireTenant())

	adminGroup := adminOnly.Group("/admin")
	{
		adminGroup.GET("/profile", authHandler.GetProfile)
		adminGroup.POST("/check-password", authHandler.CheckPassword)
		adminGroup.PATCH("/change-password", authHandler.ChangePassword)
		adminGroup.DELETE("/", authHandler.DeleteAccount)
	}

	// ------------------- Rooms -------------------
	roomRepo := room.NewRepository(db)
	roomSvc := room.NewService(roomRepo, auditSvc)
	roomHandler := room.NewHandler(roomSvc)

	roomRoutes := adminOnly.Group("/rooms")
	{
		roomRoutes.POST("", roomHandler.CreateRoom)
		roomRoutes.GET("", roomHandler.ListRooms)
		roomRoutes.PATCH("/:id", roomHandler.UpdateRoom)
		roomRoutes.DELETE("/:id", roomHandler.DeleteRoom)
	}

	// ------------------- Tenants -------------------
	tenantSvc := tenant.NewService(tenantRepo, storage, auditSvc)
	tenantHandler := tenant.NewHandler(tenantSvc, storage)

	tenantRoutes := adminOnly.Group("/tenants")
	{
		tenantRoutes.POST("", tenantHandler.CreateTenant)
		tenantRoutes.GET("", tenantHandler.ListTenants)
		tenantRoutes.GET("/:id", tenantHandler.GetTenant)
		tenantRoutes.PATCH("/:id", tenantHandler.UpdateTenant)
		tenantRoutes.DELETE("/:id", tenantHandler.DeleteTenant)
	}

	// ------------------- Rents -------------------
	rentRepo := rent.NewRepository(db)
	rentSvc := rent.NewService(rentRepo, auditSvc)
	rentHandler := rent.NewHandler(rentSvc, cfg.ElectricityUnitRate)

	rentRoutes := adminOnly.Group("/room-rents")
	{
		rentRoutes.GET("", rentHandler.ListRents)
		rentRoutes.GET("/upcoming", rentHandler.ListUpcoming)
		rentRoutes.PATCH("/:id", rentHandler.UpdateRent)
		rentRoutes.POST("/generate", rentHandler.GenerateRents)
	}
	tenantOnly.GET("/room-rents/tenant", rentHandler.ListForTenant)

	// ------------------- Update Requests -------------------
	reqRepo := updaterequest.NewRepository(db)
	reqSvc := updaterequest.NewService(reqRepo, tenantRepo)
	reqHandler := updaterequest.NewHandler(reqSvc)

	tenantOnly.POST("/update-requests", reqHandler.CreateRequest)
	tenantOnly.GET("/update-requests/tenant", reqHandler.ListForTenant)
	// Either party may transition: admins acknowledge/dismiss, tenants withdraw.
	protected.PATCH("/update-requests/:id", reqHandler.TransitionRequest)
	adminOnly.GET("/update-requests/admin", reqHandler.ListForAdmin)

	// ------------------- Reports -------------------
	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, reports.NewExporter(), auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	adminOnly.GET("/reports/rents", reportsHandler.GetRentSheet)

	// ------------------- Audit Log Routes -------------------
	adminOnly.GET("/audit-logs", auditHandler.GetAuditLogs)

	return rentSvc
}
