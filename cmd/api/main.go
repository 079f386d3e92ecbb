package main

import (
	"log"
	"os"

	_ "hosteladmin/api/swagger" // swagger docs
	"hosteladmin/internal/database"
	"hosteladmin/internal/handler"
	"hosteladmin/internal/middleware"
	"hosteladmin/internal/repository"
	"hosteladmin/internal/service"
	"hosteladmin/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Hostel Administration API
// @version         1.0
// @description     Role-based hostel administration backend with a requisition approval workflow.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	logger, err := zap.NewProduction()
	if gin.Mode() != gin.ReleaseMode {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Logger init failed: %v", err)
	}
	defer logger.Sync()

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "hosteladmin"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	logger.Info("Connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(logger)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	hostelRepo := repository.NewHostelRepository(db)
	requisitionRepo := repository.NewRequisitionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	txManager := repository.NewTransactionManager(db)

	auditService := service.NewAuditService(db, logger)
	notificationService := service.NewNotificationService(notificationRepo, wsHub, logger)
	userService := service.NewUserService(userRepo, auditService, middleware.GetJWTSecret(), logger)
	hostelService := service.NewHostelService(hostelRepo, userRepo, auditService, logger)
	roomService := service.NewRoomService(db, txManager, auditService, logger)
	requisitionService := service.NewRequisitionService(requisitionRepo, hostelRepo, auditService, notificationService, logger)
	complaintService := service.NewComplaintService(db, hostelRepo, auditService, notificationService, logger)
	noticeService := service.NewNoticeService(db, auditService, logger)
	paymentService := service.NewPaymentService(db, auditService, notificationService, logger)
	transferService := service.NewTransferService(db, hostelRepo, auditService, notificationService, logger)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	hostelHandler := handler.NewHostelHandler(hostelService)
	roomHandler := handler.NewRoomHandler(roomService)
	requisitionHandler := handler.NewRequisitionHandler(requisitionService)
	complaintHandler := handler.NewComplaintHandler(complaintService)
	noticeHandler := handler.NewNoticeHandler(noticeService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	transferHandler := handler.NewTransferHandler(transferService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	hostelHandler.RegisterRoutes(router.Group(""))
	roomHandler.RegisterRoutes(router.Group(""))
	requisitionHandler.RegisterRoutes(router.Group(""))
	complaintHandler.RegisterRoutes(router.Group(""))
	noticeHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	transferHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
