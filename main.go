package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cjiajing/robinson-parking/docs"
	"github.com/cjiajing/robinson-parking/internal/auth"
	"github.com/cjiajing/robinson-parking/internal/handlers"
	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/storage"
	"github.com/cjiajing/robinson-parking/internal/tasks"
	"github.com/cjiajing/robinson-parking/internal/ws"
)

// @Title						Robinson Suites carpark queue
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHECK")
	if key == "" {
		fmt.Println("Loading .env")
		if err := godotenv.Load(); err != nil {
			log.Fatal("Failed to load .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(
		&models.QueueEntry{},
		&models.VerificationSample{},
		&models.ParkingRecord{},
		&models.IssueReport{},
		&models.MaintenanceWindow{},
	); err != nil {
		log.Fatal("Migration failed... ", err.Error())
	}

	// One waiting entry per (lift, owner); the store relies on this guard
	// when concurrent joins race past the precondition read.
	if err := storage.DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_entries_waiting ON queue_entries (lift, owner_id) WHERE status = 'waiting'",
	).Error; err != nil {
		log.Fatal("Creating waiting-entry index failed... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/staff/login", handlers.StaffLogin)
	}

	r.GET("/api/identity", handlers.NewIdentityHandler)
	r.GET("/api/maintenance", handlers.GetMaintenanceScheduleHandler)
	r.GET("/api/lifts/:lift/ws", ws.LiftWebSocketHandler)

	api := r.Group("/api", auth.DeviceMiddleware())
	{
		api.GET("/lifts/:lift/queue", handlers.GetQueueStatusHandler)
		api.POST("/lifts/:lift/queue/join", handlers.JoinQueueHandler)
		api.POST("/lifts/:lift/queue/pin", handlers.PinPositionHandler)
		api.POST("/lifts/:lift/queue/leave", handlers.LeaveQueueHandler)
		api.POST("/lifts/:lift/queue/complete", handlers.CompleteRetrievalHandler)
		api.POST("/lifts/:lift/verifications", handlers.ReportQueueLengthHandler)

		api.POST("/parking", handlers.CheckInHandler)
		api.GET("/parking", handlers.GetParkingHandler)
		api.DELETE("/parking", handlers.ClearParkingHandler)

		api.POST("/issues", handlers.ReportIssueHandler)
		api.GET("/issues", handlers.ListIssuesHandler)
	}

	admin := r.Group("/api/admin", auth.StaffMiddleware())
	{
		admin.GET("/parking/lookup", handlers.LookupParkingHandler)
		admin.POST("/maintenance", handlers.CreateMaintenanceHandler)
		admin.PUT("/issues/:id/resolve", handlers.ResolveIssueHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server start failed...", err.Error())
	}
}
