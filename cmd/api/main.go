package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/exam-portal/backend/internal/ai"
	"github.com/exam-portal/backend/internal/config"
	"github.com/exam-portal/backend/internal/database"
	"github.com/exam-portal/backend/internal/handlers"
	"github.com/exam-portal/backend/internal/middleware"
	"github.com/exam-portal/backend/internal/models"
	"github.com/exam-portal/backend/internal/results"
	"github.com/exam-portal/backend/internal/services"
	"github.com/exam-portal/backend/internal/store"
)

// @title Exam Results Portal API
// @version 1.0
// @description Exam-results portal: seat-number lookup for students, result management for the admin
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if len(os.Args) > 1 {
		handleCommand(os.Args[1])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatal("Migration failed: ", err)
	}

	st := store.New(store.NewGormKV(db))

	if cfg.Server.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		for _, allowedOrigin := range cfg.CORS.Origins {
			if origin == allowedOrigin {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "exam-portal-api"})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Exam Results Portal API", "status": "running"})
	})

	// Metrics
	if cfg.Monitoring.PrometheusEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Services
	authService := services.NewAuthService(cfg, st)
	aiClient := ai.NewClient(cfg.AI.Endpoint)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	resultHandler := handlers.NewResultHandler(st)
	statsHandler := handlers.NewStatsHandler(st)
	transferHandler := handlers.NewTransferHandler(st)
	aiHandler := handlers.NewAIHandler(st, aiClient, cfg)

	// Routes
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// Student self-service: seat-number lookup and the chat assistant
		v1.GET("/results/lookup", resultHandler.Lookup)
		v1.POST("/results/:id/chat", aiHandler.Chat)

		// Admin routes
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(authService))
		{
			admin.GET("/results", resultHandler.List)
			admin.POST("/results", resultHandler.Create)
			admin.GET("/results/:id", resultHandler.Get)
			admin.PUT("/results/:id", resultHandler.Update)
			admin.DELETE("/results/:id", resultHandler.Delete)
			admin.DELETE("/results", resultHandler.Clear)

			admin.GET("/stats", statsHandler.GetStats)

			admin.GET("/results/export/csv", transferHandler.ExportCSV)
			admin.POST("/results/import/csv", transferHandler.ImportCSV)
			admin.GET("/results/:id/pdf", transferHandler.ExportResultPDF)
			admin.GET("/results/export/pdf", transferHandler.ExportRosterPDF)

			admin.GET("/ai/settings", aiHandler.GetSettings)
			admin.PUT("/ai/settings", aiHandler.UpdateSettings)
		}
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logrus.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}

func handleCommand(cmd string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	switch cmd {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			logrus.Fatal("Migration failed: ", err)
		}
		logrus.Info("Migration completed successfully")

	case "seed-sample":
		if err := database.Migrate(db); err != nil {
			logrus.Fatal("Migration failed: ", err)
		}
		seedSample(store.New(store.NewGormKV(db)))

	default:
		logrus.Warnf("Unknown command: %s", cmd)
	}
}

// seedSample loads two demonstration records so the portal is usable before
// the first import. Skipped when results already exist.
func seedSample(st *store.Store) {
	existing, err := st.List()
	if err != nil {
		logrus.Fatal("Failed to read results: ", err)
	}
	if len(existing) > 0 {
		logrus.Info("Results already exist, skipping sample seed")
		return
	}

	teacher := models.TeacherInfo{
		Name:        "Dr. Priya Mehta",
		Department:  "Computer Science",
		Email:       "priya.mehta@university.edu",
		Designation: "Associate Professor",
	}

	rank1, rank3 := 1, 3
	samples := []results.Draft{
		{
			SeatNumber:  "OOP001",
			StudentName: "Rahul Sharma",
			ExamName:    models.DefaultExamName,
			ExamDate:    "2024-12-15",
			Subject:     models.DefaultSubject,
			Questions: []models.QuestionMark{
				{QuestionNumber: 1, MarksObtained: 8, MaxMarks: 10},
				{QuestionNumber: 2, MarksObtained: 9, MaxMarks: 10},
				{QuestionNumber: 3, MarksObtained: 7, MaxMarks: 10},
				{QuestionNumber: 4, MarksObtained: 5, MaxMarks: 6},
				{QuestionNumber: 5, MarksObtained: 8, MaxMarks: 10},
				{QuestionNumber: 6, MarksObtained: 9, MaxMarks: 10},
				{QuestionNumber: 7, MarksObtained: 12, MaxMarks: 14},
			},
			SemesterMarks: 83,
			Rank:          &rank3,
			Remarks:       "Excellent understanding of OOPs concepts!",
			Teacher:       teacher,
		},
		{
			SeatNumber:  "OOP002",
			StudentName: "Ananya Patel",
			ExamName:    models.DefaultExamName,
			ExamDate:    "2024-12-15",
			Subject:     models.DefaultSubject,
			Questions: []models.QuestionMark{
				{QuestionNumber: 1, MarksObtained: 10, MaxMarks: 10},
				{QuestionNumber: 2, MarksObtained: 10, MaxMarks: 10},
				{QuestionNumber: 3, MarksObtained: 9, MaxMarks: 10},
				{QuestionNumber: 4, MarksObtained: 6, MaxMarks: 6},
				{QuestionNumber: 5, MarksObtained: 9, MaxMarks: 10},
				{QuestionNumber: 6, MarksObtained: 10, MaxMarks: 10},
				{QuestionNumber: 7, MarksObtained: 13, MaxMarks: 14},
			},
			SemesterMarks: 95,
			Rank:          &rank1,
			Remarks:       "Outstanding performance! Top of the class.",
			Teacher:       teacher,
		},
	}

	batch := make([]models.ExamResult, 0, len(samples))
	for _, draft := range samples {
		batch = append(batch, results.Build(draft))
	}
	if err := st.Append(batch); err != nil {
		logrus.Fatal("Failed to seed sample results: ", err)
	}

	logrus.Infof("Seeded %d sample results", len(batch))
}
