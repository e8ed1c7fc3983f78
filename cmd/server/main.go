package main

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hackhive/internal/admin"
	"hackhive/internal/auth"
	"hackhive/internal/community"
	"hackhive/internal/competition"
	"hackhive/internal/content"
	"hackhive/internal/metrics"
	"hackhive/internal/models"
	"hackhive/internal/notify"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
	"hackhive/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=hackhive password=hackhive dbname=hackhive port=5432 sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.AIChallenge{},
		&models.WebContest{},
		&models.MobileInnovation{},
		&models.Conference{},
		&models.Participant{},
		&models.Submission{},
		&models.Tutorial{},
		&models.LearningResource{},
		&models.Mentorship{},
		&models.MentorshipSession{},
		&models.Forum{},
		&models.ForumReply{},
		&models.Team{},
		&models.TeamMember{},
		&models.SuccessStory{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	featuredThreshold := pkg.DefaultFeaturedThreshold
	if raw := os.Getenv("FEATURED_PRIZE_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			featuredThreshold = n
		}
	}

	repo := repository.NewRepository(db)
	regService := service.NewRegistrationService(repo)
	teamService := service.NewTeamService(repo)

	var mailer notify.MailService
	if os.Getenv("SMTP_HOST") != "" {
		mailer = notify.NewSMTPMailer(
			os.Getenv("SMTP_HOST"),
			os.Getenv("SMTP_PORT"),
			os.Getenv("SMTP_USER"),
			os.Getenv("SMTP_PASS"),
		)
	}

	var announcer notify.Announcer
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("ANNOUNCE_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("invalid ANNOUNCE_CHAT_ID: %v", err)
		}
		tg, err := notify.NewTelegramAnnouncer(token, chatID)
		if err != nil {
			log.Fatalf("failed to create telegram announcer: %v", err)
		}
		announcer = tg
		log.Println("telegram announcer enabled")
	}

	metrics.Register()

	authHandler := auth.NewHandler(repo, jwtSecret)
	adminHandler := admin.NewHandler(repo, mailer)
	competitions := competition.NewSet(repo, regService, announcer, featuredThreshold)
	tutorialHandler := content.NewTutorialHandler(repo)
	resourceHandler := content.NewResourceHandler(repo)
	mentorshipHandler := content.NewMentorshipHandler(repo)
	forumHandler := community.NewForumHandler(repo)
	teamHandler := community.NewTeamHandler(repo, teamService)
	storyHandler := community.NewStoryHandler(repo)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(pkg.AuthMiddleware(jwtSecret, repo))

	authHandler.RegisterRoutes(api)
	adminHandler.RegisterRoutes(api)

	host := api.Group("/host")
	competitions.RegisterRoutes(api, host)

	tutorialHandler.RegisterRoutes(api)
	resourceHandler.RegisterRoutes(api)
	mentorshipHandler.RegisterRoutes(api)
	forumHandler.RegisterRoutes(api)
	teamHandler.RegisterRoutes(api)
	storyHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
