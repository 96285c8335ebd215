package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/domain"
	"tutorhub/internal/middleware"
	"tutorhub/internal/modules/admin"
	"tutorhub/internal/modules/auth"
	"tutorhub/internal/modules/blog"
	"tutorhub/internal/modules/catalog"
	"tutorhub/internal/modules/message"
	"tutorhub/internal/modules/order"
	"tutorhub/internal/modules/payment"
	"tutorhub/internal/modules/studyguide"
	"tutorhub/internal/modules/writer"
	"tutorhub/internal/pkg/cache"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/mail"
	"tutorhub/internal/pkg/upload"
	"tutorhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Order{},
		&domain.OrderFile{},
		&domain.Message{},
		&domain.Post{},
		&domain.PendingPayment{},
		&domain.ProctoredExam{},
		&domain.OnlineExam{},
		&domain.AtiModule{},
		&domain.OnlineClass{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	postRepo := repository.NewPostRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	j := jwtsvc.New(cfg.SessionSecret, cfg.SessionTTL)

	var mailer mail.Mailer = mail.NopMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
	}

	// Redis when configured, in-process memory otherwise. Both sides of
	// the seam serve the same read-through cache.
	var store cache.Store = cache.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		store = redisStore
	}
	sharedCache := cache.New(store)

	saver := upload.NewSaver(cfg.UploadDir)

	google := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)

	authService := auth.NewService(userRepo, mailer, cfg.BaseURL)
	authHandler := auth.NewHandler(authService, j, google, int(cfg.SessionTTL.Seconds()))

	orderService := order.NewService(orderRepo, messageRepo)
	orderHandler := order.NewHandler(orderService, saver, mailer, cfg.OpsEmail, cfg.BaseURL)

	writerService := writer.NewService(orderRepo)
	writerHandler := writer.NewHandler(writerService)

	messageService := message.NewService(messageRepo, orderRepo)
	messageHandler := message.NewHandler(messageService)

	adminService := admin.NewService(db)
	adminHandler := admin.NewHandler(adminService)

	provider := payment.NewPayPalClient(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalSecret)
	paymentService := payment.NewService(provider, paymentRepo, userRepo, cfg.BaseURL)
	paymentHandler := payment.NewHandler(paymentService)

	catalogService := catalog.NewService(catalogRepo, sharedCache)
	catalogHandler := catalog.NewHandler(catalogService)

	blogService := blog.NewService(postRepo)
	blogHandler := blog.NewHandler(blogService, cfg.BaseURL)

	guideService := studyguide.NewService(mailer, cfg.BaseURL)
	guideHandler := studyguide.NewHandler(guideService)

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.Session(j))
	r.Static("/uploads", cfg.UploadDir)

	root := r.Group("/")
	{
		authHandler.RegisterRoutes(root)
		orderHandler.RegisterRoutes(root)
		writerHandler.RegisterRoutes(root)
		messageHandler.RegisterRoutes(root)
		adminHandler.RegisterRoutes(root)
		paymentHandler.RegisterRoutes(root)
		catalogHandler.RegisterRoutes(root)
		blogHandler.RegisterRoutes(root)
		guideHandler.RegisterRoutes(root)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
