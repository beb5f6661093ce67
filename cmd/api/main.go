package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/vault-leads/internal/config"
	"github.com/xavierca1/vault-leads/internal/infra/auth"
	"github.com/xavierca1/vault-leads/internal/infra/database"
	"github.com/xavierca1/vault-leads/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/vault-leads/internal/infra/http/middleware"
	"github.com/xavierca1/vault-leads/internal/infra/mail"
	"github.com/xavierca1/vault-leads/internal/infra/notify"
	"github.com/xavierca1/vault-leads/internal/infra/queue"
	"github.com/xavierca1/vault-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()

	// 1. Repository
	leadRepo := database.NewLeadRepository(db)

	// 2. Outbound channels
	slack := notify.NewSlackNotifier(cfg.SlackWebhookURL, cfg.AdminBaseURL)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	// With a broker the intake publishes lead.captured and the worker
	// fans out to Slack + welcome email; without one, Slack is called
	// directly (still fire-and-forget).
	var (
		notifier   usecase.LeadNotifier
		rabbitConn *amqp.Connection
	)
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ rabbitmq: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		rabbitConn = rabbitMQ.Conn

		notifier = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		var mailer queue.WelcomeMailer
		if cfg.MailHost != "" {
			mailer = mailSender
		}
		worker := queue.NewWorker(rabbitMQ.Ch, slack, mailer)
		go worker.Start(queue.QueueName)
	} else if cfg.SlackWebhookURL != "" {
		notifier = slack
	}

	// 3. UseCases
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, notifier, cfg.IntakeMode)
	adminUC := usecase.NewLeadAdminUseCase(leadRepo)
	exportUC := usecase.NewExportLeadsUseCase(leadRepo)

	// 4. Auth
	verifier := auth.NewStaticTokenVerifier(cfg.AdminSessionToken)
	creds := handlers.AdminCredentials{
		Username:     cfg.AdminUser,
		Password:     cfg.AdminPass,
		SessionToken: cfg.AdminSessionToken,
	}

	// 5. Handlers
	intakeHandler := handlers.NewIntakeHandler(
		captureUC,
		handlers.NewFixedWindowLimiter(handlers.IntakeRateLimit, handlers.IntakeRateWindow),
	)
	adminHandler := handlers.NewAdminHandler(adminUC, exportUC, verifier, creds, cfg.IntakeMode, cfg.IsProduction())
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, cfg.SlackWebhookURL)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(appmiddleware.Metrics)
	r.Use(appmiddleware.AdminGate(verifier))

	r.Post("/api/intake", intakeHandler.Handle)

	r.Post("/api/admin/login", adminHandler.HandleLogin)
	r.Post("/api/admin/logout", adminHandler.HandleLogout)
	r.Get("/api/admin/session", adminHandler.HandleSession)
	r.Get("/api/admin/leads", adminHandler.HandleList)
	r.Post("/api/admin/leads/approve", adminHandler.HandleApprove)
	r.Get("/api/admin/leads/export", adminHandler.HandleExport)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🔥 Lead intake service listening on %s (mode=%s)", addr, cfg.IntakeMode)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
