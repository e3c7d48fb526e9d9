package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Akanael21/FriendlyBanks/internal/config"
	"github.com/Akanael21/FriendlyBanks/internal/handler"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	repaymentRepo := repository.NewRepaymentRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	governanceRepo := repository.NewGovernanceRepository(db)

	// Initialize services
	memberService := service.NewMemberService(memberRepo)
	loanService := service.NewLoanService(loanRepo, repaymentRepo, memberRepo, redisClient, cfg)
	contributionService := service.NewContributionService(contributionRepo, memberRepo, cfg.ContributionPolicy())
	governanceService := service.NewGovernanceService(governanceRepo)

	// Initialize handlers
	memberHandler := handler.NewMemberHandler(memberService)
	loanHandler := handler.NewLoanHandler(loanService)
	contributionHandler := handler.NewContributionHandler(contributionService)
	governanceHandler := handler.NewGovernanceHandler(governanceService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Setup routes
	router := setupRoutes(cfg, memberHandler, loanHandler, contributionHandler, governanceHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	cfg *config.Config,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
	contributionHandler *handler.ContributionHandler,
	governanceHandler *handler.GovernanceHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health checks are unauthenticated
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes; trailing slashes optional
	api := router.PathPrefix("/api").Subrouter()
	api.Use(handler.AuthMiddleware(cfg.Auth))
	api.StrictSlash(true)

	api.HandleFunc("/members/", memberHandler.List).Methods("GET")
	api.HandleFunc("/members/", memberHandler.Create).Methods("POST")
	api.HandleFunc("/members/{id}/", memberHandler.Get).Methods("GET")
	api.HandleFunc("/members/{id}/", memberHandler.Update).Methods("PATCH")
	api.HandleFunc("/members/{id}/", memberHandler.Delete).Methods("DELETE")

	api.HandleFunc("/loan-requests/", loanHandler.List).Methods("GET")
	api.HandleFunc("/loan-requests/", loanHandler.Create).Methods("POST")
	api.HandleFunc("/loan-requests/terms/", loanHandler.PreviewTerms).Methods("GET")
	api.HandleFunc("/loan-requests/{id}/", loanHandler.Get).Methods("GET")
	api.HandleFunc("/loan-requests/{id}/", loanHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/loan-requests/{id}/", loanHandler.Delete).Methods("DELETE")
	api.HandleFunc("/loan-requests/{id}/summary/", loanHandler.GetSummary).Methods("GET")

	api.HandleFunc("/loan-repayments/", loanHandler.ListRepayments).Methods("GET")
	api.HandleFunc("/loan-repayments/", loanHandler.CreateRepayment).Methods("POST")

	api.HandleFunc("/contributions/", contributionHandler.List).Methods("GET")
	api.HandleFunc("/contributions/", contributionHandler.Create).Methods("POST")
	api.HandleFunc("/contributions/impact/", contributionHandler.PreviewImpact).Methods("GET")
	api.HandleFunc("/contributions/{id}/", contributionHandler.Update).Methods("PATCH")
	api.HandleFunc("/contributions/{id}/", contributionHandler.Delete).Methods("DELETE")

	api.HandleFunc("/sanctions/", governanceHandler.ListSanctions).Methods("GET")
	api.HandleFunc("/sanctions/{id}/vote/", governanceHandler.VoteOnSanction).Methods("POST")
	api.HandleFunc("/sanctions/{id}/vote/", governanceHandler.SanctionTally).Methods("GET")

	api.HandleFunc("/votes/", governanceHandler.ListVotes).Methods("GET")
	api.HandleFunc("/votes/{id}/vote/", governanceHandler.VoteOnProposal).Methods("POST")
	api.HandleFunc("/votes/{id}/vote/", governanceHandler.VoteTally).Methods("GET")

	return router
}
