// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/medichat/go-medichat/internal/config"
	"github.com/medichat/go-medichat/internal/domain"
	"github.com/medichat/go-medichat/internal/handlers"
	"github.com/medichat/go-medichat/internal/middleware"
	"github.com/medichat/go-medichat/internal/ratelimit"
	chatrepo "github.com/medichat/go-medichat/internal/repository/chat"
	historyrepo "github.com/medichat/go-medichat/internal/repository/history"
	userrepo "github.com/medichat/go-medichat/internal/repository/user"
	"github.com/medichat/go-medichat/internal/services"
	"github.com/medichat/go-medichat/internal/services/ai"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("medichat")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.ChatMessage{},
		&domain.HistoryMessage{},
	); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	historyRepo := historyrepo.NewHistoryRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel

	provider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize reply provider: %v", err)
	}

	aiService, err := services.NewAIService(provider, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI service: %v", err)
	}

	chatService, err := services.NewChatService(chatRepo, aiService, cfg.HistoryTurns, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat service: %v", err)
	}

	historyService, err := services.NewHistoryService(historyRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize history service: %v", err)
	}

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)

	// --- Handlers ---
	authHandler, err := handlers.NewAuthHandler(authService, cfg.Environment == "production")
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize auth handler: %v", err)
	}

	chatHandler, err := handlers.NewChatHandler(chatService, historyService)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat handler: %v", err)
	}

	// --- Rate Limiting ---
	chatLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultChatConfig())
	defer chatLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewJWTMiddleware(authService)

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	turn := api.NewRoute().Subrouter()
	turn.Use(middleware.RateLimitMiddleware(chatLimiter, "chat"))
	turn.HandleFunc("/chat", chatHandler.SubmitTurn).Methods("POST")

	api.HandleFunc("/chat/history", chatHandler.GetChatHistory).Methods("GET")
	api.HandleFunc("/chat/history/{chatId:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chat/messages", chatHandler.GetMessages).Methods("GET")
	api.HandleFunc("/chat/messages", chatHandler.SaveMessage).Methods("POST")
	api.HandleFunc("/chat/messages", chatHandler.DeleteMessage).Methods("DELETE")
	api.HandleFunc("/chat/messages/clear", chatHandler.ClearMessages).Methods("POST")

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Startup Logging ---
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("==================================================")
	log.Printf("MediChat - Medical Chat Assistant")
	log.Printf("==================================================")
	log.Printf("Server starting on port %s", port)
	log.Printf("Model: %s via %s", cfg.LLMModel, cfg.LLMBaseURL)
	log.Printf("Server ready to accept connections!")
	log.Printf("==================================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
