package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"NexusAssistant_VoiceProject/internal/biometric"
	"NexusAssistant_VoiceProject/internal/handler"
	"NexusAssistant_VoiceProject/internal/llm"
	"NexusAssistant_VoiceProject/internal/middleware"
	"NexusAssistant_VoiceProject/internal/nexus"
	"NexusAssistant_VoiceProject/internal/storage"
	"NexusAssistant_VoiceProject/internal/voice"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("main(): no .env file found, using process environment")
	}

	dsn := os.Getenv("NEXUS_DB_DSN")
	if dsn == "" {
		dsn = ":memory:"
	}
	store, err := storage.Open(dsn)
	if err != nil {
		log.Fatal("main(): failed to open storage: ", err)
	}
	defer store.Close()

	seedCreator(store)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY environment variable is not set")
	}

	ctx := context.Background()
	llmClient := llm.NewClient(apiKey)

	transcriber, err := llm.NewTranscriber(ctx)
	if err != nil {
		log.Printf("main(): transcription disabled: %v", err)
	}
	synthesizer, err := llm.NewSynthesizer(ctx)
	if err != nil {
		log.Printf("main(): speech synthesis disabled: %v", err)
	}

	authenticator := biometric.NewAuthenticator(store, llmClient)
	executor := voice.NewExecutor(commandTimeout())
	orchestrator := nexus.NewOrchestrator(store, llmClient, executor)

	h := &handler.Handler{
		Store:         store,
		Authenticator: authenticator,
		Orchestrator:  orchestrator,
		Transcriber:   transcriber,
		Synthesizer:   synthesizer,
	}

	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	router.Use(cors.New(config))

	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/auth/biometric", middleware.RateLimitMiddleware(), h.AuthenticateBiometric)

	protected := router.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", h.Profile)
		protected.POST("/biometric/enroll", h.EnrollBiometric)
		protected.POST("/voice/transcribe", middleware.RateLimitMiddleware(), h.Transcribe)
		protected.POST("/voice/speak", h.Speak)
		protected.POST("/nexus/conversation", middleware.RateLimitMiddleware(), h.Converse)
		protected.GET("/conversations", h.GetConversations)
		protected.GET("/commands", h.GetSystemCommands)
		protected.GET("/preferences", h.GetPreferences)
		protected.POST("/preferences", h.UpdatePreferences)
		protected.GET("/system/monitor", h.SystemMonitor)
	}

	router.GET("/ws/assistant", h.HandleAssistantSession)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(router.Run(":" + port))
}

func seedCreator(store *storage.Store) {
	password := os.Getenv("NEXUS_CREATOR_PASSWORD")
	if password == "" {
		password = "nexus_creator_2024"
		log.Println("Warning: NEXUS_CREATOR_PASSWORD environment variable is not set. Using default password.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("seedCreator(): failed to hash password: ", err)
	}

	if _, err := store.EnsureCreator("creator", string(hashedPassword), "N.E.X.U.S. Creator"); err != nil {
		log.Fatal("seedCreator(): failed to seed creator account: ", err)
	}
}

func commandTimeout() time.Duration {
	raw := os.Getenv("NEXUS_COMMAND_TIMEOUT")
	if raw == "" {
		return voice.DefaultCommandTimeout
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Printf("main(): invalid NEXUS_COMMAND_TIMEOUT %q, using default", raw)
		return voice.DefaultCommandTimeout
	}
	return time.Duration(seconds) * time.Second
}
