package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/ysato/recallnote/auth"
	"github.com/ysato/recallnote/config"
	"github.com/ysato/recallnote/handlers"
	"github.com/ysato/recallnote/views"
)

func init() {
	// Load .env file if not in a deployed environment
	if os.Getenv("APP_ENV") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY not set")
	}

	renderer, err := views.New()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	authService := auth.NewService(config.Database, []byte(secret))
	DBHandler := handlers.NewDBHandler(config.Database, authService, renderer)
	router := handlers.NewRouter(DBHandler, authService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:" + config.Port()},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(router)

	serverAddr := "0.0.0.0:" + config.Port()
	log.Printf("Listening on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal(err)
	}
}
