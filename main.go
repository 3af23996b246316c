package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	corsgin "github.com/rs/cors/wrapper/gin"
)

func main() {
	log.SetPrefix("nt/nutrition-coach-go-api: ")
	log.SetFlags(0)

	// .env is optional — in deployed environments config comes from real env vars.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	h := &Handler{
		db:            getDBPool(),
		openAIBaseURL: "https://api.openai.com",
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.Use(corsgin.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	fmt.Printf("Starting gin app on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
