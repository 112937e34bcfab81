package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"todo-service/backend/internal/repositories"
	"todo-service/backend/internal/routes"
)

func main() {
	// .envが無い場合は環境変数をそのまま使う
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	todoRepo := repositories.NewTodoRepository()
	r := routes.SetupRouter(todoRepo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// サーバー起動
	log.Printf("Server listening on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
