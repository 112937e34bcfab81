// Package routesはroutingを行います。
package routes

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todo-service/backend/internal/handlers"
	"todo-service/backend/internal/repositories"
	"todo-service/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(todoRepo *repositories.TodoRepository) *gin.Engine {
	r := gin.Default()

	// CORS対策
	allowOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "http://localhost:3000"
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{allowOrigin}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	// サービス
	todoService := services.NewTodoService(todoRepo)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティング
	// /api/todos/stats と /api/todos/batch は :id より先に解決されます
	r.GET("/api/health", HealthHandler)
	r.POST("/api/todos", todoHandler.CreateTodoHandler)
	r.GET("/api/todos", todoHandler.ListTodosHandler)
	r.GET("/api/todos/stats", todoHandler.GetStatsHandler)
	r.POST("/api/todos/batch", todoHandler.BatchCreateTodosHandler)
	r.DELETE("/api/todos/batch", todoHandler.BatchDeleteTodosHandler)
	r.GET("/api/todos/:id", todoHandler.GetTodoByIDHandler)
	r.PUT("/api/todos/:id", todoHandler.UpdateTodoHandler)
	r.DELETE("/api/todos/:id", todoHandler.DeleteTodoHandler)

	return r
}

// HealthHandler は死活監視用のエンドポイントです。
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
