// Package handlersはHTTPリクエストをサービス層の型付き操作へ変換します。
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-service/backend/internal/models"
	"todo-service/backend/internal/repositories"
	"todo-service/backend/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// listQuery は一覧エンドポイントのクエリ文字列です。
// page=1, page_size=20, sort_by=created_at, sort_order=desc が
// 未指定時のデフォルトになります。
type listQuery struct {
	Page        int    `form:"page,default=1" binding:"min=1"`
	PageSize    int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Status      string `form:"status" binding:"omitempty,oneof=pending in_progress completed blocked cancelled"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Search      string `form:"search" binding:"omitempty,max=200"`
	HasSubtasks *bool  `form:"has_subtasks"`
	IsOverdue   *bool  `form:"is_overdue"`
	SortBy      string `form:"sort_by,default=created_at"`
	SortOrder   string `form:"sort_order,default=desc"`
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var in models.TodoCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	createdTodo, err := h.todoService.CreateTodo(in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// ListTodosHandler はフィルター・ソート・ページネーション付きの一覧を返します。
func (h *TodoHandler) ListTodosHandler(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	params := services.ListParams{
		Search:      q.Search,
		HasSubtasks: q.HasSubtasks,
		IsOverdue:   q.IsOverdue,
		SortBy:      services.ParseSortKey(q.SortBy),
		SortOrder:   q.SortOrder,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
	if q.Status != "" {
		status := models.Status(q.Status)
		params.Status = &status
	}
	if q.Priority != "" {
		priority := models.Priority(q.Priority)
		params.Priority = &priority
	}

	c.JSON(http.StatusOK, h.todoService.ListTodos(params))
}

// GetTodoByIDHandler は指定IDのTodoをネスト構造ごと返します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodoByID(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UpdateTodoHandler はTodoを部分更新します。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var update models.TodoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(id, &update)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedTodo)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BatchCreateTodosHandler は最大100件のTodoを一括作成します。
// 項目ごとの失敗は結果に含めて200で返します。
func (h *TodoHandler) BatchCreateTodosHandler(c *gin.Context) {
	var req models.BatchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.todoService.BatchCreateTodos(req.Items))
}

// BatchDeleteTodosHandler は最大100件のTodoを一括削除します。
func (h *TodoHandler) BatchDeleteTodosHandler(c *gin.Context) {
	var req models.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.todoService.BatchDeleteTodos(req.IDs))
}

// GetStatsHandler は全Todoの統計を返します。
func (h *TodoHandler) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.todoService.GetStats())
}

// parseID はパスパラメーターのIDを整数へ変換します。
// 不正な形式なら400を書き込み、falseを返します。
func (h *TodoHandler) parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// writeError はサービス層のエラーをHTTPステータスへ対応付けます。
func (h *TodoHandler) writeError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.Is(err, repositories.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": validationErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
