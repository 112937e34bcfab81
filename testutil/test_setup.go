// Package testutilはハンドラーテスト用の共通セットアップを提供します。
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"todo-service/backend/internal/models"
	"todo-service/backend/internal/repositories"
	"todo-service/backend/internal/routes"
)

// SetupTestRouter はテストごとに独立した空のリポジトリとルーターを作成します。
// ストアはプロセス内メモリーなので、テスト間の後始末は不要です。
func SetupTestRouter(t *testing.T) (*gin.Engine, *repositories.TodoRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	todoRepo := repositories.NewTodoRepository()
	r := routes.SetupRouter(todoRepo)
	return r, todoRepo
}

// DoRequest はJSONボディ付きのリクエストをルーターへ送り、レコーダーを返します。
// bodyがnilの場合はボディなしで送ります。
func DoRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoRawRequest は生のJSON文字列をボディとして送ります。
// 部分更新の「キーなし」と「明示的null」を区別するテストで使います。
func DoRawRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// CreateTestTodo はPOST /api/todosでTodoを作成し、レスポンスを返します。
func CreateTestTodo(t *testing.T, r *gin.Engine, in models.TodoCreate) models.Todo {
	t.Helper()

	w := DoRequest(t, r, http.MethodPost, "/api/todos", in)
	require.Equal(t, http.StatusCreated, w.Code, "failed to create test todo: %s", w.Body.String())

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}
