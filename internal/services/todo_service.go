// Package servicesはTodo関連のビジネスロジックを扱います。
package services

import (
	"time"

	"todo-service/backend/internal/models"
	"todo-service/backend/internal/repositories"
)

// TodoService はTodoの作成・更新・削除・検索・集計を担当します。
type TodoService struct {
	todoRepo *repositories.TodoRepository

	// now はテストで固定時刻を注入するために差し替え可能にしてあります。
	now func() time.Time
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTodo は入力を検証し、IDを採番して新しいTodoを保存します。
func (s *TodoService) CreateTodo(in models.TodoCreate) (*models.Todo, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	id := s.todoRepo.AllocateID()
	todo := models.NewTodo(id, in, s.now())
	todo.ProgressPercent = CalculateProgress(todo)

	s.todoRepo.Save(todo)
	return &todo, nil
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(id)
}

// UpdateTodo は部分更新を既存のTodoへマージして保存します。
// ボディに現れたフィールドだけが上書きされ、進捗率はマージ後の
// サブタスクと状態から再計算されます。
func (s *TodoService) UpdateTodo(id int, update *models.TodoUpdate) (*models.Todo, error) {
	if err := models.Validate(update); err != nil {
		return nil, err
	}

	existing, err := s.todoRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	merged, err := existing.ApplyUpdate(update, s.now())
	if err != nil {
		return nil, err
	}
	merged.ProgressPercent = CalculateProgress(merged)

	s.todoRepo.Save(merged)
	return &merged, nil
}

// DeleteTodo はTodoを削除します。存在しない場合はErrTodoNotFoundを返します。
func (s *TodoService) DeleteTodo(id int) error {
	return s.todoRepo.Delete(id)
}

// BatchCreateTodos は複数のTodoをリクエスト順に作成します。
// 各項目は独立して処理され、失敗した項目は0始まりのインデックスとともに
// 記録されます。失敗があっても作成済みの項目はロールバックされません。
func (s *TodoService) BatchCreateTodos(items []models.TodoCreate) *models.BatchCreateResponse {
	created := make([]models.Todo, 0, len(items))
	failed := make([]models.BatchCreateFailure, 0)

	for i, item := range items {
		todo, err := s.CreateTodo(item)
		if err != nil {
			failed = append(failed, models.BatchCreateFailure{Index: i, Error: err.Error()})
			continue
		}
		created = append(created, *todo)
	}

	return &models.BatchCreateResponse{
		Created:      created,
		Failed:       failed,
		TotalCreated: len(created),
		TotalFailed:  len(failed),
	}
}

// BatchDeleteTodos は複数のTodoをリクエスト順に削除します。
// 重複したIDもそれぞれ独立に処理されるため、同一バッチ内で削除済みの
// IDが再度現れた場合はnot_found_idsに記録されます。
func (s *TodoService) BatchDeleteTodos(ids []int) *models.BatchDeleteResponse {
	deleted := make([]int, 0, len(ids))
	notFound := make([]int, 0)

	for _, id := range ids {
		if err := s.todoRepo.Delete(id); err != nil {
			notFound = append(notFound, id)
			continue
		}
		deleted = append(deleted, id)
	}

	return &models.BatchDeleteResponse{
		DeletedIDs:   deleted,
		NotFoundIDs:  notFound,
		TotalDeleted: len(deleted),
	}
}
