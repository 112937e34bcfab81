// Package repositoriesはTodoの保管庫を提供します。
package repositories

import (
	"errors"
	"sync"

	"todo-service/backend/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はプロセス存続期間中の {ID → Todo} マップとID採番カウンターを
// 排他的に所有します。永続化は行いません (対象外)。
//
// すべての操作は単一のミューテックスで保護されるため、複数のリクエストから
// 同時に呼び出しても安全です。1つの論理操作 (検索→マージ→保存など) をまたぐ
// 排他制御はサービス層の責務ではなく、このコアでは提供しません。
type TodoRepository struct {
	mu     sync.Mutex
	todos  map[int]models.Todo
	order  []int // 挿入順を保持 (既存IDの上書きでは変わらない)
	nextID int
}

// NewTodoRepository は空のTodoRepositoryを作成します。
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{
		todos: make(map[int]models.Todo),
	}
}

// AllocateID は次のIDを採番します。カウンターは単調増加し、採番後に作成が
// 失敗しても巻き戻しません。プロセス内でIDが再利用されることはありません。
func (r *TodoRepository) AllocateID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// FindByID は指定IDのTodoのコピーを返します。
func (r *TodoRepository) FindByID(id int) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}
	return &t, nil
}

// Save はTodoを挿入または置換します。
func (r *TodoRepository) Save(t models.Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.todos[t.ID] = t
}

// Delete は指定IDのTodoを削除します。存在しない場合はErrTodoNotFoundを返します。
func (r *TodoRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return ErrTodoNotFound
	}
	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindAll はすべてのTodoのスナップショットを挿入順で返します。
func (r *TodoRepository) FindAll() []models.Todo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Todo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.todos[id])
	}
	return out
}

// Len は保管中のTodo件数を返します。
func (r *TodoRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.todos)
}
