package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/backend/internal/models"
	"todo-service/backend/internal/repositories"
)

// saveTodo はサービスを経由せずに任意のフィールドを持つTodoを保管します。
// created_atなど、作成APIでは制御できない値をテストで固定するために使います。
func saveTodo(repo *repositories.TodoRepository, createdAt time.Time, mutate func(*models.Todo)) models.Todo {
	todo := models.NewTodo(repo.AllocateID(), models.TodoCreate{Title: "todo"}, createdAt)
	if mutate != nil {
		mutate(&todo)
	}
	repo.Save(todo)
	return todo
}

func listAll(svc *TodoService, p ListParams) *models.PaginatedResponse {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 100
	}
	return svc.ListTodos(p)
}

func ids(items []models.Todo) []int {
	out := make([]int, len(items))
	for i, t := range items {
		out[i] = t.ID
	}
	return out
}

func TestListTodos_FilterByStatusAndPriority(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Status = models.StatusCompleted })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Priority = models.PriorityHigh })
	saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.Status = models.StatusCompleted
		todo.Priority = models.PriorityHigh
	})

	completed := models.StatusCompleted
	high := models.PriorityHigh

	result := listAll(svc, ListParams{Status: &completed})
	assert.Equal(t, 2, result.Total)

	result = listAll(svc, ListParams{Priority: &high})
	assert.Equal(t, 2, result.Total)

	// フィルターはAND条件
	result = listAll(svc, ListParams{Status: &completed, Priority: &high})
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, []int{3}, ids(result.Items))
}

func TestListTodos_Search(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Title = "Buy MILK today" })
	saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.Title = "Other"
		desc := "remember the milk"
		todo.Description = &desc
	})
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Title = "Unrelated" }) // descriptionなし

	result := listAll(svc, ListParams{Search: "milk"})
	assert.Equal(t, 2, result.Total, "タイトルと説明を大文字小文字を無視して検索")
	assert.Equal(t, []int{1, 2}, ids(result.Items))
}

func TestListTodos_HasSubtasks(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.Subtasks = []models.Subtask{{ID: "s", Title: "sub"}}
	})
	saveTodo(repo, baseTime, nil)

	yes, no := true, false
	result := listAll(svc, ListParams{HasSubtasks: &yes})
	assert.Equal(t, []int{1}, ids(result.Items))

	result = listAll(svc, ListParams{HasSubtasks: &no})
	assert.Equal(t, []int{2}, ids(result.Items))
}

func TestListTodos_OverdueFilter(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)
	past := baseTime.Add(-time.Hour)
	future := baseTime.Add(time.Hour)

	overdueTodo := saveTodo(repo, baseTime, func(todo *models.Todo) { todo.DueDate = &past })
	futureTodo := saveTodo(repo, baseTime, func(todo *models.Todo) { todo.DueDate = &future })
	completedPastDue := saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.DueDate = &past
		todo.Status = models.StatusCompleted
	})
	saveTodo(repo, baseTime, nil) // 期限なし

	yes, no := true, false

	result := listAll(svc, ListParams{IsOverdue: &yes})
	assert.Equal(t, []int{overdueTodo.ID}, ids(result.Items))

	// falseは「期限があって期限切れでない」: 期限なしはどちらの指定でも除外される
	result = listAll(svc, ListParams{IsOverdue: &no})
	assert.ElementsMatch(t, []int{futureTodo.ID, completedPastDue.ID}, ids(result.Items))
}

func TestListTodos_SortByDueDate(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)
	d1 := baseTime.Add(time.Hour)
	d2 := baseTime.Add(2 * time.Hour)

	saveTodo(repo, baseTime, nil) // 期限なし
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.DueDate = &d2 })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.DueDate = &d1 })

	// 昇順では期限なしが常に末尾
	result := listAll(svc, ListParams{SortBy: SortByDueDate, SortOrder: "asc"})
	assert.Equal(t, []int{3, 2, 1}, ids(result.Items))

	result = listAll(svc, ListParams{SortBy: SortByDueDate, SortOrder: "desc"})
	assert.Equal(t, []int{1, 2, 3}, ids(result.Items))
}

func TestListTodos_SortByPriority(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Priority = models.PriorityCritical })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Priority = models.PriorityLow })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Priority = models.PriorityHigh })

	result := listAll(svc, ListParams{SortBy: SortByPriority, SortOrder: "asc"})
	assert.Equal(t, []int{2, 3, 1}, ids(result.Items))
}

func TestListTodos_SortByCreatedAtDescendingDefault(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	saveTodo(repo, baseTime, nil)
	saveTodo(repo, baseTime.Add(time.Minute), nil)
	saveTodo(repo, baseTime.Add(2*time.Minute), nil)

	result := listAll(svc, ListParams{SortBy: SortByCreatedAt, SortOrder: "desc"})
	assert.Equal(t, []int{3, 2, 1}, ids(result.Items))
}

func TestListTodos_StableSortPreservesTies(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	// 全件同じ優先度: ソートしても挿入順が保たれる (第2キーなし)
	for i := 0; i < 4; i++ {
		saveTodo(repo, baseTime.Add(time.Duration(i)*time.Minute), nil)
	}

	result := listAll(svc, ListParams{SortBy: SortByPriority, SortOrder: "asc"})
	assert.Equal(t, []int{1, 2, 3, 4}, ids(result.Items))

	result = listAll(svc, ListParams{SortBy: SortByPriority, SortOrder: "desc"})
	assert.Equal(t, []int{1, 2, 3, 4}, ids(result.Items))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByCreatedAt, ParseSortKey("created_at"))
	assert.Equal(t, SortByDueDate, ParseSortKey("due_date"))
	assert.Equal(t, SortByPriority, ParseSortKey("priority"))
	// 未知のキーはcreated_atへフォールバック
	assert.Equal(t, SortByCreatedAt, ParseSortKey("banana"))
	assert.Equal(t, SortByCreatedAt, ParseSortKey(""))
}

func TestListTodos_Pagination(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)
	for i := 0; i < 25; i++ {
		saveTodo(repo, baseTime.Add(time.Duration(i)*time.Minute), nil)
	}

	page1 := svc.ListTodos(ListParams{SortOrder: "asc", Page: 1, PageSize: 10})
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Items, 10)
	assert.False(t, page1.HasPrevious)
	assert.True(t, page1.HasNext)

	page3 := svc.ListTodos(ListParams{SortOrder: "asc", Page: 3, PageSize: 10})
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrevious)

	// 範囲外のページはエラーにならず、空のitemsと正しいメタ情報を返す
	page4 := svc.ListTodos(ListParams{SortOrder: "asc", Page: 4, PageSize: 10})
	require.NotNil(t, page4.Items)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 25, page4.Total)
	assert.Equal(t, 3, page4.TotalPages)
	assert.False(t, page4.HasNext)
	assert.True(t, page4.HasPrevious)
}

func TestListTodos_EmptyCollection(t *testing.T) {
	svc, _, _ := newTestService(baseTime)

	result := svc.ListTodos(ListParams{Page: 1, PageSize: 20})
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
	assert.Empty(t, result.Items)
	assert.False(t, result.HasNext)
	assert.False(t, result.HasPrevious)
}
