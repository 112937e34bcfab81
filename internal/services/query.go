package services

import (
	"sort"
	"strings"
	"time"

	"todo-service/backend/internal/models"
)

// SortKey は一覧のソートキーです。未知のキーはSortByCreatedAtへ
// フォールバックします。
type SortKey int

const (
	SortByCreatedAt SortKey = iota
	SortByDueDate
	SortByPriority
)

// ParseSortKey はクエリ文字列のsort_byをSortKeyへ変換します。
// 未知の値はSortByCreatedAtになります。
func ParseSortKey(s string) SortKey {
	switch s {
	case "due_date":
		return SortByDueDate
	case "priority":
		return SortByPriority
	default:
		return SortByCreatedAt
	}
}

// farFuture は期限なしのTodoをソートするための番兵値です。
// 昇順では常に末尾に並びます。
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ListParams は一覧操作のフィルター・ソート・ページ指定です。
// nilのフィルターは「指定なし」を意味します。
type ListParams struct {
	Status      *models.Status
	Priority    *models.Priority
	Search      string
	HasSubtasks *bool
	IsOverdue   *bool
	SortBy      SortKey
	SortOrder   string // "desc"なら降順、それ以外は昇順
	Page        int    // 1始まり
	PageSize    int    // 1〜100
}

// ListTodos はフィルター → ソート → ページネーションの順でパイプラインを
// 適用します。範囲外のページは空のitemsを返しますが、totalと
// total_pagesは正しく報告されます (エラーにはなりません)。
func (s *TodoService) ListTodos(p ListParams) *models.PaginatedResponse {
	// リクエスト層がデフォルトを適用するが、直接呼び出しに備えて下限を保証する
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}

	now := s.now()

	all := s.todoRepo.FindAll()
	result := make([]models.Todo, 0, len(all))
	for _, t := range all {
		if matchesFilters(t, p, now) {
			result = append(result, t)
		}
	}

	sortTodos(result, p.SortBy, p.SortOrder == "desc")

	total := len(result)
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}
	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]models.Todo, 0, end-start)
	items = append(items, result[start:end]...)

	return &models.PaginatedResponse{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}

// matchesFilters は指定されたすべてのフィルターを満たすかを返します (AND条件)。
func matchesFilters(t models.Todo, p ListParams, now time.Time) bool {
	if p.Status != nil && t.Status != *p.Status {
		return false
	}
	if p.Priority != nil && t.Priority != *p.Priority {
		return false
	}
	if p.Search != "" {
		q := strings.ToLower(p.Search)
		inTitle := strings.Contains(strings.ToLower(t.Title), q)
		inDescription := t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
		if !inTitle && !inDescription {
			return false
		}
	}
	if p.HasSubtasks != nil && (len(t.Subtasks) > 0) != *p.HasSubtasks {
		return false
	}
	if p.IsOverdue != nil {
		// 期限切れフィルターは期限を持つTodoに対してのみ意味を持つため、
		// true/falseどちらの指定でも期限なしのTodoは結果から除外されます。
		if t.DueDate == nil {
			return false
		}
		if IsOverdue(t, now) != *p.IsOverdue {
			return false
		}
	}
	return true
}

// sortTodos は安定ソートを行います。同値の要素は前段の相対順序を保ちます
// (第2キーはありません)。
func sortTodos(todos []models.Todo, key SortKey, desc bool) {
	var less func(a, b models.Todo) bool
	switch key {
	case SortByDueDate:
		less = func(a, b models.Todo) bool {
			return dueDateOrFarFuture(a).Before(dueDateOrFarFuture(b))
		}
	case SortByPriority:
		less = func(a, b models.Todo) bool {
			return a.Priority.Rank() < b.Priority.Rank()
		}
	default:
		less = func(a, b models.Todo) bool {
			return a.Metadata.CreatedAt.Before(b.Metadata.CreatedAt)
		}
	}

	sort.SliceStable(todos, func(i, j int) bool {
		if desc {
			return less(todos[j], todos[i])
		}
		return less(todos[i], todos[j])
	})
}

func dueDateOrFarFuture(t models.Todo) time.Time {
	if t.DueDate == nil {
		return farFuture
	}
	return *t.DueDate
}
