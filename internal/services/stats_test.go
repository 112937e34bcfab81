package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/backend/internal/models"
)

func TestGetStats_Empty(t *testing.T) {
	svc, _, _ := newTestService(baseTime)

	stats := svc.GetStats()
	assert.Equal(t, 0, stats.TotalTodos)
	assert.Equal(t, 0, stats.OverdueCount)
	assert.Equal(t, 0, stats.CompletedThisWeek)
	assert.Nil(t, stats.AverageCompletionTimeMinutes, "対象0件の平均はnull (0ではない)")

	// 件数0でもすべてのキーが存在する
	for _, st := range models.Statuses() {
		v, ok := stats.ByStatus[string(st)]
		assert.True(t, ok)
		assert.Equal(t, 0, v)
	}
	for _, p := range models.Priorities() {
		v, ok := stats.ByPriority[string(p)]
		assert.True(t, ok)
		assert.Equal(t, 0, v)
	}
}

func TestGetStats_Counts(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)
	past := baseTime.Add(-time.Hour)

	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Priority = models.PriorityHigh })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.Status = models.StatusInProgress })
	saveTodo(repo, baseTime, func(todo *models.Todo) { todo.DueDate = &past }) // 期限切れ
	saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.Status = models.StatusCompleted
		todo.DueDate = &past // completedは期限切れに数えない
	})

	stats := svc.GetStats()
	assert.Equal(t, 4, stats.TotalTodos)
	assert.Equal(t, 2, stats.ByStatus["pending"])
	assert.Equal(t, 1, stats.ByStatus["in_progress"])
	assert.Equal(t, 1, stats.ByStatus["completed"])
	assert.Equal(t, 0, stats.ByStatus["blocked"])
	assert.Equal(t, 3, stats.ByPriority["medium"])
	assert.Equal(t, 1, stats.ByPriority["high"])
	assert.Equal(t, 1, stats.OverdueCount)
}

func TestGetStats_CompletedThisWeek(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)
	weekAgo := baseTime.Add(-7 * 24 * time.Hour)

	completedAt := func(created, completed time.Time) func(*models.Todo) {
		return func(todo *models.Todo) {
			todo.Status = models.StatusCompleted
			todo.CompletedAt = &completed
			todo.Metadata.CreatedAt = created
		}
	}

	// 2時間で完了 (週内)
	saveTodo(repo, baseTime, completedAt(baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour)))
	// 1時間で完了 (週内)
	saveTodo(repo, baseTime, completedAt(baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour)))
	// ちょうど7日前の完了は境界を含むので数える (30分で完了)
	saveTodo(repo, baseTime, completedAt(weekAgo.Add(-30*time.Minute), weekAgo))
	// 8日前の完了は対象外
	saveTodo(repo, baseTime, completedAt(baseTime.Add(-9*24*time.Hour), baseTime.Add(-8*24*time.Hour)))

	stats := svc.GetStats()
	assert.Equal(t, 3, stats.CompletedThisWeek)
	require.NotNil(t, stats.AverageCompletionTimeMinutes)
	// (120 + 60 + 30) / 3 = 70分
	assert.InDelta(t, 70.0, *stats.AverageCompletionTimeMinutes, 0.001)
}

func TestGetStats_AverageNilWhenNoRecentCompletions(t *testing.T) {
	svc, repo, _ := newTestService(baseTime)

	// 完了済みだが8日前なので週間バケットには入らない
	old := baseTime.Add(-8 * 24 * time.Hour)
	saveTodo(repo, baseTime, func(todo *models.Todo) {
		todo.Status = models.StatusCompleted
		todo.CompletedAt = &old
	})

	stats := svc.GetStats()
	assert.Equal(t, 0, stats.CompletedThisWeek)
	assert.Nil(t, stats.AverageCompletionTimeMinutes)
}
