package services

import (
	"time"

	"todo-service/backend/internal/models"
)

// GetStats は全Todoを1パスで集計します。
//
// by_status / by_priorityは件数0の値もすべてのキーを含みます。
// completed_this_weekはcompleted_atが now - 7日 以降 (境界を含む) の件数です。
// 平均完了時間はその週内完了分のみを対象に completed_at - created_at を
// 分で平均した値で、対象が0件ならnullです。
func (s *TodoService) GetStats() *models.StatsResponse {
	now := s.now()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	byStatus := make(map[string]int, len(models.Statuses()))
	for _, st := range models.Statuses() {
		byStatus[string(st)] = 0
	}
	byPriority := make(map[string]int, len(models.Priorities()))
	for _, p := range models.Priorities() {
		byPriority[string(p)] = 0
	}

	all := s.todoRepo.FindAll()

	overdueCount := 0
	completedThisWeek := 0
	totalCompletionMinutes := 0.0

	for _, t := range all {
		byStatus[string(t.Status)]++
		byPriority[string(t.Priority)]++

		if IsOverdue(t, now) {
			overdueCount++
		}

		if t.CompletedAt != nil && !t.CompletedAt.Before(weekAgo) {
			completedThisWeek++
			totalCompletionMinutes += t.CompletedAt.Sub(t.Metadata.CreatedAt).Minutes()
		}
	}

	var avg *float64
	if completedThisWeek > 0 {
		v := totalCompletionMinutes / float64(completedThisWeek)
		avg = &v
	}

	return &models.StatsResponse{
		TotalTodos:                   len(all),
		ByStatus:                     byStatus,
		ByPriority:                   byPriority,
		OverdueCount:                 overdueCount,
		CompletedThisWeek:            completedThisWeek,
		AverageCompletionTimeMinutes: avg,
	}
}
