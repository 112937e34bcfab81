package services

import (
	"time"

	"todo-service/backend/internal/models"
)

// CalculateProgress はサブタスクから進捗率を導出します。
//
// サブタスクが0件の場合、statusがcompletedなら100、それ以外は0。
// サブタスクがある場合は 100 * 完了数 / 総数 の整数部 (切り捨て) を返します。
// 例: 3件中1件完了 → 33。
func CalculateProgress(t models.Todo) int {
	if len(t.Subtasks) == 0 {
		if t.Status == models.StatusCompleted {
			return 100
		}
		return 0
	}
	completed := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			completed++
		}
	}
	return 100 * completed / len(t.Subtasks)
}

// IsOverdue は期限切れ判定です: 期限が設定されていて、nowより前で、
// statusがcompletedでない場合にtrueを返します。
// この判定はクエリ時に毎回計算され、エンティティにはキャッシュされません。
func IsOverdue(t models.Todo, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusCompleted
}
