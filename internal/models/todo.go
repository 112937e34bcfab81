// Package modelsはTodoとそのネスト構造を定義します。
package models

import (
	"time"
)

// Priority はTodoの優先度を表します。
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium" // デフォルト
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities はすべての優先度を低い順に返します。
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Rank はソート用の序列を返します (low=0 < medium < high < critical=3)。
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	default:
		return 4
	}
}

// Status はTodoの状態を表します。
type Status string

const (
	StatusPending    Status = "pending" // デフォルト
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
)

// Statuses はすべての状態を返します。
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked, StatusCancelled}
}

// RecurrenceType は繰り返しパターンを表します。
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none" // デフォルト
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// DefaultLabelColor はcolor未指定時のラベル色です。
const DefaultLabelColor = "#808080"

// Label はTodoを分類するためのラベルです。
type Label struct {
	Name string `json:"name" binding:"required,max=50"`

	// Color: "#RRGGBB" 形式。未指定ならDefaultLabelColorが設定されます。
	Color       string  `json:"color" binding:"omitempty,hexrgb"`
	Description *string `json:"description"`
}

// Subtask はTodo内の子タスクです。
type Subtask struct {
	// ID: 未指定ならUUIDが採番されます。
	ID          string     `json:"id"`
	Title       string     `json:"title" binding:"required,max=200"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Reminder はリマインダー設定です。通知の配信自体はこのサービスの対象外で、
// 設定データを保持するだけです。
type Reminder struct {
	RemindAt time.Time `json:"remind_at" binding:"required"`

	// NotificationType: push, email, sms など。未指定なら "push"。
	NotificationType string  `json:"notification_type"`
	Message          *string `json:"message"`
}

// Recurrence は繰り返し設定です。将来インスタンスへの展開は対象外です。
type Recurrence struct {
	Type        RecurrenceType `json:"type" binding:"omitempty,oneof=none daily weekly monthly yearly"`
	Interval    int            `json:"interval" binding:"omitempty,min=1,max=365"`
	EndDate     *time.Time     `json:"end_date"`
	Occurrences *int           `json:"occurrences" binding:"omitempty,min=1"`
}

// Attachment はファイル添付です。
type Attachment struct {
	// ID: 未指定ならUUIDが採番されます。
	ID        string `json:"id"`
	Filename  string `json:"filename" binding:"required"`
	MimeType  string `json:"mime_type" binding:"required"`
	SizeBytes int    `json:"size_bytes" binding:"min=0"`
	URL       string `json:"url" binding:"required"`
}

// Metadata はTodoのメタ情報です。versionは楽観ロック用のカウンターで、
// 更新のたびに必ず1ずつ増加します。クライアントからは設定できません。
type Metadata struct {
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CreatedBy    *string        `json:"created_by"`
	Version      int            `json:"version"`
	Tags         []string       `json:"tags"`
	CustomFields map[string]any `json:"custom_fields"`
}

// NewMetadata は作成時のメタ情報を返します (created_at = updated_at = now, version = 1)。
func NewMetadata(now time.Time) Metadata {
	return Metadata{
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
		Tags:         []string{},
		CustomFields: map[string]any{},
	}
}

// Todo は1件のタスクを表す集約ルートです。
// IDはリポジトリが採番し、以後変更されません。
// ProgressPercentは常にサブタスクと状態から導出され、クライアントからは設定できません。
type Todo struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description"`
	Priority         Priority     `json:"priority"`
	Status           Status       `json:"status"`
	DueDate          *time.Time   `json:"due_date"`
	Labels           []Label      `json:"labels"`
	Subtasks         []Subtask    `json:"subtasks"`
	Reminders        []Reminder   `json:"reminders"`
	Recurrence       *Recurrence  `json:"recurrence"`
	Attachments      []Attachment `json:"attachments"`
	ParentID         *int         `json:"parent_id"`
	AssigneeIDs      []string     `json:"assignee_ids"`
	EstimatedMinutes *int         `json:"estimated_minutes"`
	ActualMinutes    *int         `json:"actual_minutes"`
	Metadata         Metadata     `json:"metadata"`

	// CompletedAt はstatusがcompletedへ遷移したときのみ設定され、
	// completedから離れる遷移で解除されます。
	CompletedAt     *time.Time `json:"completed_at"`
	ProgressPercent int        `json:"progress_percent"`
}
