package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TodoCreate はTodo作成リクエストのボディです。
type TodoCreate struct {
	Title            string       `json:"title" binding:"required,max=500"`
	Description      *string      `json:"description" binding:"omitempty,max=5000"`
	Priority         Priority     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status           Status       `json:"status" binding:"omitempty,oneof=pending in_progress completed blocked cancelled"`
	DueDate          *time.Time   `json:"due_date"`
	Labels           []Label      `json:"labels" binding:"omitempty,dive"`
	Subtasks         []Subtask    `json:"subtasks" binding:"omitempty,dive"`
	Reminders        []Reminder   `json:"reminders" binding:"omitempty,dive"`
	Recurrence       *Recurrence  `json:"recurrence"`
	Attachments      []Attachment `json:"attachments" binding:"omitempty,dive"`
	ParentID         *int         `json:"parent_id"`
	AssigneeIDs      []string     `json:"assignee_ids"`
	EstimatedMinutes *int         `json:"estimated_minutes" binding:"omitempty,min=1,max=10080"`
	ActualMinutes    *int         `json:"actual_minutes" binding:"omitempty,min=0"`
}

// TodoUpdate は部分更新リクエストのボディです。すべてのフィールドが任意です。
//
// 「ボディに現れなかったフィールド」と「明示的にnullが指定されたフィールド」を
// 区別するため、UnmarshalJSONで出現キーを記録します。現れなかったフィールドは
// 変更されず、明示的なnullは任意フィールド (description, due_date, recurrence,
// parent_id, estimated_minutes, actual_minutes) を解除し、それ以外のフィールド
// ではバリデーションエラーになります。
type TodoUpdate struct {
	Title            *string      `json:"title" binding:"omitempty,min=1,max=500"`
	Description      *string      `json:"description" binding:"omitempty,max=5000"`
	Priority         *Priority    `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	Status           *Status      `json:"status" binding:"omitempty,oneof=pending in_progress completed blocked cancelled"`
	DueDate          *time.Time   `json:"due_date"`
	Labels           []Label      `json:"labels" binding:"omitempty,dive"`
	Subtasks         []Subtask    `json:"subtasks" binding:"omitempty,dive"`
	Reminders        []Reminder   `json:"reminders" binding:"omitempty,dive"`
	Recurrence       *Recurrence  `json:"recurrence"`
	Attachments      []Attachment `json:"attachments" binding:"omitempty,dive"`
	ParentID         *int         `json:"parent_id"`
	AssigneeIDs      []string     `json:"assignee_ids"`
	EstimatedMinutes *int         `json:"estimated_minutes" binding:"omitempty,min=1,max=10080"`
	ActualMinutes    *int         `json:"actual_minutes" binding:"omitempty,min=0"`

	// supplied はボディに現れたJSONキーの集合です。
	supplied map[string]json.RawMessage
}

// UnmarshalJSON は値のデコードに加えて、どのキーがボディに存在したかを記録します。
func (u *TodoUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// aliasにすることでUnmarshalJSONの再帰呼び出しを避けます
	type alias TodoUpdate
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*u = TodoUpdate(a)
	u.supplied = raw
	return nil
}

// Has は指定したJSONキーがリクエストボディに存在したかを返します。
func (u *TodoUpdate) Has(field string) bool {
	_, ok := u.supplied[field]
	return ok
}

// SetField はテストやリクエスト層以外からの組み立て用に、キーの出現を記録します。
func (u *TodoUpdate) SetField(field string) {
	if u.supplied == nil {
		u.supplied = map[string]json.RawMessage{}
	}
	u.supplied[field] = nil
}

// NewTodo は検証済みの作成入力からTodoを構築します。
// デフォルト値の適用、ネスト構造のID採番、メタ情報の初期化を行います。
// ProgressPercentの導出は呼び出し側 (サービス層) が行います。
func NewTodo(id int, in TodoCreate, now time.Time) Todo {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}

	return Todo{
		ID:               id,
		Title:            in.Title,
		Description:      in.Description,
		Priority:         priority,
		Status:           status,
		DueDate:          in.DueDate,
		Labels:           normalizeLabels(in.Labels),
		Subtasks:         normalizeSubtasks(in.Subtasks),
		Reminders:        normalizeReminders(in.Reminders),
		Recurrence:       normalizeRecurrence(in.Recurrence),
		Attachments:      normalizeAttachments(in.Attachments),
		ParentID:         in.ParentID,
		AssigneeIDs:      copyStrings(in.AssigneeIDs),
		EstimatedMinutes: in.EstimatedMinutes,
		ActualMinutes:    in.ActualMinutes,
		Metadata:         NewMetadata(now),
	}
}

// ApplyUpdate は部分更新をマージした新しいTodoを返します。レシーバーは変更しません。
//
// ボディに現れたフィールドだけを上書きし、statusの遷移ルールを適用します:
// completedへの遷移でcompleted_atを設定、completedから離れる遷移で解除、
// それ以外では変更しません。metadata.versionは1増加し、updated_atをnowに
// 更新します。created_atは変更しません。
func (t Todo) ApplyUpdate(u *TodoUpdate, now time.Time) (Todo, error) {
	merged := t
	prevStatus := t.Status

	if u.Has("title") {
		if u.Title == nil {
			return Todo{}, &ValidationError{Err: errors.New("title cannot be null")}
		}
		merged.Title = *u.Title
	}
	if u.Has("description") {
		merged.Description = u.Description // nullで解除
	}
	if u.Has("priority") {
		if u.Priority == nil {
			return Todo{}, &ValidationError{Err: errors.New("priority cannot be null")}
		}
		merged.Priority = *u.Priority
	}
	if u.Has("status") {
		if u.Status == nil {
			return Todo{}, &ValidationError{Err: errors.New("status cannot be null")}
		}
		merged.Status = *u.Status
	}
	if u.Has("due_date") {
		merged.DueDate = u.DueDate // nullで解除
	}
	if u.Has("labels") {
		if u.Labels == nil {
			return Todo{}, &ValidationError{Err: errors.New("labels cannot be null")}
		}
		merged.Labels = normalizeLabels(u.Labels)
	}
	if u.Has("subtasks") {
		if u.Subtasks == nil {
			return Todo{}, &ValidationError{Err: errors.New("subtasks cannot be null")}
		}
		merged.Subtasks = normalizeSubtasks(u.Subtasks)
	}
	if u.Has("reminders") {
		if u.Reminders == nil {
			return Todo{}, &ValidationError{Err: errors.New("reminders cannot be null")}
		}
		merged.Reminders = normalizeReminders(u.Reminders)
	}
	if u.Has("recurrence") {
		merged.Recurrence = normalizeRecurrence(u.Recurrence) // nullで解除
	}
	if u.Has("attachments") {
		if u.Attachments == nil {
			return Todo{}, &ValidationError{Err: errors.New("attachments cannot be null")}
		}
		merged.Attachments = normalizeAttachments(u.Attachments)
	}
	if u.Has("parent_id") {
		merged.ParentID = u.ParentID // nullで解除
	}
	if u.Has("assignee_ids") {
		if u.AssigneeIDs == nil {
			return Todo{}, &ValidationError{Err: errors.New("assignee_ids cannot be null")}
		}
		merged.AssigneeIDs = copyStrings(u.AssigneeIDs)
	}
	if u.Has("estimated_minutes") {
		merged.EstimatedMinutes = u.EstimatedMinutes // nullで解除
	}
	if u.Has("actual_minutes") {
		merged.ActualMinutes = u.ActualMinutes // nullで解除
	}

	// completed_atの遷移ルール
	if merged.Status == StatusCompleted && prevStatus != StatusCompleted {
		completedAt := now
		merged.CompletedAt = &completedAt
	} else if merged.Status != StatusCompleted && prevStatus == StatusCompleted {
		merged.CompletedAt = nil
	}

	// created_at, created_by, tags, custom_fieldsは変更しない
	merged.Metadata.UpdatedAt = now
	merged.Metadata.Version = t.Metadata.Version + 1

	return merged, nil
}

func normalizeLabels(labels []Label) []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	for i := range out {
		if out[i].Color == "" {
			out[i].Color = DefaultLabelColor
		}
	}
	return out
}

func normalizeSubtasks(subtasks []Subtask) []Subtask {
	out := make([]Subtask, len(subtasks))
	copy(out, subtasks)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func normalizeReminders(reminders []Reminder) []Reminder {
	out := make([]Reminder, len(reminders))
	copy(out, reminders)
	for i := range out {
		if out[i].NotificationType == "" {
			out[i].NotificationType = "push"
		}
	}
	return out
}

func normalizeRecurrence(r *Recurrence) *Recurrence {
	if r == nil {
		return nil
	}
	c := *r
	if c.Type == "" {
		c.Type = RecurrenceNone
	}
	if c.Interval == 0 {
		c.Interval = 1
	}
	return &c
}

func normalizeAttachments(attachments []Attachment) []Attachment {
	out := make([]Attachment, len(attachments))
	copy(out, attachments)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
