package models

// PaginatedResponse はページネーション付きの一覧レスポンスです。
type PaginatedResponse struct {
	Items       []Todo `json:"items"`
	Total       int    `json:"total"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
}

// BatchCreateRequest は一括作成リクエストのボディです (最大100件)。
// 各項目のフィールド検証はサービス層が項目ごとに独立して行うため、
// ここではdiveせず件数だけを検証します。
type BatchCreateRequest struct {
	Items []TodoCreate `json:"items" binding:"required,min=1,max=100"`
}

// BatchCreateFailure は一括作成で失敗した1項目の詳細です。
// Indexはリクエスト内の0始まりの位置です。
type BatchCreateFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchCreateResponse は一括作成の結果です。項目ごとの部分的な失敗は
// 正常な結果であり、成功済みの項目はロールバックされません。
type BatchCreateResponse struct {
	Created      []Todo               `json:"created"`
	Failed       []BatchCreateFailure `json:"failed"`
	TotalCreated int                  `json:"total_created"`
	TotalFailed  int                  `json:"total_failed"`
}

// BatchDeleteRequest は一括削除リクエストのボディです (最大100件)。
type BatchDeleteRequest struct {
	IDs []int `json:"ids" binding:"required,min=1,max=100"`
}

// BatchDeleteResponse は一括削除の結果です。
type BatchDeleteResponse struct {
	DeletedIDs   []int `json:"deleted_ids"`
	NotFoundIDs  []int `json:"not_found_ids"`
	TotalDeleted int   `json:"total_deleted"`
}

// StatsResponse は全Todoの統計情報です。
// AverageCompletionTimeMinutesは直近7日間に完了したTodoが
// 1件もない場合はnullになります (0ではありません)。
type StatsResponse struct {
	TotalTodos                   int            `json:"total_todos"`
	ByStatus                     map[string]int `json:"by_status"`
	ByPriority                   map[string]int `json:"by_priority"`
	OverdueCount                 int            `json:"overdue_count"`
	CompletedThisWeek            int            `json:"completed_this_week"`
	AverageCompletionTimeMinutes *float64       `json:"average_completion_time_minutes"`
}
