package dto

import "time"

// ── 日待办 DTO ──

// CreateTodoRequest 添加待办
type CreateTodoRequest struct {
	Text    string `json:"text"     binding:"required,max=500"`
	DateKey string `json:"date_key" binding:"required,datekey"`
}

// ToggleTodoRequest 完成状态切换（todo 唯一的局部更新）
type ToggleTodoRequest struct {
	Done bool `json:"done"`
}

// TodoResponse 单个待办
type TodoResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	DateKey   string    `json:"date_key"`
	CreatedAt time.Time `json:"created_at"`
}

// DayTodosResponse 某日待办快照（已按 createdAt 降序）
type DayTodosResponse struct {
	DateKey string         `json:"date_key"`
	Todos   []TodoResponse `json:"todos"`
}
