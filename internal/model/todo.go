package model

import "time"

// Todo 单日待办项 — 对应 todos
type Todo struct {
	TodoID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Text      string    `gorm:"type:varchar(500);not null"                     json:"text"`
	Done      bool      `gorm:"not null;default:false"                         json:"done"`
	DateKey   string    `gorm:"type:char(10);not null"                         json:"date_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Todo) TableName() string { return "todos" }
