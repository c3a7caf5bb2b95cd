package model

import "time"

// Subject 每周固定课程 — 对应 subjects
// day 取 1-5（周一至周五），时间表视图没有周末列
type Subject struct {
	SubjectID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Professor string    `gorm:"type:varchar(100);not null;default:''"          json:"professor"`
	Place     string    `gorm:"type:varchar(100);not null;default:''"          json:"place"`
	Day       int       `gorm:"type:smallint;not null"                         json:"day"`        // 1=月 … 5=金
	StartTime string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime   string    `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM，必须晚于 StartTime
	Color     string    `gorm:"type:varchar(20);not null;default:'#2563eb'"    json:"color"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
