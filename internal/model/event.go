package model

import "time"

// Event 周历一次性日程 — 对应 events
// date_key 为 yyyy-MM-dd 文本，字典序等价于时间序，范围查询依赖此不变量
type Event struct {
	EventID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Title     string    `gorm:"type:varchar(200);not null"                     json:"title"`
	DateKey   string    `gorm:"type:char(10);not null"                         json:"date_key"`
	StartHour int       `gorm:"type:smallint;not null"                         json:"start_hour"` // 0-23
	Duration  int       `gorm:"type:smallint;not null;default:1"               json:"duration"`   // 小时数，写入时钳制到 1-12
	Color     string    `gorm:"type:varchar(20);not null;default:'#2563eb'"    json:"color"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
