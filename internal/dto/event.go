package dto

// ── 周历事件 DTO ──

// CreateEventRequest 点击单元格创建事件
// duration 超出 1-12 时服务端钳制；startHour 必须落在 0-23
type CreateEventRequest struct {
	Title     string `json:"title"      binding:"required,max=200"`
	DateKey   string `json:"date_key"   binding:"required,datekey"`
	StartHour int    `json:"start_hour" binding:"min=0,max=23"`
	Duration  int    `json:"duration"   binding:"omitempty,min=1,max=12"`
	Color     string `json:"color"      binding:"omitempty,max=20"`
}

// EventResponse 单个事件
type EventResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DateKey   string `json:"date_key"`
	StartHour int    `json:"start_hour"`
	Duration  int    `json:"duration"`
	Color     string `json:"color"`
}

// PlacedEventResponse 定位后的事件块
type PlacedEventResponse struct {
	EventResponse
	DayIndex  int    `json:"day_index"` // 0=周日 … 6=周六
	HeightPx  int    `json:"height_px"`
	TimeLabel string `json:"time_label"` // 如 "2PM – 4PM"
}

// WeekEventsResponse 一周事件快照 + 网格定位
type WeekEventsResponse struct {
	WeekStartKey string                `json:"week_start_key"`
	WeekEndKey   string                `json:"week_end_key"`
	RangeLabel   string                `json:"range_label"` // "MM-dd ~ MM-dd"
	Hours        []int                 `json:"hours"`       // 6..20
	Events       []EventResponse       `json:"events"`      // 已按 (dateKey, startHour) 排序
	Placed       []PlacedEventResponse `json:"placed"`
}
