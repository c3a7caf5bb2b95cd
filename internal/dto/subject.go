package dto

// ── 科目/时间表 DTO ──

// SaveSubjectRequest 创建与编辑共用（全字段覆盖写）
// endTime 必须严格晚于 startTime，在任何写入前校验
type SaveSubjectRequest struct {
	Name      string `json:"name"       binding:"required,max=100"`
	Professor string `json:"professor"  binding:"omitempty,max=100"`
	Place     string `json:"place"      binding:"omitempty,max=100"`
	Day       int    `json:"day"        binding:"required,min=1,max=5"` // 1=月 … 5=金
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time"   binding:"required,hhmm"`
	Color     string `json:"color"      binding:"omitempty,max=20"`
}

// SubjectResponse 单个科目
type SubjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Professor string `json:"professor"`
	Place     string `json:"place"`
	Day       int    `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Color     string `json:"color"`
}

// TimetableBlockResponse 时间表中的课程块
type TimetableBlockResponse struct {
	SubjectResponse
	TopPercent    float64 `json:"top_percent"`
	HeightPercent float64 `json:"height_percent"`
}

// TimetableResponse 周课程表：5 个工作日列
type TimetableResponse struct {
	StartHour int                              `json:"start_hour"` // 8
	EndHour   int                              `json:"end_hour"`   // 20
	Days      map[int][]TimetableBlockResponse `json:"days"`       // 1..5
}
