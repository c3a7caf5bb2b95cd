package dto

// ── 考试/作业 DTO ──

// SaveAssessmentRequest 创建与编辑共用：除完成切换外全字段覆盖写
// status 为空时按类型取初始值（作业 in_progress / 考试 preparing）
type SaveAssessmentRequest struct {
	Type      string `json:"type"       binding:"required,oneof=assignment exam"`
	Title     string `json:"title"      binding:"required,max=200"`
	SubjectID string `json:"subject_id" binding:"omitempty,uuid"`
	DateKey   string `json:"date_key"   binding:"required,datekey"`
	Time      string `json:"time"       binding:"omitempty,hhmm"` // 可选；空串排序时置前
	Location  string `json:"location"   binding:"omitempty,max=100"`
	Memo      string `json:"memo"       binding:"omitempty,max=500"`
	Status    string `json:"status"     binding:"omitempty"`
}

// AssessmentResponse 单条评估
type AssessmentResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	SubjectID   string `json:"subject_id,omitempty"`
	SubjectName string `json:"subject_name"`
	Color       string `json:"color"`
	DateKey     string `json:"date_key"`
	Time        string `json:"time"`
	Location    string `json:"location,omitempty"`
	Memo        string `json:"memo"`
	Status      string `json:"status"`
	DDayLabel   string `json:"dday_label"` // "D-day" / "D-3"
}

// UpcomingAssessmentsResponse 7 天滚动窗口快照（已排序过滤）
type UpcomingAssessmentsResponse struct {
	BaseDateKey string               `json:"base_date_key"`
	RangeEndKey string               `json:"range_end_key"`
	Filter      string               `json:"filter"`
	Items       []AssessmentResponse `json:"items"`
}
