package model

import "time"

// ── 评估类型与状态常量 ──

const (
	AssessmentTypeAssignment = "assignment"
	AssessmentTypeExam       = "exam"

	// 作业状态
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"

	// 考试状态
	StatusPreparing = "preparing"
	StatusDone      = "done"
)

// Assessment 考试/作业记录 — 对应 assessments
//
// subject_id 不建外键：科目删除后评估保留引用，科目名展示为空即可。
// subject_name / color 为写入时的反范式冗余，随科目选择一并覆盖。
type Assessment struct {
	AssessmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Type         string    `gorm:"type:varchar(20);not null"                      json:"type"` // assignment | exam
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	SubjectID    *string   `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	SubjectName  string    `gorm:"type:varchar(100);not null;default:''"          json:"subject_name"`
	Color        string    `gorm:"type:varchar(20);not null;default:'#2563eb'"    json:"color"`
	DateKey      string    `gorm:"type:char(10);not null"                         json:"date_key"`
	Time         string    `gorm:"type:varchar(5);not null;default:''"            json:"time"`     // HH:MM，可为空
	Location     string    `gorm:"type:varchar(100);not null;default:''"          json:"location"` // 仅考试使用
	Memo         string    `gorm:"type:varchar(500);not null;default:''"          json:"memo"`
	Status       string    `gorm:"type:varchar(20);not null"                      json:"status"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Assessment) TableName() string { return "assessments" }

// TerminalStatus 返回该类型的终结状态
// 考试的终结状态是 done，作业的终结状态是 submitted
func (a *Assessment) TerminalStatus() string {
	if a.Type == AssessmentTypeExam {
		return StatusDone
	}
	return StatusSubmitted
}

// Pending 是否尚未到达终结状态
func (a *Assessment) Pending() bool {
	return a.Status != a.TerminalStatus()
}

// ValidStatus 校验状态值是否属于该类型的状态域
func ValidStatus(assessmentType, status string) bool {
	switch assessmentType {
	case AssessmentTypeAssignment:
		return status == StatusInProgress || status == StatusSubmitted
	case AssessmentTypeExam:
		return status == StatusPreparing || status == StatusDone
	}
	return false
}

// DefaultStatus 返回该类型的初始状态
func DefaultStatus(assessmentType string) string {
	if assessmentType == AssessmentTypeExam {
		return StatusPreparing
	}
	return StatusInProgress
}
