package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Event      EventRepository
	Todo       TodoRepository
	Assessment AssessmentRepository
	Subject    SubjectRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Event:      NewEventRepo(db),
		Todo:       NewTodoRepo(db),
		Assessment: NewAssessmentRepo(db),
		Subject:    NewSubjectRepo(db),
	}
}
