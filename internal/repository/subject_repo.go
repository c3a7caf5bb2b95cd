package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, s *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	// List 按 createdAt 降序返回用户全部科目
	List(ctx context.Context, userID string) ([]model.Subject, error)
	Update(ctx context.Context, s *model.Subject) error
	// Delete 仅删科目本身，引用它的评估记录保留（无级联）
	Delete(ctx context.Context, id string) error
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var s model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subjectRepo) List(ctx context.Context, userID string) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) Update(ctx context.Context, s *model.Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		Delete(&model.Subject{}).Error
}
