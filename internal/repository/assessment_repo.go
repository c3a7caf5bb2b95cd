package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// AssessmentRepository 考试/作业数据访问接口
type AssessmentRepository interface {
	Create(ctx context.Context, a *model.Assessment) error
	GetByID(ctx context.Context, id string) (*model.Assessment, error)
	ListByDateRange(ctx context.Context, userID, startKey, endKey string) ([]model.Assessment, error)
	// Update 全字段覆盖写（无局部 patch）
	Update(ctx context.Context, a *model.Assessment) error
	Delete(ctx context.Context, id string) error
}

type assessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo 创建 AssessmentRepository 实例
func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) Create(ctx context.Context, a *model.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assessmentRepo) ListByDateRange(ctx context.Context, userID, startKey, endKey string) ([]model.Assessment, error) {
	var items []model.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date_key >= ? AND date_key <= ?", startKey, endKey).
		Find(&items).Error
	return items, err
}

func (r *assessmentRepo) Update(ctx context.Context, a *model.Assessment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assessmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assessment_id = ?", id).
		Delete(&model.Assessment{}).Error
}
