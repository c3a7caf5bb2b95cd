package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// EventRepository 周历事件数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// ListByDateRange 按 dateKey 闭区间范围查询（字符串比较即时间比较）
	ListByDateRange(ctx context.Context, userID, startKey, endKey string) ([]model.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) ListByDateRange(ctx context.Context, userID, startKey, endKey string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date_key >= ? AND date_key <= ?", startKey, endKey).
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.Event{}).Error
}
