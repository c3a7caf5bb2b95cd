package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// TodoRepository 日待办数据访问接口
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetByID(ctx context.Context, id string) (*model.Todo, error)
	ListByDate(ctx context.Context, userID, dateKey string) ([]model.Todo, error)
	// UpdateDone 完成状态切换——todo 唯一允许的局部更新
	UpdateDone(ctx context.Context, id string, done bool) error
	Delete(ctx context.Context, id string) error
}

type todoRepo struct {
	db *gorm.DB
}

// NewTodoRepo 创建 TodoRepository 实例
func NewTodoRepo(db *gorm.DB) TodoRepository {
	return &todoRepo{db: db}
}

func (r *todoRepo) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepo) GetByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).
		Where("todo_id = ?", id).
		First(&todo).Error
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepo) ListByDate(ctx context.Context, userID, dateKey string) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Find(&todos).Error
	return todos, err
}

func (r *todoRepo) UpdateDone(ctx context.Context, id string, done bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("todo_id = ?", id).
		Update("done", done).Error
}

func (r *todoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("todo_id = ?", id).
		Delete(&model.Todo{}).Error
}
