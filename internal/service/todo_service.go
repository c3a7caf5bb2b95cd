package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/model"
	"github.com/eeuunnjjiinn/planner/internal/planner"
	"github.com/eeuunnjjiinn/planner/internal/repository"
	"github.com/eeuunnjjiinn/planner/pkg/watch"
)

// ── 日待办模块业务错误 ──

var (
	ErrTodoNotFound = errors.New("待办不存在")
	ErrTodoNotOwner = errors.New("无权操作此待办")
)

// TodoService 日待办业务接口
// 待办严格归属单个日历日；除完成切换外没有任何局部更新
type TodoService interface {
	GetDay(ctx context.Context, userID, dateKey string) (*dto.DayTodosResponse, error)
	Create(ctx context.Context, req *dto.CreateTodoRequest, userID string) (*dto.TodoResponse, error)
	Toggle(ctx context.Context, id, userID string, done bool) error
	Delete(ctx context.Context, id, userID string) error
	Watch(userID string) *watch.Subscription
}

type todoService struct {
	repo     *repository.Repository
	hub      *watch.Hub
	notifier *changeNotifier
	logger   *zap.Logger
}

// NewTodoService 创建 TodoService 实例
func NewTodoService(repo *repository.Repository, hub *watch.Hub, notifier *changeNotifier, logger *zap.Logger) TodoService {
	return &todoService{repo: repo, hub: hub, notifier: notifier, logger: logger}
}

func (s *todoService) GetDay(ctx context.Context, userID, dateKey string) (*dto.DayTodosResponse, error) {
	if !planner.ValidDateKey(dateKey) {
		return nil, ErrBadDateKey
	}

	todos, err := s.repo.Todo.ListByDate(ctx, userID, dateKey)
	if err != nil {
		s.logger.Error("查询待办失败", zap.Error(err))
		return nil, err
	}

	sorted := planner.SortTodos(todos)
	list := make([]dto.TodoResponse, 0, len(sorted))
	for _, td := range sorted {
		list = append(list, toTodoResponse(td))
	}

	return &dto.DayTodosResponse{DateKey: dateKey, Todos: list}, nil
}

func (s *todoService) Create(ctx context.Context, req *dto.CreateTodoRequest, userID string) (*dto.TodoResponse, error) {
	td := &model.Todo{
		UserID:  userID,
		Text:    req.Text,
		Done:    false,
		DateKey: req.DateKey,
	}

	if err := s.repo.Todo.Create(ctx, td); err != nil {
		s.logger.Error("创建待办失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionTodos)

	resp := toTodoResponse(*td)
	return &resp, nil
}

func (s *todoService) Toggle(ctx context.Context, id, userID string, done bool) error {
	td, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Todo.UpdateDone(ctx, td.TodoID, done); err != nil {
		s.logger.Error("切换待办状态失败", zap.Error(err))
		return err
	}

	s.notifier.notify(ctx, userID, CollectionTodos)
	return nil
}

func (s *todoService) Delete(ctx context.Context, id, userID string) error {
	td, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Todo.Delete(ctx, td.TodoID); err != nil {
		s.logger.Error("删除待办失败", zap.Error(err))
		return err
	}

	s.notifier.notify(ctx, userID, CollectionTodos)
	return nil
}

func (s *todoService) Watch(userID string) *watch.Subscription {
	return s.hub.Subscribe(watch.Topic{UserID: userID, Collection: CollectionTodos})
}

func (s *todoService) getOwned(ctx context.Context, id, userID string) (*model.Todo, error) {
	td, err := s.repo.Todo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if td.UserID != userID {
		return nil, ErrTodoNotOwner
	}
	return td, nil
}

func toTodoResponse(td model.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:        td.TodoID,
		Text:      td.Text,
		Done:      td.Done,
		DateKey:   td.DateKey,
		CreatedAt: td.CreatedAt,
	}
}
