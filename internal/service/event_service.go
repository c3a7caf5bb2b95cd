package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eeuunnjjiinn/planner/internal/dto"
	"github.com/eeuunnjjiinn/planner/internal/model"
	"github.com/eeuunnjjiinn/planner/internal/planner"
	"github.com/eeuunnjjiinn/planner/internal/repository"
	"github.com/eeuunnjjiinn/planner/pkg/watch"
)

// ── 周历事件模块业务错误 ──

var (
	ErrEventNotFound = errors.New("日程不存在")
	ErrEventNotOwner = errors.New("无权操作此日程")
	ErrBadDateKey    = errors.New("非法的日期参数")
)

// EventService 周历事件业务接口
//
// 设计说明：
//   - 一周窗口由参考日期推导：周日起始，切换 ±7 天时整个窗口重算。
//   - 范围查询 [周日, 周六] 走 dateKey 字符串比较。
//   - 创建时钳制 duration 到 1-12；存储层不再约束。
//   - 写操作完成后广播变更，订阅方重拉全量快照。
type EventService interface {
	// GetWeek 获取参考日期所在周的事件快照与网格定位
	GetWeek(ctx context.Context, userID, refKey string) (*dto.WeekEventsResponse, error)
	// Create 在 (dateKey, startHour) 单元格创建事件
	Create(ctx context.Context, req *dto.CreateEventRequest, userID string) (*dto.EventResponse, error)
	// Delete 删除事件（点击即删，确认在客户端）
	Delete(ctx context.Context, id, userID string) error
	// Watch 订阅本用户事件集合的变更
	Watch(userID string) *watch.Subscription
}

type eventService struct {
	repo     *repository.Repository
	hub      *watch.Hub
	notifier *changeNotifier
	logger   *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, hub *watch.Hub, notifier *changeNotifier, logger *zap.Logger) EventService {
	return &eventService{repo: repo, hub: hub, notifier: notifier, logger: logger}
}

func (s *eventService) GetWeek(ctx context.Context, userID, refKey string) (*dto.WeekEventsResponse, error) {
	ref, err := resolveRefDate(refKey)
	if err != nil {
		return nil, ErrBadDateKey
	}

	startKey, endKey := planner.WeekRange(ref)

	events, err := s.repo.Event.ListByDateRange(ctx, userID, startKey, endKey)
	if err != nil {
		s.logger.Error("查询周事件失败", zap.Error(err))
		return nil, err
	}

	return buildWeekResponse(ref, startKey, endKey, events), nil
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, userID string) (*dto.EventResponse, error) {
	duration := req.Duration
	if duration == 0 {
		duration = 1
	}

	ev := &model.Event{
		UserID:    userID,
		Title:     req.Title,
		DateKey:   req.DateKey,
		StartHour: req.StartHour,
		Duration:  planner.ClampDuration(duration),
		Color:     defaultColor(req.Color),
	}

	if err := s.repo.Event.Create(ctx, ev); err != nil {
		s.logger.Error("创建日程失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionEvents)

	resp := toEventResponse(*ev)
	return &resp, nil
}

func (s *eventService) Delete(ctx context.Context, id, userID string) error {
	ev, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if ev.UserID != userID {
		return ErrEventNotOwner
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("删除日程失败", zap.Error(err))
		return err
	}

	s.notifier.notify(ctx, userID, CollectionEvents)
	return nil
}

func (s *eventService) Watch(userID string) *watch.Subscription {
	return s.hub.Subscribe(watch.Topic{UserID: userID, Collection: CollectionEvents})
}

// ── 辅助 ──

// resolveRefDate 解析参考日期，空串取今天
func resolveRefDate(refKey string) (time.Time, error) {
	if refKey == "" {
		return time.Now(), nil
	}
	return planner.ParseDateKey(refKey)
}

func defaultColor(c string) string {
	if c == "" {
		return "#2563eb"
	}
	return c
}

func buildWeekResponse(ref time.Time, startKey, endKey string, events []model.Event) *dto.WeekEventsResponse {
	sorted := planner.SortEvents(events)

	list := make([]dto.EventResponse, 0, len(sorted))
	for _, ev := range sorted {
		list = append(list, toEventResponse(ev))
	}

	placed := make([]dto.PlacedEventResponse, 0, len(sorted))
	for _, stack := range planner.PlaceEvents(sorted, startKey) {
		for _, p := range stack {
			placed = append(placed, dto.PlacedEventResponse{
				EventResponse: toEventResponse(p.Event),
				DayIndex:      p.DayIndex,
				HeightPx:      p.HeightPx,
				TimeLabel:     p.TimeLabel,
			})
		}
	}

	return &dto.WeekEventsResponse{
		WeekStartKey: startKey,
		WeekEndKey:   endKey,
		RangeLabel:   planner.WeekRangeLabel(ref),
		Hours:        planner.GridHours(),
		Events:       list,
		Placed:       placed,
	}
}

func toEventResponse(ev model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:        ev.EventID,
		Title:     ev.Title,
		DateKey:   ev.DateKey,
		StartHour: ev.StartHour,
		Duration:  ev.Duration,
		Color:     ev.Color,
	}
}
