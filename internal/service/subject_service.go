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

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound  = errors.New("科目不存在")
	ErrSubjectNotOwner  = errors.New("无权操作此科目")
	ErrSubjectBadPeriod = errors.New("结束时间必须晚于开始时间")
)

// SubjectService 科目与周课程表业务接口
//
// 删除科目不级联清理评估记录——评估作为历史保留，悬空的 subject_id
// 由读取侧容忍（科目名展示为空）。
type SubjectService interface {
	List(ctx context.Context, userID string) ([]dto.SubjectResponse, error)
	// GetTimetable 获取按工作日分组、已算好百分比位置的周课程表
	GetTimetable(ctx context.Context, userID string) (*dto.TimetableResponse, error)
	Create(ctx context.Context, req *dto.SaveSubjectRequest, userID string) (*dto.SubjectResponse, error)
	// Update 全字段覆盖写
	Update(ctx context.Context, id string, req *dto.SaveSubjectRequest, userID string) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id, userID string) error
	Watch(userID string) *watch.Subscription
}

type subjectService struct {
	repo     *repository.Repository
	hub      *watch.Hub
	notifier *changeNotifier
	logger   *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, hub *watch.Hub, notifier *changeNotifier, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, hub: hub, notifier: notifier, logger: logger}
}

func (s *subjectService) List(ctx context.Context, userID string) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, userID)
	if err != nil {
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subj := range subjects {
		list = append(list, toSubjectResponse(subj))
	}
	return list, nil
}

func (s *subjectService) GetTimetable(ctx context.Context, userID string) (*dto.TimetableResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, userID)
	if err != nil {
		s.logger.Error("查询科目失败", zap.Error(err))
		return nil, err
	}

	days := make(map[int][]dto.TimetableBlockResponse)
	for day, blocks := range planner.PlaceBlocks(subjects) {
		col := make([]dto.TimetableBlockResponse, 0, len(blocks))
		for _, b := range blocks {
			col = append(col, dto.TimetableBlockResponse{
				SubjectResponse: toSubjectResponse(b.Subject),
				TopPercent:      b.TopPercent,
				HeightPercent:   b.HeightPercent,
			})
		}
		days[day] = col
	}

	return &dto.TimetableResponse{
		StartHour: planner.TimetableStartHour,
		EndHour:   planner.TimetableEndHour,
		Days:      days,
	}, nil
}

func (s *subjectService) Create(ctx context.Context, req *dto.SaveSubjectRequest, userID string) (*dto.SubjectResponse, error) {
	// 时间区间在任何写入前校验
	if !planner.ValidTimeRange(req.StartTime, req.EndTime) {
		return nil, ErrSubjectBadPeriod
	}

	subj := &model.Subject{UserID: userID}
	applySubjectRequest(subj, req)

	if err := s.repo.Subject.Create(ctx, subj); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionSubjects)

	resp := toSubjectResponse(*subj)
	return &resp, nil
}

func (s *subjectService) Update(ctx context.Context, id string, req *dto.SaveSubjectRequest, userID string) (*dto.SubjectResponse, error) {
	if !planner.ValidTimeRange(req.StartTime, req.EndTime) {
		return nil, ErrSubjectBadPeriod
	}

	subj, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// 全字段覆盖；已有评估里反范式的科目名/颜色不回填
	applySubjectRequest(subj, req)

	if err := s.repo.Subject.Update(ctx, subj); err != nil {
		s.logger.Error("更新科目失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionSubjects)

	resp := toSubjectResponse(*subj)
	return &resp, nil
}

func (s *subjectService) Delete(ctx context.Context, id, userID string) error {
	subj, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	// 无级联：引用此科目的评估保留，subject_id 变为悬空引用
	if err := s.repo.Subject.Delete(ctx, subj.SubjectID); err != nil {
		s.logger.Error("删除科目失败", zap.Error(err))
		return err
	}

	s.notifier.notify(ctx, userID, CollectionSubjects)
	return nil
}

func (s *subjectService) Watch(userID string) *watch.Subscription {
	return s.hub.Subscribe(watch.Topic{UserID: userID, Collection: CollectionSubjects})
}

func (s *subjectService) getOwned(ctx context.Context, id, userID string) (*model.Subject, error) {
	subj, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if subj.UserID != userID {
		return nil, ErrSubjectNotOwner
	}
	return subj, nil
}

func applySubjectRequest(subj *model.Subject, req *dto.SaveSubjectRequest) {
	subj.Name = req.Name
	subj.Professor = req.Professor
	subj.Place = req.Place
	subj.Day = req.Day
	subj.StartTime = req.StartTime
	subj.EndTime = req.EndTime
	subj.Color = defaultColor(req.Color)
}

func toSubjectResponse(s model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:        s.SubjectID,
		Name:      s.Name,
		Professor: s.Professor,
		Place:     s.Place,
		Day:       s.Day,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Color:     s.Color,
	}
}
