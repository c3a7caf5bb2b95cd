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

// ── 考试/作业模块业务错误 ──

var (
	ErrAssessmentNotFound  = errors.New("评估记录不存在")
	ErrAssessmentNotOwner  = errors.New("无权操作此评估记录")
	ErrAssessmentBadStatus = errors.New("状态与类型不匹配")
	ErrAssessmentBadFilter = errors.New("非法的过滤条件")
)

// AssessmentService 考试/作业业务接口
//
// 设计说明：
//   - 「即将到来」窗口 [base, base+7天] 两端闭区间，base 变化时整体重算。
//   - 保存时从所选科目反范式复制名称与颜色；科目之后被删除也不回填，
//     孤儿 subject_id 容忍存在，名称展示为空。
//   - 除 status 外考试/作业共享一套字段；location 仅考试落库。
type AssessmentService interface {
	// GetUpcoming 获取 7 天窗口内的评估快照（已排序过滤，含 D-day 标签）
	GetUpcoming(ctx context.Context, userID, baseKey string, filter planner.Filter) (*dto.UpcomingAssessmentsResponse, error)
	Create(ctx context.Context, req *dto.SaveAssessmentRequest, userID string) (*dto.AssessmentResponse, error)
	// Update 全字段覆盖写
	Update(ctx context.Context, id string, req *dto.SaveAssessmentRequest, userID string) (*dto.AssessmentResponse, error)
	Delete(ctx context.Context, id, userID string) error
	Watch(userID string) *watch.Subscription
}

type assessmentService struct {
	repo     *repository.Repository
	hub      *watch.Hub
	notifier *changeNotifier
	logger   *zap.Logger
}

// NewAssessmentService 创建 AssessmentService 实例
func NewAssessmentService(repo *repository.Repository, hub *watch.Hub, notifier *changeNotifier, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, hub: hub, notifier: notifier, logger: logger}
}

func (s *assessmentService) GetUpcoming(ctx context.Context, userID, baseKey string, filter planner.Filter) (*dto.UpcomingAssessmentsResponse, error) {
	if filter == "" {
		filter = planner.FilterAll
	}
	if !planner.ValidFilter(filter) {
		return nil, ErrAssessmentBadFilter
	}

	base, err := resolveRefDate(baseKey)
	if err != nil {
		return nil, ErrBadDateKey
	}

	startKey, endKey := planner.UpcomingRange(base)

	items, err := s.repo.Assessment.ListByDateRange(ctx, userID, startKey, endKey)
	if err != nil {
		s.logger.Error("查询评估失败", zap.Error(err))
		return nil, err
	}

	visible := planner.FilterAssessments(planner.SortAssessments(items), filter)

	list := make([]dto.AssessmentResponse, 0, len(visible))
	for _, it := range visible {
		list = append(list, toAssessmentResponse(it, startKey))
	}

	return &dto.UpcomingAssessmentsResponse{
		BaseDateKey: startKey,
		RangeEndKey: endKey,
		Filter:      string(filter),
		Items:       list,
	}, nil
}

func (s *assessmentService) Create(ctx context.Context, req *dto.SaveAssessmentRequest, userID string) (*dto.AssessmentResponse, error) {
	a := &model.Assessment{UserID: userID}
	if err := s.applyRequest(ctx, a, req, userID); err != nil {
		return nil, err
	}

	if err := s.repo.Assessment.Create(ctx, a); err != nil {
		s.logger.Error("创建评估失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionAssessments)

	resp := toAssessmentResponse(*a, planner.FormatDateKey(time.Now()))
	return &resp, nil
}

func (s *assessmentService) Update(ctx context.Context, id string, req *dto.SaveAssessmentRequest, userID string) (*dto.AssessmentResponse, error) {
	a, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// 全字段覆盖
	if err := s.applyRequest(ctx, a, req, userID); err != nil {
		return nil, err
	}

	if err := s.repo.Assessment.Update(ctx, a); err != nil {
		s.logger.Error("更新评估失败", zap.Error(err))
		return nil, err
	}

	s.notifier.notify(ctx, userID, CollectionAssessments)

	resp := toAssessmentResponse(*a, planner.FormatDateKey(time.Now()))
	return &resp, nil
}

func (s *assessmentService) Delete(ctx context.Context, id, userID string) error {
	a, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Assessment.Delete(ctx, a.AssessmentID); err != nil {
		s.logger.Error("删除评估失败", zap.Error(err))
		return err
	}

	s.notifier.notify(ctx, userID, CollectionAssessments)
	return nil
}

func (s *assessmentService) Watch(userID string) *watch.Subscription {
	return s.hub.Subscribe(watch.Topic{UserID: userID, Collection: CollectionAssessments})
}

// applyRequest 把保存请求套到模型上（创建与编辑共用）
func (s *assessmentService) applyRequest(ctx context.Context, a *model.Assessment, req *dto.SaveAssessmentRequest, userID string) error {
	status := req.Status
	if status == "" {
		status = model.DefaultStatus(req.Type)
	}
	if !model.ValidStatus(req.Type, status) {
		return ErrAssessmentBadStatus
	}

	a.Type = req.Type
	a.Title = req.Title
	a.DateKey = req.DateKey
	a.Time = req.Time
	a.Memo = req.Memo
	a.Status = status

	// location 仅考试落库
	if req.Type == model.AssessmentTypeExam {
		a.Location = req.Location
	} else {
		a.Location = ""
	}

	// 科目反范式：保存时复制名称与颜色；查不到所选科目按未关联处理
	a.SubjectID = nil
	a.SubjectName = ""
	a.Color = defaultColor("")
	if req.SubjectID != "" {
		subj, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
		if err == nil && subj.UserID == userID {
			a.SubjectID = &subj.SubjectID
			a.SubjectName = subj.Name
			a.Color = subj.Color
		}
	}

	return nil
}

func (s *assessmentService) getOwned(ctx context.Context, id, userID string) (*model.Assessment, error) {
	a, err := s.repo.Assessment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAssessmentNotOwner
	}
	return a, nil
}

func toAssessmentResponse(a model.Assessment, baseKey string) dto.AssessmentResponse {
	subjectID := ""
	if a.SubjectID != nil {
		subjectID = *a.SubjectID
	}
	return dto.AssessmentResponse{
		ID:          a.AssessmentID,
		Type:        a.Type,
		Title:       a.Title,
		SubjectID:   subjectID,
		SubjectName: a.SubjectName,
		Color:       a.Color,
		DateKey:     a.DateKey,
		Time:        a.Time,
		Location:    a.Location,
		Memo:        a.Memo,
		Status:      a.Status,
		DDayLabel:   planner.DayDeltaLabel(baseKey, a.DateKey),
	}
}
