package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/internal/repository"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
	"github.com/eeuunnjjiinn/planner/pkg/redis"
	"github.com/eeuunnjjiinn/planner/pkg/watch"
)

// ── 集合名常量（变更广播主题） ──

const (
	CollectionEvents      = "events"
	CollectionTodos       = "todos"
	CollectionAssessments = "assessments"
	CollectionSubjects    = "subjects"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Event      EventService
	Todo       TodoService
	Assessment AssessmentService
	Subject    SubjectService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	hub *watch.Hub,
	logger *zap.Logger,
) *Service {
	notifier := &changeNotifier{hub: hub, rdb: rdb, logger: logger}

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Event:      NewEventService(repo, hub, notifier, logger),
		Todo:       NewTodoService(repo, hub, notifier, logger),
		Assessment: NewAssessmentService(repo, hub, notifier, logger),
		Subject:    NewSubjectService(repo, hub, notifier, logger),
		Export:     NewExportService(repo, logger),
	}
}

// changeNotifier 写操作完成后的变更广播
// 本进程内直接唤醒 Hub；Redis 可用时同时发布给其他实例。
// 广播失败只记日志：订阅流停止更新即可，不影响写入结果。
type changeNotifier struct {
	hub    *watch.Hub
	rdb    *redis.Client
	logger *zap.Logger
}

func (n *changeNotifier) notify(ctx context.Context, userID, collection string) {
	n.hub.Publish(watch.Topic{UserID: userID, Collection: collection})

	if n.rdb != nil {
		if err := n.rdb.PublishChange(ctx, userID, collection); err != nil {
			n.logger.Warn("变更广播失败",
				zap.String("collection", collection),
				zap.Error(err),
			)
		}
	}
}
