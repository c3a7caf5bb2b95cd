package handler

import (
	"github.com/eeuunnjjiinn/planner/config"
	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/jwt"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Event      *EventHandler
	Todo       *TodoHandler
	Assessment *AssessmentHandler
	Subject    *SubjectHandler
	Export     *ExportHandler
	Watch      *WatchHandler
	Pages      *PagesHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service, jwtMgr *jwt.Manager) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(cfg, svc.Auth),
		Event:      NewEventHandler(svc.Event),
		Todo:       NewTodoHandler(svc.Todo),
		Assessment: NewAssessmentHandler(svc.Assessment),
		Subject:    NewSubjectHandler(svc.Subject),
		Export:     NewExportHandler(svc.Export),
		Watch:      NewWatchHandler(svc),
		Pages:      NewPagesHandler(cfg, jwtMgr),
	}
}
