package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eeuunnjjiinn/planner/internal/service"
	"github.com/eeuunnjjiinn/planner/pkg/response"
	"github.com/eeuunnjjiinn/planner/pkg/watch"
)

// heartbeatInterval SSE 心跳间隔，防止中间代理断开空闲连接
const heartbeatInterval = 25 * time.Second

// WatchHandler 变更订阅 HTTP 处理器
//
// 每个集合一条 SSE 流。流上只推"变了"信号（event: change），
// 不带数据：客户端收到信号后重拉对应快照接口。写少读多的
// 个人数据量级下全量重拉比增量 diff 简单且足够便宜。
type WatchHandler struct {
	svc *service.Service
}

// NewWatchHandler 创建 WatchHandler
func NewWatchHandler(svc *service.Service) *WatchHandler {
	return &WatchHandler{svc: svc}
}

// Stream 订阅某集合的变更通知
// GET /api/v1/watch/:collection   (events | todos | assessments | subjects)
func (h *WatchHandler) Stream(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var sub *watch.Subscription
	switch c.Param("collection") {
	case service.CollectionEvents:
		sub = h.svc.Event.Watch(userID)
	case service.CollectionTodos:
		sub = h.svc.Todo.Watch(userID)
	case service.CollectionAssessments:
		sub = h.svc.Assessment.Watch(userID)
	case service.CollectionSubjects:
		sub = h.svc.Subject.Watch(userID)
	default:
		response.BadRequest(c, 17001, "未知的集合名")
		return
	}
	// 客户端断开即取消订阅，Hub 中不留悬挂条目
	defer sub.Cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	collection := sub.Topic().Collection

	// 连接建立即推一次，让客户端立刻拉首个快照
	writeChangeEvent(c, collection)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case _, open := <-sub.Notify():
			if !open {
				return
			}
			writeChangeEvent(c, collection)
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		}
	}
}

func writeChangeEvent(c *gin.Context, collection string) {
	fmt.Fprintf(c.Writer, "event: change\ndata: %s\n\n", collection)
	c.Writer.Flush()
}
