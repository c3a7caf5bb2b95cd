package watch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ── 快照订阅中心 ──────────────────────────────────────────
//
// 职责：把"数据变了"的通知按主题（用户+集合）分发给各个订阅句柄。
// 订阅方收到通知后自行重新执行查询，得到全量快照——与后端文档库
// onSnapshot 的语义一致：每次变更推送完整结果，不做增量 diff。
//
// 设计决策：
//   - 订阅是显式所有权对象：Notify() 通道 + Cancel()，取消后通道关闭，
//     不再收到任何通知，结构上杜绝泄漏的回调监听器。
//   - 同一进程内直接扇出；接入 Redis 时由 Bridge 把其他实例的
//     变更频道转发进来，多实例共用一套推送语义。
//   - 通知通道容量为 1 且发送不阻塞：订阅方处理慢时合并通知，
//     下一次重查仍拿到最新快照。
// ─────────────────────────────────────────────────────────────

// Topic 订阅主题：某用户的某个集合
type Topic struct {
	UserID     string
	Collection string
}

// Subscription 一次订阅的句柄
// 由 Hub.Subscribe 创建；Cancel 后 Notify() 返回的通道关闭
type Subscription struct {
	topic  Topic
	ch     chan struct{}
	cancel func()
	once   sync.Once
}

// Notify 返回通知通道：每收到一个值就应重新执行查询取快照
func (s *Subscription) Notify() <-chan struct{} {
	return s.ch
}

// Topic 返回订阅主题
func (s *Subscription) Topic() Topic {
	return s.topic
}

// Cancel 取消订阅并关闭通知通道，可安全重复调用
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Hub 订阅中心
type Hub struct {
	mu     sync.RWMutex
	subs   map[Topic]map[*Subscription]struct{}
	logger *zap.Logger
}

// NewHub 创建订阅中心
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[Topic]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe 订阅某主题，返回订阅句柄
func (h *Hub) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan struct{}, 1),
	}
	sub.cancel = func() {
		h.mu.Lock()
		if set, ok := h.subs[topic]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, topic)
			}
		}
		h.mu.Unlock()
		close(sub.ch)
	}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish 向主题的所有订阅者发出变更通知
func (h *Hub) Publish(topic Topic) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[topic] {
		select {
		case sub.ch <- struct{}{}:
		default:
			// 已有待处理通知，合并
		}
	}
}

// SubscriberCount 返回主题当前订阅数（测试与指标用）
func (h *Hub) SubscriberCount(topic Topic) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Bridge 把外部变更流（如 Redis PSubscribe）接入 Hub
// channels 中的每个频道名形如 "changes:<uid>:<collection>"
func (h *Hub) Bridge(ctx context.Context, channels <-chan string) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ch, ok := <-channels:
				if !ok {
					return
				}
				if topic, ok := parseChangeChannel(ch); ok {
					h.Publish(topic)
				}
			}
		}
	}()
}

// parseChangeChannel 解析 "changes:<uid>:<collection>" 频道名
func parseChangeChannel(channel string) (Topic, bool) {
	const prefix = "changes:"
	if len(channel) <= len(prefix) || channel[:len(prefix)] != prefix {
		return Topic{}, false
	}
	rest := channel[len(prefix):]
	for i := len(rest) - 1; i >= 0; i-- {
		if rest[i] == ':' {
			return Topic{UserID: rest[:i], Collection: rest[i+1:]}, true
		}
	}
	return Topic{}, false
}
