package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eeuunnjjiinn/planner/config"
)

// Client Redis 客户端封装
// 用途：Token 黑名单、接口限流、数据变更广播（多实例快照推送）
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 接口限流 ──

// CheckRateLimit 固定窗口限流：窗口内计数超过 limit 时拒绝
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// 首次计数时设置窗口过期
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── 数据变更广播 ──
//
// 写操作完成后向 "changes:<uid>:<collection>" 频道发布一条消息，
// 各实例的 watch.Hub 订阅该模式并唤醒对应的快照订阅。

const changeChannelPrefix = "changes:"

// ChangeChannel 构造某用户某集合的变更频道名
func ChangeChannel(userID, collection string) string {
	return changeChannelPrefix + userID + ":" + collection
}

// PublishChange 发布一条数据变更通知
func (c *Client) PublishChange(ctx context.Context, userID, collection string) error {
	return c.rdb.Publish(ctx, ChangeChannel(userID, collection), "1").Err()
}

// SubscribeChanges 订阅所有变更频道，返回接收频道名的通道与取消函数
// 取消后通道关闭，消费 goroutine 退出
func (c *Client) SubscribeChanges(ctx context.Context) (<-chan string, func()) {
	sub := c.rdb.PSubscribe(ctx, changeChannelPrefix+"*")
	out := make(chan string, 64)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Channel:
			default:
				// 消费方阻塞时丢弃通知：订阅方下一次收到通知时
				// 仍会重拉全量快照，不影响最终一致
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
