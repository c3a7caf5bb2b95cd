package planner

import (
	"fmt"
	"time"
)

// ── dateKey 工具 ──────────────────────────────────────────
//
// dateKey 是 yyyy-MM-dd 的零填充文本，同时承担展示与存储键两个角色。
// 字符串比较必须等价于时间先后比较——范围查询（>= / <=）依赖这一点，
// 所以格式固定且与 locale 无关。
// ─────────────────────────────────────────────────────────────

// DateKeyLayout dateKey 的固定格式
const DateKeyLayout = "2006-01-02"

// FormatDateKey 将日期格式化为 dateKey
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey 解析 dateKey，非法格式返回错误
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("非法 dateKey %q: %w", key, err)
	}
	return t, nil
}

// ValidDateKey 校验 dateKey 格式
func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// AddDaysKey 对 dateKey 做天数偏移
func AddDaysKey(key string, days int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t.AddDate(0, 0, days)), nil
}

// UpcomingRange 计算「即将到来」窗口：[base, base+7天]，两端闭区间
func UpcomingRange(base time.Time) (startKey, endKey string) {
	return FormatDateKey(base), FormatDateKey(base.AddDate(0, 0, 7))
}

// DayDelta 计算两个 dateKey 之间的日历天数差（忽略一天内的时刻）
// target 在 base 之后为正
func DayDelta(baseKey, targetKey string) (int, error) {
	base, err := ParseDateKey(baseKey)
	if err != nil {
		return 0, err
	}
	target, err := ParseDateKey(targetKey)
	if err != nil {
		return 0, err
	}
	// 解析结果都在 UTC 零点，直接按小时数折算
	return int(target.Sub(base).Hours() / 24), nil
}

// DayDeltaLabel 生成 D-day 标签：同日 "D-day"，n 天后 "D-n"
// dateKey 非法时返回空串（与原始视图展示空白一致）
func DayDeltaLabel(baseKey, targetKey string) string {
	dd, err := DayDelta(baseKey, targetKey)
	if err != nil {
		return ""
	}
	if dd == 0 {
		return "D-day"
	}
	return fmt.Sprintf("D-%d", dd)
}
