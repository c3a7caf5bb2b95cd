package planner

import (
	"fmt"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// ── 周历网格布局 ──────────────────────────────────────────
//
// 7 个日列 × 15 个小时行（6 时到 20 时）。事件归属于
// (dateKey, startHour) 对应的单元格，跨小时不拆分：渲染高度按
// duration 拉伸并盖住下方单元格。同格多事件按相遇顺序堆叠，
// 不做避让——这是接受的限制而非缺陷。
// ─────────────────────────────────────────────────────────────

const (
	// GridStartHour / GridEndHour 周历可见小时范围（含两端）
	GridStartHour = 6
	GridEndHour   = 20

	// CellHeight 单元格高度与事件块上下留白（像素）
	// 必须与前端样式的 .cell 高度保持一致
	CellHeight     = 60
	EventTopGap    = 6
	EventBottomGap = 6

	// MinDuration / MaxDuration 事件时长钳制范围（小时）
	MinDuration = 1
	MaxDuration = 12
)

// GridHours 返回可见小时序列 6..20
func GridHours() []int {
	hours := make([]int, 0, GridEndHour-GridStartHour+1)
	for h := GridStartHour; h <= GridEndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// ClampDuration 将时长钳制到 [1,12]
// 只在创建时钳制；存储层不做二次约束
func ClampDuration(d int) int {
	if d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return d
}

// EventHeightPx 事件块渲染高度：duration*cellHeight − 上下留白
func EventHeightPx(duration int) int {
	if duration < MinDuration {
		duration = MinDuration
	}
	return duration*CellHeight - EventTopGap - EventBottomGap
}

// HourLabel 12 小时制小时标签：0→12AM, 13→1PM
func HourLabel(h int) string {
	switch {
	case h == 0:
		return "12AM"
	case h < 12:
		return fmt.Sprintf("%dAM", h)
	case h == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", h-12)
	}
}

// CellKey 单元格标识
type CellKey struct {
	DateKey   string `json:"date_key"`
	StartHour int    `json:"start_hour"`
}

// PlacedEvent 定位后的事件块
type PlacedEvent struct {
	Event     model.Event `json:"event"`
	DayIndex  int         `json:"day_index"` // 0=周日 … 6=周六
	HeightPx  int         `json:"height_px"`
	TimeLabel string      `json:"time_label"` // 如 "2PM – 4PM"
}

// PlaceEvents 把一周事件映射为按单元格分组的定位块
//
// 输入视为无序快照；输出 map 的每个值内部保持排序后的相遇顺序。
// dateKey 不在本周窗口内的事件被丢弃（防御快照与窗口切换竞争）。
func PlaceEvents(events []model.Event, weekStartKey string) map[CellKey][]PlacedEvent {
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		key, err := AddDaysKey(weekStartKey, i)
		if err != nil {
			return nil
		}
		dayIndex[key] = i
	}

	placed := make(map[CellKey][]PlacedEvent)
	for _, ev := range SortEvents(events) {
		idx, ok := dayIndex[ev.DateKey]
		if !ok {
			continue
		}
		dur := ev.Duration
		if dur < MinDuration {
			dur = MinDuration
		}
		cell := CellKey{DateKey: ev.DateKey, StartHour: ev.StartHour}
		placed[cell] = append(placed[cell], PlacedEvent{
			Event:     ev,
			DayIndex:  idx,
			HeightPx:  EventHeightPx(dur),
			TimeLabel: HourLabel(ev.StartHour) + " – " + HourLabel(ev.StartHour+dur),
		})
	}
	return placed
}
