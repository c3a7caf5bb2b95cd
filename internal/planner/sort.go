package planner

import (
	"sort"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// ── 快照排序 ──────────────────────────────────────────────
//
// 存储层推送的快照视为无序，展示顺序由这里的纯函数统一决定，
// 每次快照全量重排，各视图不得内联自己的比较器。
// 所有函数返回新切片，不修改入参。
// ─────────────────────────────────────────────────────────────

// SortEvents 按 (dateKey 升序, startHour 升序) 排序
func SortEvents(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DateKey != out[j].DateKey {
			return out[i].DateKey < out[j].DateKey
		}
		return out[i].StartHour < out[j].StartHour
	})
	return out
}

// SortAssessments 按 (dateKey 升序, time 升序) 排序，空 time 排最前
// 空串在字符串比较中天然小于任何 "HH:MM"，无需特判
func SortAssessments(items []model.Assessment) []model.Assessment {
	out := make([]model.Assessment, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DateKey != out[j].DateKey {
			return out[i].DateKey < out[j].DateKey
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// SortTodos 按 createdAt 降序排序
// 零值时间戳按 epoch 0 处理，排在所有已落库时间之后——
// 服务端时间戳尚未回填的占位记录应沉底而不是置顶
func SortTodos(todos []model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt.UnixMilli(), out[j].CreatedAt.UnixMilli()
		if out[i].CreatedAt.IsZero() {
			ti = 0
		}
		if out[j].CreatedAt.IsZero() {
			tj = 0
		}
		return ti > tj
	})
	return out
}
