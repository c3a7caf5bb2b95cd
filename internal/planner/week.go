package planner

import "time"

// WeekOf 计算包含 ref 的周（周日起始）：返回周日零点
// 与 locale 无关：任何参考日期归入「不晚于它的那个周日」开始的 7 天
func WeekOf(ref time.Time) time.Time {
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return ref.AddDate(0, 0, -int(ref.Weekday()))
}

// WeekDays 返回包含 ref 的周日至周六共 7 天
func WeekDays(ref time.Time) [7]time.Time {
	start := WeekOf(ref)
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekRange 返回周窗口的 dateKey 边界 [周日, 周六]，两端闭区间
func WeekRange(ref time.Time) (startKey, endKey string) {
	start := WeekOf(ref)
	return FormatDateKey(start), FormatDateKey(start.AddDate(0, 0, 6))
}

// WeekRangeLabel 周标题 "MM-dd ~ MM-dd"
func WeekRangeLabel(ref time.Time) string {
	start := WeekOf(ref)
	end := start.AddDate(0, 0, 6)
	return start.Format("01-02") + " ~ " + end.Format("01-02")
}

// ShiftWeek 将参考日期前后平移 n 周
// 切换周时整个窗口重算，不缓存相邻周
func ShiftWeek(ref time.Time, n int) time.Time {
	return ref.AddDate(0, 0, 7*n)
}
