package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

// ── 课程时间表百分比布局 ──────────────────────────────────
//
// 固定纵轴 8:00–20:00，5 个工作日列。课程块的位置与高度以
// 百分比表达，由前端直接套用为 top/height 样式。
// ─────────────────────────────────────────────────────────────

const (
	// TimetableStartHour / TimetableEndHour 时间表纵轴范围
	TimetableStartHour = 8
	TimetableEndHour   = 20

	// MinBlockHeightPercent 课程块最小高度，避免超短课排成零高度
	MinBlockHeightPercent = 2.0
)

// MinutesOfDay 把 "HH:MM" 转为当日分钟数
func MinutesOfDay(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("非法时间 %q：应为 HH:MM", t)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("非法时间 %q：小时越界", t)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("非法时间 %q：分钟越界", t)
	}
	return hh*60 + mm, nil
}

// ValidTimeRange 校验 end 严格晚于 start（写入前校验，存储不做约束）
func ValidTimeRange(start, end string) bool {
	s, err := MinutesOfDay(start)
	if err != nil {
		return false
	}
	e, err := MinutesOfDay(end)
	if err != nil {
		return false
	}
	return e > s
}

// Block 定位后的课程块
type Block struct {
	Subject       model.Subject `json:"subject"`
	Day           int           `json:"day"` // 1=月 … 5=金
	TopPercent    float64       `json:"top_percent"`
	HeightPercent float64       `json:"height_percent"`
}

// PlaceBlock 计算单个课程的百分比位置
// top 钳到 [0,100]，height 钳到 [2,100]
func PlaceBlock(s model.Subject) (Block, error) {
	start, err := MinutesOfDay(s.StartTime)
	if err != nil {
		return Block{}, err
	}
	end, err := MinutesOfDay(s.EndTime)
	if err != nil {
		return Block{}, err
	}

	gridStart := TimetableStartHour * 60
	gridEnd := TimetableEndHour * 60
	span := float64(gridEnd - gridStart)

	top := float64(start-gridStart) / span * 100
	height := float64(end-start) / span * 100

	return Block{
		Subject:       s,
		Day:           s.Day,
		TopPercent:    clampFloat(top, 0, 100),
		HeightPercent: clampFloat(height, MinBlockHeightPercent, 100),
	}, nil
}

// PlaceBlocks 把科目快照映射为按工作日分组的课程块
// day 不在 1-5 或时间字段非法的科目被跳过
func PlaceBlocks(subjects []model.Subject) map[int][]Block {
	blocks := make(map[int][]Block)
	for _, s := range subjects {
		if s.Day < 1 || s.Day > 5 {
			continue
		}
		b, err := PlaceBlock(s)
		if err != nil {
			continue
		}
		blocks[s.Day] = append(blocks[s.Day], b)
	}
	return blocks
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
