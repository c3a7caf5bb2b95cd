package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/eeuunnjjiinn/planner/internal/model"
	"github.com/eeuunnjjiinn/planner/internal/planner"
	"github.com/eeuunnjjiinn/planner/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEvents     = errors.New("该范围内没有日程")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 周历导出为 Excel (.xlsx)：行 = 6:00–20:00 整点，列 = 周日至周六
//   - 日程导出为 iCalendar (.ics)：可导入系统日历应用
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportWeek 导出参考日期所在周的周历为 Excel
	ExportWeek(ctx context.Context, userID, refKey string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出 [startKey, endKey] 范围内的日程为 ICS
	ExportCalendar(ctx context.Context, userID, startKey, endKey string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeek — 导出周历为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：周范围标签（"08-23 ~ 08-29"）
//   - 列头：周日 ~ 周六（含日期）
//   - 行头：整点（6AM … 8PM），与周历网格同一纵轴
//   - 单元格：事件标题；跨行事件在起始行落格并以 "(2h)" 标注时长
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportWeek(ctx context.Context, userID, refKey string) (*bytes.Buffer, string, error) {
	ref, err := resolveRefDate(refKey)
	if err != nil {
		return nil, "", ErrBadDateKey
	}

	startKey, endKey := planner.WeekRange(ref)
	events, err := s.repo.Event.ListByDateRange(ctx, userID, startKey, endKey)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, "", err
	}

	// 索引: "dateKey:hour" → 单元格文本
	cellIndex := make(map[string]string)
	for _, ev := range events {
		key := fmt.Sprintf("%s:%d", ev.DateKey, ev.StartHour)
		text := ev.Title
		if ev.Duration > 1 {
			text = fmt.Sprintf("%s (%dh)", ev.Title, ev.Duration)
		}
		if prev, ok := cellIndex[key]; ok {
			text = prev + "\n" + text
		}
		cellIndex[key] = text
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "周历"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：时间列窄，7 个日期列等宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "H", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("周历 %s", planner.WeekRangeLabel(ref)))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头：周日 ~ 周六
	dayNames := []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
	f.SetCellValue(sheetName, "A2", "时间")
	days := planner.WeekDays(ref)
	for i, d := range days {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetCellValue(sheetName, cell(col, 2), fmt.Sprintf("%s %s", dayNames[i], planner.FormatDateKey(d)[5:]))
	}

	// 数据行：每个整点一行
	row := 3
	for _, hour := range planner.GridHours() {
		f.SetCellValue(sheetName, cell("A", row), planner.HourLabel(hour))
		for i, d := range days {
			key := fmt.Sprintf("%s:%d", planner.FormatDateKey(d), hour)
			if text, ok := cellIndex[key]; ok {
				col, _ := excelize.ColumnNumberToName(2 + i)
				f.SetCellValue(sheetName, cell(col, row), text)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("周历_%s.xlsx", startKey)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — 导出日程为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个事件映射为一个 VEVENT：DTSTART = dateKey + startHour，
// DTEND = DTSTART + duration 小时。范围为空时取当前周。

func (s *exportService) ExportCalendar(ctx context.Context, userID, startKey, endKey string) (*bytes.Buffer, string, error) {
	if startKey == "" || endKey == "" {
		startKey, endKey = planner.WeekRange(time.Now())
	}
	if !planner.ValidDateKey(startKey) || !planner.ValidDateKey(endKey) || startKey > endKey {
		return nil, "", ErrBadDateKey
	}

	events, err := s.repo.Event.ListByDateRange(ctx, userID, startKey, endKey)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, "", err
	}
	if len(events) == 0 {
		return nil, "", ErrExportNoEvents
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//todo-planner//calendar export//ZH")

	now := time.Now().UTC()
	for _, ev := range planner.SortEvents(events) {
		vevent, err := s.buildVEvent(ev, now)
		if err != nil {
			// 日期字段损坏的行跳过，不中断整体导出
			s.logger.Warn("跳过无法导出的日程",
				zap.String("event_id", ev.EventID),
				zap.Error(err),
			)
			continue
		}
		cal.AddVEvent(vevent)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("日程_%s_%s.ics", startKey, endKey)
	return buf, filename, nil
}

func (s *exportService) buildVEvent(ev model.Event, stamp time.Time) (*ics.VEvent, error) {
	day, err := planner.ParseDateKey(ev.DateKey)
	if err != nil {
		return nil, err
	}

	start := day.Add(time.Duration(ev.StartHour) * time.Hour)
	end := start.Add(time.Duration(planner.ClampDuration(ev.Duration)) * time.Hour)

	vevent := ics.NewEvent(ev.EventID)
	vevent.SetDtStampTime(stamp)
	vevent.SetCreatedTime(ev.CreatedAt.UTC())
	vevent.SetStartAt(start)
	vevent.SetEndAt(end)
	vevent.SetSummary(strings.TrimSpace(ev.Title))

	return vevent, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
