package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/eeuunnjjiinn/planner/internal/model"
	"github.com/eeuunnjjiinn/planner/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	return svc, repo
}

// ── ExportWeek 测试 ──

func TestExportService_ExportWeek_Success(t *testing.T) {
	svc, repo := setupTestExportService()

	_ = repo.Event.Create(context.Background(), &model.Event{
		UserID: "user-1", Title: "算法课", DateKey: "2026-08-24", StartHour: 9, Duration: 2,
	})

	buf, filename, err := svc.ExportWeek(context.Background(), "user-1", "2026-08-26")
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Error("导出的 Excel buffer 不应为空")
	}
	if filename != "周历_2026-08-23.xlsx" {
		t.Errorf("文件名应带周起始日期，实际: %s", filename)
	}
	// Excel .xlsx 文件以 PK (0x504B) 开头
	if buf.Len() > 2 {
		header := buf.Bytes()[:2]
		if header[0] != 0x50 || header[1] != 0x4B {
			t.Error("输出内容不是有效的 xlsx 文件格式（应以 PK 开头）")
		}
	}
}

func TestExportService_ExportWeek_EmptyWeekStillExports(t *testing.T) {
	svc, _ := setupTestExportService()

	// 空周也导出网格骨架
	buf, _, err := svc.ExportWeek(context.Background(), "user-1", "2026-08-26")
	if err != nil {
		t.Fatalf("空周 ExportWeek 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Error("空周也应导出表头与时间轴")
	}
}

func TestExportService_ExportWeek_BadRefDate(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportWeek(context.Background(), "user-1", "26.08.2026")
	if !errors.Is(err, ErrBadDateKey) {
		t.Errorf("期望 ErrBadDateKey，实际: %v", err)
	}
}

// ── ExportCalendar 测试 ──

func TestExportService_ExportCalendar_Success(t *testing.T) {
	svc, repo := setupTestExportService()

	_ = repo.Event.Create(context.Background(), &model.Event{
		UserID: "user-1", Title: "毕设答辩", DateKey: "2026-08-25", StartHour: 14, Duration: 2,
	})

	buf, filename, err := svc.ExportCalendar(context.Background(), "user-1", "2026-08-23", "2026-08-29")
	if err != nil {
		t.Fatalf("ExportCalendar 应成功: %v", err)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "END:VCALENDAR") {
		t.Error("输出应是完整的 VCALENDAR")
	}
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("输出应包含 VEVENT")
	}
	if !strings.Contains(content, "毕设答辩") {
		t.Error("事件标题应出现在 SUMMARY 中")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾，实际: %s", filename)
	}
}

func TestExportService_ExportCalendar_NoEvents(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportCalendar(context.Background(), "user-1", "2026-08-23", "2026-08-29")
	if !errors.Is(err, ErrExportNoEvents) {
		t.Errorf("期望 ErrExportNoEvents，实际: %v", err)
	}
}

func TestExportService_ExportCalendar_InvertedRange(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportCalendar(context.Background(), "user-1", "2026-08-29", "2026-08-23")
	if !errors.Is(err, ErrBadDateKey) {
		t.Errorf("期望 ErrBadDateKey，实际: %v", err)
	}
}
