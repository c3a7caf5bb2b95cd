package planner

import (
	"testing"
	"time"

	"github.com/eeuunnjjiinn/planner/internal/model"
)

func TestSortEvents_ByDateThenHour(t *testing.T) {
	// 插入顺序故意打乱：dateKey 较小者必须排前
	events := []model.Event{
		{EventID: "c", DateKey: "2026-08-29", StartHour: 9},
		{EventID: "a", DateKey: "2026-08-28", StartHour: 14},
		{EventID: "b", DateKey: "2026-08-28", StartHour: 6},
	}

	got := SortEvents(events)

	wantOrder := []string{"b", "a", "c"}
	for i, id := range wantOrder {
		if got[i].EventID != id {
			t.Errorf("位置%d期望 %s，实际=%s", i, id, got[i].EventID)
		}
	}
	// 入参不被修改
	if events[0].EventID != "c" {
		t.Error("SortEvents 不应原地修改入参")
	}
}

func TestSortAssessments_EmptyTimeFirst(t *testing.T) {
	items := []model.Assessment{
		{AssessmentID: "late", DateKey: "2026-09-01", Time: "13:30"},
		{AssessmentID: "none", DateKey: "2026-09-01", Time: ""},
		{AssessmentID: "early", DateKey: "2026-09-01", Time: "09:00"},
		{AssessmentID: "prev", DateKey: "2026-08-30", Time: "23:00"},
	}

	got := SortAssessments(items)

	wantOrder := []string{"prev", "none", "early", "late"}
	for i, id := range wantOrder {
		if got[i].AssessmentID != id {
			t.Errorf("位置%d期望 %s，实际=%s", i, id, got[i].AssessmentID)
		}
	}
}

func TestSortTodos_NewestFirstZeroLast(t *testing.T) {
	now := time.Now()
	todos := []model.Todo{
		{TodoID: "old", CreatedAt: now.Add(-time.Hour)},
		{TodoID: "pending", CreatedAt: time.Time{}}, // 服务端时间戳未回填
		{TodoID: "new", CreatedAt: now},
	}

	got := SortTodos(todos)

	wantOrder := []string{"new", "old", "pending"}
	for i, id := range wantOrder {
		if got[i].TodoID != id {
			t.Errorf("位置%d期望 %s，实际=%s", i, id, got[i].TodoID)
		}
	}
}

func TestFilterAssessments_Pending(t *testing.T) {
	// pending：考试 done 被排除，作业 in_progress 保留
	items := []model.Assessment{
		{AssessmentID: "exam-done", Type: model.AssessmentTypeExam, Status: model.StatusDone},
		{AssessmentID: "asg-open", Type: model.AssessmentTypeAssignment, Status: model.StatusInProgress},
	}

	got := FilterAssessments(items, FilterPending)
	if len(got) != 1 || got[0].AssessmentID != "asg-open" {
		t.Fatalf("pending 过滤期望仅 asg-open，实际=%+v", got)
	}
}

func TestFilterAssessments_ByType(t *testing.T) {
	items := []model.Assessment{
		{AssessmentID: "e", Type: model.AssessmentTypeExam, Status: model.StatusPreparing},
		{AssessmentID: "a", Type: model.AssessmentTypeAssignment, Status: model.StatusSubmitted},
	}

	if got := FilterAssessments(items, FilterExam); len(got) != 1 || got[0].AssessmentID != "e" {
		t.Errorf("exam 过滤错误: %+v", got)
	}
	if got := FilterAssessments(items, FilterAssignment); len(got) != 1 || got[0].AssessmentID != "a" {
		t.Errorf("assignment 过滤错误: %+v", got)
	}
	if got := FilterAssessments(items, FilterAll); len(got) != 2 {
		t.Errorf("all 不应过滤: %+v", got)
	}
}

func TestFilterAssessments_PendingExamPreparing(t *testing.T) {
	items := []model.Assessment{
		{AssessmentID: "e", Type: model.AssessmentTypeExam, Status: model.StatusPreparing},
		{AssessmentID: "a", Type: model.AssessmentTypeAssignment, Status: model.StatusSubmitted},
	}
	got := FilterAssessments(items, FilterPending)
	if len(got) != 1 || got[0].AssessmentID != "e" {
		t.Errorf("preparing 的考试应视为 pending: %+v", got)
	}
}
