package planner

import "github.com/eeuunnjjiinn/planner/internal/model"

// Filter 评估面板的过滤档位
type Filter string

const (
	FilterAll        Filter = "all"
	FilterExam       Filter = "exam"
	FilterAssignment Filter = "assignment"
	FilterPending    Filter = "pending"
)

// ValidFilter 校验过滤档位
func ValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterExam, FilterAssignment, FilterPending:
		return true
	}
	return false
}

// FilterAssessments 按档位过滤评估快照，返回新切片
//   - all：不过滤
//   - exam / assignment：按类型
//   - pending：未到终结状态（考试 ≠ done，作业 ≠ submitted）
func FilterAssessments(items []model.Assessment, f Filter) []model.Assessment {
	if f == FilterAll || f == "" {
		out := make([]model.Assessment, len(items))
		copy(out, items)
		return out
	}

	out := make([]model.Assessment, 0, len(items))
	for i := range items {
		it := items[i]
		switch f {
		case FilterExam:
			if it.Type == model.AssessmentTypeExam {
				out = append(out, it)
			}
		case FilterAssignment:
			if it.Type == model.AssessmentTypeAssignment {
				out = append(out, it)
			}
		case FilterPending:
			if it.Pending() {
				out = append(out, it)
			}
		}
	}
	return out
}
