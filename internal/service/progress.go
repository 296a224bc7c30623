package service

// CourseProgress 课程完成度
type CourseProgress struct {
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	ProgressPercent int `json:"progressPercent"`
}

func (p CourseProgress) IsComplete() bool {
	return p.TotalTasks > 0 && p.ProgressPercent == 100
}

// ComputeProgress taskIDs 为课程全部题目, correctTaskIDs 为至少答对一次的题目.
// 百分比四舍五入(0.5 进位), 只有全部完成时才为 100
func ComputeProgress(taskIDs, correctTaskIDs []uint) CourseProgress {
	total := len(taskIDs)
	if total == 0 {
		return CourseProgress{}
	}

	inCourse := make(map[uint]struct{}, total)
	for _, id := range taskIDs {
		inCourse[id] = struct{}{}
	}
	total = len(inCourse)

	done := make(map[uint]struct{}, len(correctTaskIDs))
	for _, id := range correctTaskIDs {
		if _, ok := inCourse[id]; ok {
			done[id] = struct{}{}
		}
	}
	completed := len(done)

	percent := (completed*200 + total) / (2 * total)
	// 99.5% 及以上仍未全部完成时不能显示为 100
	if percent == 100 && completed < total {
		percent = 99
	}

	return CourseProgress{
		TotalTasks:      total,
		CompletedTasks:  completed,
		ProgressPercent: percent,
	}
}
