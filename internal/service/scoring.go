package service

import (
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"sort"
	"strings"
)

// SubmittedAnswer 学员提交的原始答案
type SubmittedAnswer struct {
	TextAnswer        *string
	SelectedOptionIDs []uint
}

// ValidateSubmission 按题型检查答案结构, 在过滤选项之前执行
func ValidateSubmission(task *model.Task, answer SubmittedAnswer) error {
	switch task.Type {
	case model.TaskSingleChoice, model.TaskTrueFalse:
		if len(answer.SelectedOptionIDs) != 1 {
			return util.NewValidationError("selected_option_ids", "exactly one option must be selected")
		}
	case model.TaskMultipleChoice:
		if len(answer.SelectedOptionIDs) == 0 {
			return util.NewValidationError("selected_option_ids", "at least one option must be selected")
		}
	case model.TaskText:
		if answer.TextAnswer == nil || strings.TrimSpace(*answer.TextAnswer) == "" {
			return util.NewValidationError("text_answer", "text answer is required")
		}
	}
	return nil
}

// FilterOptionIDs 只保留属于该题目的选项ID, 去重并保持提交顺序
func FilterOptionIDs(task *model.Task, ids []uint) []uint {
	valid := make(map[uint]struct{}, len(task.Options))
	for _, opt := range task.Options {
		valid[opt.ID] = struct{}{}
	}

	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EvaluateTask 按题型判分, 无副作用. 选项ID需已经过 FilterOptionIDs
func EvaluateTask(task *model.Task, answer SubmittedAnswer) (bool, int) {
	maxScore := task.MaxScore
	if maxScore <= 0 {
		maxScore = 1
	}

	if task.Type == model.TaskText {
		return false, 0
	}
	selected := answer.SelectedOptionIDs
	if len(selected) == 0 {
		return false, 0
	}

	correct := correctOptionIDs(task)

	var ok bool
	switch task.Type {
	case model.TaskSingleChoice, model.TaskTrueFalse:
		ok = len(selected) == 1 && len(correct) == 1 && selected[0] == correct[0]
	case model.TaskMultipleChoice:
		ok = sameSet(selected, correct)
	default:
		return false, 0
	}

	if !ok {
		return false, 0
	}
	return true, maxScore
}

func correctOptionIDs(task *model.Task) []uint {
	var ids []uint
	for _, opt := range task.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

func sameSet(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]uint(nil), a...)
	y := append([]uint(nil), b...)
	sort.Slice(x, func(i, j int) bool { return x[i] < x[j] })
	sort.Slice(y, func(i, j int) bool { return y[i] < y[j] })
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
