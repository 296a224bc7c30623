package service

import (
	"elearning_backend/internal/model"
	"elearning_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func option(id uint, correct bool) model.TaskOption {
	o := model.TaskOption{IsCorrect: correct}
	o.ID = id
	return o
}

func taskWith(taskType model.TaskType, maxScore int, options ...model.TaskOption) *model.Task {
	return &model.Task{Type: taskType, MaxScore: maxScore, Options: options}
}

func strPtr(s string) *string { return &s }

func TestEvaluateTask(t *testing.T) {
	multi := taskWith(model.TaskMultipleChoice, 3,
		option(2, true), option(3, false), option(5, true), option(7, true))
	single := taskWith(model.TaskSingleChoice, 2,
		option(1, false), option(3, true), option(4, false))
	trueFalse := taskWith(model.TaskTrueFalse, 1, option(10, true), option(11, false))
	twoCorrect := taskWith(model.TaskSingleChoice, 1, option(1, true), option(2, true))
	noCorrect := taskWith(model.TaskMultipleChoice, 1, option(1, false), option(2, false))

	tests := []struct {
		name      string
		task      *model.Task
		answer    SubmittedAnswer
		wantOK    bool
		wantScore int
	}{
		{"multiple exact set", multi, SubmittedAnswer{SelectedOptionIDs: []uint{2, 5, 7}}, true, 3},
		{"multiple order does not matter", multi, SubmittedAnswer{SelectedOptionIDs: []uint{7, 2, 5}}, true, 3},
		{"multiple subset", multi, SubmittedAnswer{SelectedOptionIDs: []uint{2, 5}}, false, 0},
		{"multiple superset", multi, SubmittedAnswer{SelectedOptionIDs: []uint{2, 3, 5, 7}}, false, 0},
		{"multiple without correct options", noCorrect, SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false, 0},
		{"single correct", single, SubmittedAnswer{SelectedOptionIDs: []uint{3}}, true, 2},
		{"single wrong", single, SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false, 0},
		{"single with extra option", single, SubmittedAnswer{SelectedOptionIDs: []uint{3, 1}}, false, 0},
		{"single with two correct options", twoCorrect, SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false, 0},
		{"true false correct", trueFalse, SubmittedAnswer{SelectedOptionIDs: []uint{10}}, true, 1},
		{"true false wrong", trueFalse, SubmittedAnswer{SelectedOptionIDs: []uint{11}}, false, 0},
		{"empty selection", single, SubmittedAnswer{}, false, 0},
		{"text is never auto graded", taskWith(model.TaskText, 5), SubmittedAnswer{TextAnswer: strPtr("42")}, false, 0},
		{"text ignores options", taskWith(model.TaskText, 5, option(1, true)), SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false, 0},
		{"unknown type", taskWith(model.TaskType("essay"), 5, option(1, true)), SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false, 0},
		{"non positive max score counts as one", taskWith(model.TaskSingleChoice, 0, option(1, true)), SubmittedAnswer{SelectedOptionIDs: []uint{1}}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, score := EvaluateTask(tt.task, tt.answer)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestFilterOptionIDs(t *testing.T) {
	task := taskWith(model.TaskMultipleChoice, 1, option(2, true), option(5, true), option(7, false))

	tests := []struct {
		name string
		in   []uint
		want []uint
	}{
		{"keeps own options in order", []uint{7, 2}, []uint{7, 2}},
		{"drops foreign ids", []uint{2, 99, 5}, []uint{2, 5}},
		{"dedupes", []uint{5, 5, 2, 5}, []uint{5, 2}},
		{"all foreign", []uint{100, 101}, []uint{}},
		{"nil input", nil, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterOptionIDs(task, tt.in))
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name    string
		task    *model.Task
		answer  SubmittedAnswer
		wantErr bool
	}{
		{"single needs one id", taskWith(model.TaskSingleChoice, 1), SubmittedAnswer{SelectedOptionIDs: []uint{1}}, false},
		{"single rejects two ids", taskWith(model.TaskSingleChoice, 1), SubmittedAnswer{SelectedOptionIDs: []uint{1, 2}}, true},
		{"single rejects empty", taskWith(model.TaskSingleChoice, 1), SubmittedAnswer{}, true},
		{"true false rejects empty", taskWith(model.TaskTrueFalse, 1), SubmittedAnswer{}, true},
		{"multiple accepts many", taskWith(model.TaskMultipleChoice, 1), SubmittedAnswer{SelectedOptionIDs: []uint{1, 2, 3}}, false},
		{"multiple rejects empty", taskWith(model.TaskMultipleChoice, 1), SubmittedAnswer{SelectedOptionIDs: []uint{}}, true},
		{"text needs answer", taskWith(model.TaskText, 1), SubmittedAnswer{}, true},
		{"text rejects blank", taskWith(model.TaskText, 1), SubmittedAnswer{TextAnswer: strPtr("   ")}, true},
		{"text accepts answer", taskWith(model.TaskText, 1), SubmittedAnswer{TextAnswer: strPtr("my essay")}, false},
		{"unknown type passes", taskWith(model.TaskType("essay"), 1), SubmittedAnswer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(tt.task, tt.answer)
			if tt.wantErr {
				assert.True(t, util.IsValidationError(err), "want ValidationError, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
