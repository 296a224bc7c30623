package model

import (
	"time"

	"gorm.io/datatypes"
)

// TaskSubmission 只追加, 创建后不再修改
type TaskSubmission struct {
	HardModel
	TaskID            uint                      `gorm:"not null;uniqueIndex:idx_task_user_attempt,priority:1" json:"taskId"`
	UserID            uint                      `gorm:"not null;uniqueIndex:idx_task_user_attempt,priority:2;index:idx_user_correct,priority:1" json:"userId"`
	Attempt           int                       `gorm:"not null;default:1;uniqueIndex:idx_task_user_attempt,priority:3" json:"attempt"`
	TextAnswer        *string                   `gorm:"type:text" json:"textAnswer"`
	SelectedOptionIDs datatypes.JSONSlice[uint] `json:"selectedOptionIds"`
	Score             int                       `gorm:"default:0" json:"score"`
	IsCorrect         bool                      `gorm:"default:false;index:idx_user_correct,priority:2" json:"isCorrect"`
	SubmittedAt       time.Time                 `json:"submittedAt"`
}

func (TaskSubmission) TableName() string {
	return "task_submissions"
}
