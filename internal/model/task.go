package model

type TaskType string

const (
	TaskSingleChoice   TaskType = "single_choice"
	TaskMultipleChoice TaskType = "multiple_choice"
	TaskTrueFalse      TaskType = "true_false"
	TaskText           TaskType = "text"
)

// swagger:model Task
type Task struct {
	HardModel
	ChapterID   uint     `gorm:"not null;index" json:"chapterId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Type        TaskType `gorm:"size:30;default:'single_choice'" json:"type"`
	MaxScore    int      `gorm:"default:1" json:"maxScore"`
	IsRequired  bool     `gorm:"not null" json:"isRequired"`
	SortOrder   int      `gorm:"default:0" json:"sortOrder"`

	Options []TaskOption `gorm:"foreignKey:TaskID" json:"options,omitempty"`
}

func (Task) TableName() string {
	return "chapter_tasks"
}

// swagger:model TaskOption
type TaskOption struct {
	HardModel
	TaskID    uint   `gorm:"not null;index" json:"taskId"`
	Text      string `gorm:"type:text;not null" json:"text"`
	IsCorrect bool   `gorm:"default:false" json:"isCorrect"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

func (TaskOption) TableName() string {
	return "task_options"
}
