package model

// swagger:model Chapter
type Chapter struct {
	HardModel
	CourseID         uint   `gorm:"not null;index" json:"courseId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Slug             string `gorm:"size:191;uniqueIndex;not null" json:"slug"`
	Content          string `gorm:"type:text" json:"content"`
	EstimatedMinutes *uint  `json:"estimatedMinutes"`
	SortOrder        int    `gorm:"default:0" json:"sortOrder"`
	IsPublished      bool   `gorm:"not null" json:"isPublished"` // 无数据库默认值, false 需随 INSERT 写入

	Attachments []ChapterAttachment `gorm:"foreignKey:ChapterID" json:"attachments,omitempty"`
	Tasks       []Task              `gorm:"foreignKey:ChapterID" json:"tasks,omitempty"`
}

func (Chapter) TableName() string {
	return "course_chapters"
}

// ChapterAttachment 章节附件, 文件本体由存储服务管理
type ChapterAttachment struct {
	HardModel
	ChapterID uint   `gorm:"not null;index" json:"chapterId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Type      string `gorm:"size:20;default:'file'" json:"type"` // file | link | video | pdf | code
	FilePath  string `gorm:"size:255" json:"filePath,omitempty"`
	URL       string `gorm:"size:512" json:"url,omitempty"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`
}

func (ChapterAttachment) TableName() string {
	return "chapter_attachments"
}
