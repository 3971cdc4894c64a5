package model

// Lesson 课时，通过 lessons_video_link 关联多个视频内容
// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID uint            `gorm:"index;not null" json:"courseId"`
	Course   *Course         `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Title    string          `gorm:"size:250;not null" json:"title"`
	Contents []LessonContent `gorm:"many2many:lessons_video_link" json:"contents"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l Lesson) String() string {
	return l.Title
}

// swagger:model LessonContent
type LessonContent struct {
	BaseModel
	Title     string   `gorm:"size:250" json:"title"`
	VideoLink string   `gorm:"size:500;not null" json:"videoLink"`
	Lessons   []Lesson `gorm:"many2many:lessons_video_link" json:"lessons,omitempty"`
}

func (LessonContent) TableName() string {
	return "lessonsContents"
}

func (c LessonContent) String() string {
	return c.VideoLink
}
