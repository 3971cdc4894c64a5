package model

import (
	"course_catalog_backend/internal/urls"
	"time"
)

const CourseContentType = "course"

// Course 课程。Slug 首次保存时根据标题生成，Thumbnail 为存储中的相对路径
// swagger:model Course
type Course struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:250;not null" json:"title"`
	Slug         string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	Thumbnail    string    `gorm:"size:100" json:"thumbnail"`
	Price        *float64  `gorm:"type:decimal(12,2)" json:"price"`
	OfferPrice   *float64  `gorm:"type:decimal(12,2)" json:"offerPrice"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`
	Language     string    `gorm:"size:50" json:"language"`
	CategoryID   uint      `gorm:"index;not null" json:"categoryId"`
	Category     *Category `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
	InstructorID uint      `gorm:"index;not null" json:"instructorId"`
	Instructor   *User     `gorm:"constraint:OnDelete:CASCADE" json:"instructor,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

func (c Course) String() string {
	return c.Title
}

func (c *Course) RatableType() string {
	return CourseContentType
}

func (c *Course) RatableID() uint {
	return c.ID
}

// AbsoluteURL 课程详情页地址
func (c *Course) AbsoluteURL() string {
	return urls.MustReverse(urls.CourseDetail, urls.Params{"slug": c.Slug})
}
