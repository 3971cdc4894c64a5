package model

import "time"

// Ratable 可评分对象，评分按 (类型标识, ID) 存储，不依赖外键
type Ratable interface {
	RatableType() string
	RatableID() uint
}

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating 评分汇总
// swagger:model Rating
type Rating struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ContentType string    `gorm:"size:50;not null;uniqueIndex:idx_rating_object" json:"contentType"`
	ObjectID    uint      `gorm:"not null;uniqueIndex:idx_rating_object" json:"objectId"`
	Count       int       `gorm:"default:0" json:"count"`
	Total       int       `gorm:"default:0" json:"total"`
	Average     float64   `gorm:"type:decimal(6,3);default:0" json:"average"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Rating) TableName() string {
	return "ratings"
}

// UserRating 单个用户的评分，同一用户对同一对象只保留一条
type UserRating struct {
	BaseModel
	UserID      uint   `gorm:"not null;uniqueIndex:idx_user_rating" json:"userId"`
	ContentType string `gorm:"size:50;not null;uniqueIndex:idx_user_rating" json:"contentType"`
	ObjectID    uint   `gorm:"not null;uniqueIndex:idx_user_rating" json:"objectId"`
	Score       int    `gorm:"not null" json:"score"`
}

func (UserRating) TableName() string {
	return "user_ratings"
}
