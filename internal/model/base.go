package model

import (
	"time"
)

// BaseModel 目录中的记录均为物理删除，删除后需要同步清理存储中的文件
// swagger:model
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
