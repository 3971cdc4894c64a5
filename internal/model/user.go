package model

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// User 讲师账号，由外部账号服务维护，这里只保留外键需要的字段
// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"size:254" json:"email"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
