package model

// swagger:model Category
type Category struct {
	BaseModel
	Name string `gorm:"size:20;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

func (c Category) String() string {
	return c.Name
}
