package database

import (
	"course_catalog_backend/internal/config"
	"course_catalog_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 参与迁移的全部表，顺序即建表顺序
var Models = []interface{}{
	&model.User{},
	&model.Category{},
	&model.Course{},
	&model.LessonContent{},
	&model.Lesson{},
	&model.Rating{},
	&model.UserRating{},
}

var defaultCategories = []string{
	"Programming",
	"Design",
	"Business",
	"Marketing",
	"Photography",
	"Music",
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}

// SeedDefaultValues 分类表为空时插入默认分类
func SeedDefaultValues(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]model.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		categories = append(categories, model.Category{Name: name})
	}
	return db.Create(&categories).Error
}
