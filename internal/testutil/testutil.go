package testutil

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/pkg/database"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB 每个测试独立的内存 SQLite 库，单连接保证事务内外看到同一份数据
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(database.Models...); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, username string, role model.UserRole) *model.User {
	tb.Helper()
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, db *gorm.DB, name string) *model.Category {
	tb.Helper()
	c := &model.Category{Name: name}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// SeedCourse 直接写库，不经过生命周期钩子
func SeedCourse(tb testing.TB, ctx context.Context, db *gorm.DB, slug string, categoryID, instructorID uint) *model.Course {
	tb.Helper()
	c := &model.Course{
		Title:        slug,
		Slug:         slug,
		CategoryID:   categoryID,
		InstructorID: instructorID,
	}
	if err := db.WithContext(ctx).Omit("Category", "Instructor").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLessonContent(tb testing.TB, ctx context.Context, db *gorm.DB, link string) *model.LessonContent {
	tb.Helper()
	lc := &model.LessonContent{Title: link, VideoLink: link}
	if err := db.WithContext(ctx).Create(lc).Error; err != nil {
		tb.Fatalf("seed lesson content: %v", err)
	}
	return lc
}

func PtrFloat(v float64) *float64 {
	return &v
}
