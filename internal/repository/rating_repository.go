package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Rate 写入或覆盖用户评分，并在同一事务内重新计算汇总
func (r *RatingRepository) Rate(ctx context.Context, userID uint, target model.Ratable, score int) (*model.Rating, error) {
	var aggregate model.Rating
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ur model.UserRating
		err := tx.Where("user_id = ? AND content_type = ? AND object_id = ?", userID, target.RatableType(), target.RatableID()).
			First(&ur).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ur = model.UserRating{
				UserID:      userID,
				ContentType: target.RatableType(),
				ObjectID:    target.RatableID(),
				Score:       score,
			}
			if err := tx.Create(&ur).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&ur).Update("score", score).Error; err != nil {
				return err
			}
		}

		var stats struct {
			Count int
			Total int
		}
		if err := tx.Model(&model.UserRating{}).
			Select("COUNT(*) AS count, COALESCE(SUM(score), 0) AS total").
			Where("content_type = ? AND object_id = ?", target.RatableType(), target.RatableID()).
			Scan(&stats).Error; err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("content_type = ? AND object_id = ?", target.RatableType(), target.RatableID()).
			First(&aggregate).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		aggregate.ContentType = target.RatableType()
		aggregate.ObjectID = target.RatableID()
		aggregate.Count = stats.Count
		aggregate.Total = stats.Total
		aggregate.Average = 0
		if stats.Count > 0 {
			aggregate.Average = float64(stats.Total) / float64(stats.Count)
		}
		return tx.Save(&aggregate).Error
	})
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

// FindAggregate 没有评分时返回空汇总
func (r *RatingRepository) FindAggregate(ctx context.Context, target model.Ratable) (*model.Rating, error) {
	var aggregate model.Rating
	err := r.DB.WithContext(ctx).
		Where("content_type = ? AND object_id = ?", target.RatableType(), target.RatableID()).
		First(&aggregate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.Rating{ContentType: target.RatableType(), ObjectID: target.RatableID()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

func (r *RatingRepository) FindUserScore(ctx context.Context, userID uint, target model.Ratable) (int, error) {
	var ur model.UserRating
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND object_id = ?", userID, target.RatableType(), target.RatableID()).
		First(&ur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return ur.Score, err
}

func deleteRatings(tx *gorm.DB, contentType string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("content_type = ? AND object_id IN ?", contentType, ids).Delete(&model.UserRating{}).Error; err != nil {
		return err
	}
	return tx.Where("content_type = ? AND object_id IN ?", contentType, ids).Delete(&model.Rating{}).Error
}
