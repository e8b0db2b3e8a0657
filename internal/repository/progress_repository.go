package repository

import (
	"time"

	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserID(userID uint) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

// Apply 单次答题后的增量更新，行不存在则建
func (r *ProgressRepository) Apply(tx *gorm.DB, userID uint, isCorrect bool, now time.Time) error {
	var p model.UserProgress
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		p = model.UserProgress{UserID: userID}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
	}

	updates := map[string]interface{}{
		"total_answered": gorm.Expr("total_answered + 1"),
		"last_practice":  now,
	}
	if isCorrect {
		updates["correct_count"] = gorm.Expr("correct_count + 1")
	} else {
		updates["wrong_count"] = gorm.Expr("wrong_count + 1")
	}
	return tx.Model(&p).Updates(updates).Error
}

// Save 全量覆盖，进度重算用
func (r *ProgressRepository) Save(p *model.UserProgress) error {
	return r.DB.Save(p).Error
}
