package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type UserAnswerRepository struct {
	DB *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) *UserAnswerRepository {
	return &UserAnswerRepository{DB: db}
}

func (r *UserAnswerRepository) Create(tx *gorm.DB, answer *model.UserAnswer) error {
	return tx.Create(answer).Error
}

// Totals 全量扫一遍答题记录，进度同步用
func (r *UserAnswerRepository) Totals(userID uint) (total int64, correct int64, err error) {
	base := r.DB.Model(&model.UserAnswer{}).Where("user_id = ?", userID)
	if err = base.Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.UserAnswer{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&correct).Error
	return
}
