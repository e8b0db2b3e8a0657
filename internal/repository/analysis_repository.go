package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Create(record *model.AIAnalysis) error {
	return r.DB.Create(record).Error
}

func (r *AnalysisRepository) FindLatestByUser(userID uint) (*model.AIAnalysis, error) {
	var record model.AIAnalysis
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	return &record, err
}

func (r *AnalysisRepository) ListByUser(userID uint, limit int) ([]*model.AIAnalysis, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []*model.AIAnalysis
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
