package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type InviteCodeRepository struct {
	DB *gorm.DB
}

func NewInviteCodeRepository(db *gorm.DB) *InviteCodeRepository {
	return &InviteCodeRepository{DB: db}
}

func (r *InviteCodeRepository) Create(code *model.InviteCode) error {
	return r.DB.Create(code).Error
}

func (r *InviteCodeRepository) FindByCode(code string) (*model.InviteCode, error) {
	var ic model.InviteCode
	err := r.DB.Where("code = ?", code).First(&ic).Error
	return &ic, err
}

func (r *InviteCodeRepository) List(page, limit int) ([]*model.InviteCode, int64, error) {
	var total int64
	if err := r.DB.Model(&model.InviteCode{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var codes []*model.InviteCode
	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&codes).Error
	return codes, total, err
}
