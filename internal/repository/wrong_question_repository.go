package repository

import (
	"time"

	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type WrongQuestionRepository struct {
	DB *gorm.DB
}

func NewWrongQuestionRepository(db *gorm.DB) *WrongQuestionRepository {
	return &WrongQuestionRepository{DB: db}
}

func (r *WrongQuestionRepository) FindByID(id uint) (*model.WrongQuestion, error) {
	var wq model.WrongQuestion
	err := r.DB.Preload("Question").First(&wq, id).Error
	return &wq, err
}

func (r *WrongQuestionRepository) FindByUserAndQuestion(userID, questionID uint) (*model.WrongQuestion, error) {
	var wq model.WrongQuestion
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&wq).Error
	return &wq, err
}

type WrongQuestionFilter struct {
	Subject      string
	QuestionType string
	IsMastered   *bool
	Page         int
	Limit        int
}

// List 按最近答错时间倒序分页
func (r *WrongQuestionRepository) List(userID uint, f WrongQuestionFilter) ([]*model.WrongQuestion, int64, error) {
	query := r.DB.Model(&model.WrongQuestion{}).Where("user_id = ?", userID)

	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.QuestionType != "" {
		query = query.Where("question_type = ?", f.QuestionType)
	}
	if f.IsMastered != nil {
		query = query.Where("is_mastered = ?", *f.IsMastered)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var items []*model.WrongQuestion
	err := query.Preload("Question").
		Order("last_wrong_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// FindForAnalysis 取未掌握的错题给分析流水线，最近的在前，封顶 limit 条
func (r *WrongQuestionRepository) FindForAnalysis(userID uint, limit int) ([]model.WrongQuestion, error) {
	var items []model.WrongQuestion
	err := r.DB.Preload("Question").
		Where("user_id = ? AND is_mastered = ?", userID, false).
		Order("last_wrong_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// Upsert 已有记录则错误次数+1并刷新答案与时间，否则新建
func (r *WrongQuestionRepository) Upsert(tx *gorm.DB, userID uint, q *model.Question, userAnswer string, now time.Time) error {
	var wq model.WrongQuestion
	err := tx.Where("user_id = ? AND question_id = ?", userID, q.ID).First(&wq).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		wq = model.WrongQuestion{
			UserID:        userID,
			QuestionID:    q.ID,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.Answer,
			QuestionType:  q.QuestionType,
			Subject:       q.Subject,
			Difficulty:    q.Difficulty,
			WrongCount:    1,
			FirstWrongAt:  now,
			LastWrongAt:   now,
		}
		return tx.Create(&wq).Error
	}

	return tx.Model(&wq).Updates(map[string]interface{}{
		"user_answer":   userAnswer,
		"wrong_count":   gorm.Expr("wrong_count + 1"),
		"is_mastered":   false,
		"mastered_at":   nil,
		"last_wrong_at": now,
	}).Error
}

func (r *WrongQuestionRepository) SetMastered(id, userID uint, mastered bool, now time.Time) (*model.WrongQuestion, error) {
	var wq model.WrongQuestion
	if err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&wq).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_mastered": mastered}
	if mastered {
		updates["mastered_at"] = now
	} else {
		updates["mastered_at"] = nil
	}

	if err := r.DB.Model(&wq).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &wq, nil
}

func (r *WrongQuestionRepository) Delete(id, userID uint) error {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.WrongQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WrongQuestionRepository) CountUnmastered(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.WrongQuestion{}).
		Where("user_id = ? AND is_mastered = ?", userID, false).
		Count(&count).Error
	return count, err
}
