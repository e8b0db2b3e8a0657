package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

// ExistsDuplicate 题干+答案相同视为重复题
func (r *QuestionRepository) ExistsDuplicate(question, answer string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("question = ? AND answer = ?", question, answer).
		Count(&count).Error
	return count > 0, err
}

type QuestionFilter struct {
	Subject         string
	Difficulty      string
	Random          bool
	ExcludeAnswered bool
	UserID          uint
	Limit           int
}

// List 练习取题。ExcludeAnswered 时排除该用户已答过的题目
func (r *QuestionRepository) List(f QuestionFilter) ([]*model.Question, error) {
	query := r.DB.Model(&model.Question{})

	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.ExcludeAnswered && f.UserID != 0 {
		answered := r.DB.Model(&model.UserAnswer{}).
			Select("question_id").
			Where("user_id = ?", f.UserID)
		query = query.Where("id NOT IN (?)", answered)
	}

	if f.Random {
		query = query.Order("RAND()")
	} else {
		query = query.Order("id")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var questions []*model.Question
	err := query.Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountBySubject(subject string) (int64, error) {
	var count int64
	query := r.DB.Model(&model.Question{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	err := query.Count(&count).Error
	return count, err
}
