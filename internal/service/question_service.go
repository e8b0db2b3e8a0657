package service

import (
	"encoding/json"
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{repo: repo}
}

type CreateQuestionRequest struct {
	Question     string            `json:"question" binding:"required"`
	Options      map[string]string `json:"options" binding:"required"`
	Answer       string            `json:"answer" binding:"required"`
	QuestionType model.QuestionType `json:"questionType"`
	Subject      string            `json:"subject" binding:"required"`
	Difficulty   model.Difficulty  `json:"difficulty"`
	Explanation  string            `json:"explanation"`
}

// CreateQuestion 入库前查重（题干+答案），重复返回 ErrDuplicateQuestion
func (s *QuestionService) CreateQuestion(req *CreateQuestionRequest) (*model.Question, error) {
	exists, err := s.repo.ExistsDuplicate(req.Question, req.Answer)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateQuestion
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = model.SingleChoice
	}

	q := &model.Question{
		Question:     req.Question,
		Options:      string(optionsJSON),
		Answer:       req.Answer,
		QuestionType: questionType,
		Subject:      req.Subject,
		Difficulty:   req.Difficulty,
		Explanation:  req.Explanation,
	}
	if err := s.repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) ListQuestions(f repository.QuestionFilter) ([]*model.Question, error) {
	return s.repo.List(f)
}
