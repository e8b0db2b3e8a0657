package service

import (
	"errors"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

type WrongQuestionService struct {
	repo *repository.WrongQuestionRepository
}

func NewWrongQuestionService(repo *repository.WrongQuestionRepository) *WrongQuestionService {
	return &WrongQuestionService{repo: repo}
}

func (s *WrongQuestionService) List(userID uint, f repository.WrongQuestionFilter) ([]*model.WrongQuestion, int64, error) {
	return s.repo.List(userID, f)
}

// Get 错题详情，带关联题目
func (s *WrongQuestionService) Get(id, userID uint) (*model.WrongQuestion, error) {
	wq, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWrongQuestionNotFound
		}
		return nil, err
	}
	if wq.UserID != userID {
		return nil, util.ErrWrongQuestionNotFound
	}
	return wq, nil
}

// SetMastered 标记已掌握/取消掌握，掌握时间跟随状态
func (s *WrongQuestionService) SetMastered(id, userID uint, mastered bool) (*model.WrongQuestion, error) {
	wq, err := s.repo.SetMastered(id, userID, mastered, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWrongQuestionNotFound
		}
		return nil, err
	}
	return wq, nil
}

func (s *WrongQuestionService) Delete(id, userID uint) error {
	err := s.repo.Delete(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrWrongQuestionNotFound
	}
	return err
}
