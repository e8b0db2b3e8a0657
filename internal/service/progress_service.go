package service

import (
	"errors"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"

	"gorm.io/gorm"
)

type ProgressService struct {
	progressRepo *repository.ProgressRepository
	answerRepo   *repository.UserAnswerRepository
	wrongRepo    *repository.WrongQuestionRepository
	questionRepo *repository.QuestionRepository
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	answerRepo *repository.UserAnswerRepository,
	wrongRepo *repository.WrongQuestionRepository,
	questionRepo *repository.QuestionRepository,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		answerRepo:   answerRepo,
		wrongRepo:    wrongRepo,
		questionRepo: questionRepo,
	}
}

type ProgressOverview struct {
	TotalAnswered   int     `json:"totalAnswered"`
	CorrectCount    int     `json:"correctCount"`
	WrongCount      int     `json:"wrongCount"`
	Accuracy        float64 `json:"accuracy"`
	UnmasteredWrong int64   `json:"unmasteredWrong"`
	TotalQuestions  int64   `json:"totalQuestions"`
	LastPractice    string  `json:"lastPractice,omitempty"`
}

// GetOverview 进度总览，附带未掌握错题数
func (s *ProgressService) GetOverview(userID uint) (*ProgressOverview, error) {
	p, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = &model.UserProgress{UserID: userID}
	}

	unmastered, err := s.wrongRepo.CountUnmastered(userID)
	if err != nil {
		return nil, err
	}

	totalQuestions, err := s.questionRepo.CountBySubject("")
	if err != nil {
		return nil, err
	}

	overview := &ProgressOverview{
		TotalAnswered:   p.TotalAnswered,
		CorrectCount:    p.CorrectCount,
		WrongCount:      p.WrongCount,
		Accuracy:        p.Accuracy(),
		UnmasteredWrong: unmastered,
		TotalQuestions:  totalQuestions,
	}
	if !p.LastPractice.IsZero() {
		overview.LastPractice = p.LastPractice.Format("2006-01-02 15:04:05")
	}
	return overview, nil
}

// Sync 按答题流水重算进度，修正增量统计漂移
func (s *ProgressService) Sync(userID uint) (*model.UserProgress, error) {
	total, correct, err := s.answerRepo.Totals(userID)
	if err != nil {
		return nil, err
	}

	p, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = &model.UserProgress{UserID: userID}
	}

	p.TotalAnswered = int(total)
	p.CorrectCount = int(correct)
	p.WrongCount = int(total - correct)
	if err := s.progressRepo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}
