package service

import (
	"errors"
	"strings"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"

	"gorm.io/gorm"
)

// PracticeService 答题主流程：判分、记答题流水、维护错题本、
// 推进进度和练习任务，整体一个事务
type PracticeService struct {
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.UserAnswerRepository
	wrongRepo    *repository.WrongQuestionRepository
	progressRepo *repository.ProgressRepository
	taskRepo     *repository.PracticeTaskRepository
	db           *gorm.DB
}

func NewPracticeService(
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.UserAnswerRepository,
	wrongRepo *repository.WrongQuestionRepository,
	progressRepo *repository.ProgressRepository,
	taskRepo *repository.PracticeTaskRepository,
	db *gorm.DB,
) *PracticeService {
	return &PracticeService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		wrongRepo:    wrongRepo,
		progressRepo: progressRepo,
		taskRepo:     taskRepo,
		db:           db,
	}
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type SubmitAnswerResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	WrongCount    int    `json:"wrongCount,omitempty"` // 答错时返回该题累计错误次数
}

// SubmitAnswer 判分按多选题答案字母排序后比较，大小写不敏感
func (s *PracticeService) SubmitAnswer(userID uint, req *SubmitAnswerRequest) (*SubmitAnswerResult, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	isCorrect := answersMatch(req.Answer, question.Answer)
	now := time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.Create(tx, &model.UserAnswer{
			UserID:     userID,
			QuestionID: question.ID,
			UserAnswer: req.Answer,
			IsCorrect:  isCorrect,
			AnsweredAt: now,
		}); err != nil {
			return err
		}

		if !isCorrect {
			if err := s.wrongRepo.Upsert(tx, userID, question, req.Answer, now); err != nil {
				return err
			}
		}

		if err := s.progressRepo.Apply(tx, userID, isCorrect, now); err != nil {
			return err
		}

		return s.taskRepo.AdvanceActive(tx, userID, question.Subject)
	})
	if err != nil {
		return nil, err
	}

	result := &SubmitAnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.Answer,
		Explanation:   question.Explanation,
	}
	if !isCorrect {
		if wq, err := s.wrongRepo.FindByUserAndQuestion(userID, question.ID); err == nil {
			result.WrongCount = wq.WrongCount
		}
	}
	return result, nil
}

// answersMatch 多选题允许 "BA" == "AB"
func answersMatch(userAnswer, correctAnswer string) bool {
	return normalizeAnswer(userAnswer) == normalizeAnswer(correctAnswer)
}

func normalizeAnswer(answer string) string {
	letters := strings.Split(strings.ToUpper(strings.TrimSpace(answer)), "")
	for i := 1; i < len(letters); i++ {
		for j := i; j > 0 && letters[j] < letters[j-1]; j-- {
			letters[j], letters[j-1] = letters[j-1], letters[j]
		}
	}
	return strings.Join(letters, "")
}

type CreatePracticeTaskRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Subject        string `json:"subject" binding:"required"`
	TotalQuestions int    `json:"totalQuestions" binding:"required,min=1"`
}

func (s *PracticeService) CreateTask(userID uint, req *CreatePracticeTaskRequest) (*model.PracticeTask, error) {
	task := &model.PracticeTask{
		UserID:         userID,
		TaskType:       "practice",
		Title:          req.Title,
		Description:    req.Description,
		Subject:        req.Subject,
		TotalQuestions: req.TotalQuestions,
		Status:         model.PracticePending,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PracticeService) ListTasks(userID uint) ([]*model.PracticeTask, error) {
	return s.taskRepo.FindByUserID(userID)
}

// UpdateTaskStatus 手工改任务状态（如放弃任务）
func (s *PracticeService) UpdateTaskStatus(id, userID uint, status model.PracticeTaskStatus) (*model.PracticeTask, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPracticeTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	task.Status = status
	if err := s.taskRepo.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}
