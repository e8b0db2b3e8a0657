package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type PracticeTaskRepository struct {
	DB *gorm.DB
}

func NewPracticeTaskRepository(db *gorm.DB) *PracticeTaskRepository {
	return &PracticeTaskRepository{DB: db}
}

func (r *PracticeTaskRepository) Create(task *model.PracticeTask) error {
	return r.DB.Create(task).Error
}

func (r *PracticeTaskRepository) FindByID(id uint) (*model.PracticeTask, error) {
	var task model.PracticeTask
	err := r.DB.First(&task, id).Error
	return &task, err
}

func (r *PracticeTaskRepository) FindByUserID(userID uint) ([]*model.PracticeTask, error) {
	var tasks []*model.PracticeTask
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *PracticeTaskRepository) Save(task *model.PracticeTask) error {
	return r.DB.Save(task).Error
}

// AdvanceActive 该用户指定科目下进行中的任务进度+1，完成时置状态。
// 没有匹配任务时静默返回，答题不因任务缺失失败。
func (r *PracticeTaskRepository) AdvanceActive(tx *gorm.DB, userID uint, subject string) error {
	var task model.PracticeTask
	err := tx.Where("user_id = ? AND subject = ? AND status IN ?",
		userID, subject, []model.PracticeTaskStatus{model.PracticePending, model.PracticeInProgress}).
		Order("created_at").
		First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	task.CompletedQuestions++
	if task.TotalQuestions > 0 && task.CompletedQuestions >= task.TotalQuestions {
		task.Status = model.PracticeCompleted
	} else {
		task.Status = model.PracticeInProgress
	}
	return tx.Save(&task).Error
}
