package model

type PracticeTaskStatus string

const (
	PracticePending    PracticeTaskStatus = "pending"
	PracticeInProgress PracticeTaskStatus = "in_progress"
	PracticeCompleted  PracticeTaskStatus = "completed"
)

// PracticeTask 练习任务（按科目刷 N 道题），提交答案时推进进度
type PracticeTask struct {
	BaseModel
	UserID             uint               `gorm:"index;not null" json:"userId"`
	TaskType           string             `gorm:"size:30;default:'practice'" json:"taskType"`
	Title              string             `gorm:"size:255;not null" json:"title"`
	Description        string             `gorm:"type:text" json:"description,omitempty"`
	Subject            string             `gorm:"size:50;index" json:"subject"`
	TotalQuestions     int                `gorm:"default:0" json:"totalQuestions"`
	CompletedQuestions int                `gorm:"default:0" json:"completedQuestions"`
	Status             PracticeTaskStatus `gorm:"size:20;index;default:'pending'" json:"status"`
}

func (PracticeTask) TableName() string {
	return "practice_tasks"
}
