package model

import "time"

// UserProgress 每用户一行的答题进度聚合，可随时由 user_answers 重算
type UserProgress struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex;not null" json:"userId"`
	TotalAnswered int       `gorm:"default:0" json:"totalAnswered"`
	CorrectCount  int       `gorm:"default:0" json:"correctCount"`
	WrongCount    int       `gorm:"default:0" json:"wrongCount"`
	LastPractice  time.Time `json:"lastPractice"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// Accuracy 正确率，0~100
func (p *UserProgress) Accuracy() float64 {
	if p.TotalAnswered == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.TotalAnswered) * 100
}
