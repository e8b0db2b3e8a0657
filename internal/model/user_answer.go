package model

import "time"

// UserAnswer 一次答题记录，进度统计的数据源
type UserAnswer struct {
	BaseModel
	UserID     uint      `gorm:"index;not null" json:"userId"`
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	UserAnswer string    `gorm:"size:50" json:"userAnswer"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `gorm:"index" json:"answeredAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
