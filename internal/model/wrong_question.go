package model

import "time"

// WrongQuestion 错题记录：某用户答错某题的事实，带累计错误次数。
// 科目/题型/难度从题目冗余一份，列表筛选不用 JOIN。
type WrongQuestion struct {
	BaseModel
	UserID        uint         `gorm:"index;not null" json:"userId"`
	QuestionID    uint         `gorm:"index;not null" json:"questionId"`
	UserAnswer    string       `gorm:"size:50" json:"userAnswer"`
	CorrectAnswer string       `gorm:"size:50" json:"correctAnswer"`
	QuestionType  QuestionType `gorm:"size:30;index;default:'unknown'" json:"questionType"`
	Subject       string       `gorm:"size:50;index" json:"subject"`
	Difficulty    Difficulty   `gorm:"size:10" json:"difficulty"`
	WrongCount    int          `gorm:"default:1" json:"wrongCount"`
	IsMastered    bool         `gorm:"index;default:false" json:"isMastered"`
	FirstWrongAt  time.Time    `json:"firstWrongAt"`
	LastWrongAt   time.Time    `gorm:"index" json:"lastWrongAt"`
	MasteredAt    *time.Time   `json:"masteredAt,omitempty"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (WrongQuestion) TableName() string {
	return "wrong_questions"
}
