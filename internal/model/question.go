package model

// Subject 科目代码（与题库导入数据一致，直接存中文）
const (
	SubjectPedagogy   = "教育学"
	SubjectPsychology = "教育心理学"
	SubjectEthics     = "职业道德"
	SubjectLaw        = "教育法律法规"
)

// QuestionType 题型代码
type QuestionType string

const (
	SingleChoice   QuestionType = "singleChoice"
	MultipleChoice QuestionType = "multipleChoice"
	TrueOrFalse    QuestionType = "trueOrFalse"
	CaseStudy      QuestionType = "caseStudy"
)

// Difficulty 难度代码
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question 题库题目。Options 存 JSON 对象文本（键为选项字母），
// 渲染时按原始键序解码，不能转成 Go map 后再遍历。
type Question struct {
	BaseModel
	Question     string       `gorm:"type:text;not null" json:"question"`
	Options      string       `gorm:"type:text" json:"options"` // JSON: {"A":"...","B":"..."}
	Answer       string       `gorm:"size:50;not null" json:"answer"`
	QuestionType QuestionType `gorm:"size:30;index;default:'singleChoice'" json:"questionType"`
	Subject      string       `gorm:"size:50;index" json:"subject"`
	Difficulty   Difficulty   `gorm:"size:10;index" json:"difficulty"`
	Explanation  string       `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
