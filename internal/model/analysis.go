package model

// AnalysisSource 标记报告来源，前端据此调整文案
type AnalysisSource string

const (
	AnalysisSourceModel    AnalysisSource = "model"    // 大模型生成
	AnalysisSourceFallback AnalysisSource = "fallback" // 本地兜底报告
	AnalysisSourceNoData   AnalysisSource = "no_data"  // 无错题可分析
)

// AIAnalysis 一次错题分析的持久化结果
type AIAnalysis struct {
	BaseModel
	UserID              uint           `gorm:"index;not null" json:"userId"`
	AnalysisType        string         `gorm:"size:50;default:'weakness_analysis'" json:"analysisType"`
	Source              AnalysisSource `gorm:"size:20" json:"source"`
	TotalWrongQuestions int            `json:"totalWrongQuestions"`
	AIResponse          string         `gorm:"type:longtext" json:"aiResponse"` // Markdown 正文
}

func (AIAnalysis) TableName() string {
	return "ai_analysis"
}
