package service

import (
	"os"
	"strings"
	"testing"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func wrongQuestion(subject string, qt model.QuestionType, diff model.Difficulty, wrongCount int) model.WrongQuestion {
	return model.WrongQuestion{
		UserAnswer:    "B",
		CorrectAnswer: "A",
		QuestionType:  qt,
		Subject:       subject,
		Difficulty:    diff,
		WrongCount:    wrongCount,
		Question: &model.Question{
			Question: "教育学的研究对象是什么？",
			Options:  `{"A":"教育现象和教育问题","B":"教学方法","C":"学生心理","D":"课程设置"}`,
			Answer:   "A",
		},
	}
}

func TestBuildAnalysisDataAggregates(t *testing.T) {
	records := []model.WrongQuestion{
		wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 2),
		wrongQuestion("教育心理学", model.MultipleChoice, model.DifficultyHard, 1),
		wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 3),
	}

	data := BuildAnalysisData(records)

	require.Equal(t, 3, data.TotalWrongQuestions)
	require.Equal(t, []string{"教育学", "教育心理学"}, data.SubjectOrder)
	require.Equal(t, 2, data.SubjectStats["教育学"].Count)
	require.Equal(t, 5, data.SubjectStats["教育学"].TotalWrongCount)
	require.Equal(t, 1, data.SubjectStats["教育心理学"].Count)

	assert.Equal(t, []string{"easy", "hard"}, data.DifficultyOrder)
	assert.Equal(t, 2, data.DifficultyStats["easy"])
	assert.Equal(t, []string{"singleChoice", "multipleChoice"}, data.TypeOrder)
	assert.Equal(t, 2, data.TypeStats["singleChoice"])
	assert.Len(t, data.Details, 3)

	total := 0
	for _, subject := range data.SubjectOrder {
		total += data.SubjectStats[subject].Count
	}
	assert.Equal(t, len(records), total)
}

func TestBuildAnalysisDataSkipsMissingQuestion(t *testing.T) {
	records := []model.WrongQuestion{
		{Subject: "教育学", Question: nil},
		wrongQuestion("职业道德", model.TrueOrFalse, model.DifficultyMedium, 1),
	}

	data := BuildAnalysisData(records)

	// 总数按输入算，统计只含有效记录
	assert.Equal(t, 2, data.TotalWrongQuestions)
	require.Equal(t, []string{"职业道德"}, data.SubjectOrder)
	require.Len(t, data.Details, 1)
	// 序号沿用输入下标，跳过的记录留下空号
	assert.Contains(t, data.Details[0], "### 错题 2")
}

func TestBuildAnalysisDataSentinels(t *testing.T) {
	records := []model.WrongQuestion{
		{
			WrongCount: 0,
			Question:   &model.Question{},
		},
	}

	data := BuildAnalysisData(records)

	require.Equal(t, []string{"未知科目"}, data.SubjectOrder)
	assert.Equal(t, []string{"未知难度"}, data.DifficultyOrder)
	assert.Equal(t, []string{"unknown"}, data.TypeOrder)
	// 错误次数至少记 1
	assert.Equal(t, 1, data.SubjectStats["未知科目"].TotalWrongCount)

	require.Len(t, data.Details, 1)
	detail := data.Details[0]
	assert.Contains(t, detail, "**题目**: 题目内容缺失")
	assert.Contains(t, detail, "**选项**:\n选项信息缺失")
	assert.Contains(t, detail, "**您的答案**: 未知")
	assert.Contains(t, detail, "**正确答案**: 未知")
}

func TestRenderDetailKeepsOptionSourceOrder(t *testing.T) {
	wq := wrongQuestion("教育学", model.TrueOrFalse, model.DifficultyEasy, 1)
	wq.Question.Options = `{"A":"正确","B":"错误"}`

	data := BuildAnalysisData([]model.WrongQuestion{wq})

	require.Len(t, data.Details, 1)
	assert.Contains(t, data.Details[0], "A. 正确\nB. 错误")

	// 顺序跟随 JSON 原文键序，不按字母排序
	wq.Question.Options = `{"B":"错误","A":"正确"}`
	data = BuildAnalysisData([]model.WrongQuestion{wq})
	require.Len(t, data.Details, 1)
	assert.Contains(t, data.Details[0], "B. 错误\nA. 正确")
}

func TestRenderDetailMalformedOptions(t *testing.T) {
	wq := wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 1)
	wq.Question.Options = `{"A":"截断的`

	data := BuildAnalysisData([]model.WrongQuestion{wq})

	require.Len(t, data.Details, 1)
	assert.Contains(t, data.Details[0], "选项处理失败")
}

func TestRenderDetailNonObjectOptions(t *testing.T) {
	wq := wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 1)
	wq.Question.Options = `["A","B"]`

	data := BuildAnalysisData([]model.WrongQuestion{wq})

	require.Len(t, data.Details, 1)
	assert.Contains(t, data.Details[0], "选项信息缺失")
}

func TestComposeUserPromptSubstitutions(t *testing.T) {
	records := []model.WrongQuestion{
		wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 2),
		wrongQuestion("教育心理学", model.MultipleChoice, model.DifficultyHard, 1),
	}

	prompt := ComposeUserPrompt(BuildAnalysisData(records))

	assert.Contains(t, prompt, "总错题数：2")
	assert.Contains(t, prompt, "涉及科目：教育学、教育心理学")
	assert.Contains(t, prompt, "单选题: 1道、多选题: 1道")
	assert.Contains(t, prompt, "简单: 1道、困难: 1道")
	assert.Contains(t, prompt, "- 错题数量: 1")
	assert.Contains(t, prompt, "- 平均错误次数: 2.0")
	assert.Contains(t, prompt, "- 错误题目占比: 50.0%")
	assert.NotContains(t, prompt, "{totalWrongQuestions}")
	assert.NotContains(t, prompt, "{subjectStats}")
}

func TestComposeUserPromptDeterministic(t *testing.T) {
	records := []model.WrongQuestion{
		wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 2),
		wrongQuestion("教育心理学", model.MultipleChoice, model.DifficultyHard, 1),
		wrongQuestion("职业道德", model.TrueOrFalse, model.DifficultyMedium, 4),
	}

	first := ComposeUserPrompt(BuildAnalysisData(records))
	for i := 0; i < 20; i++ {
		again := ComposeUserPrompt(BuildAnalysisData(records))
		require.True(t, first == again, "prompt changed between runs")
	}
}

func TestComposeUserPromptEmptyData(t *testing.T) {
	prompt := ComposeUserPrompt(BuildAnalysisData(nil))

	assert.Contains(t, prompt, "总错题数：0")
	assert.Contains(t, prompt, "科目统计信息缺失")
	assert.Contains(t, prompt, "题型统计信息缺失")
	assert.Contains(t, prompt, "难度统计信息缺失")
	assert.False(t, strings.Contains(prompt, "### 错题"))
}
