package service

import (
	"context"
	"errors"
	"testing"

	"exam_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletionClient struct {
	calls   int
	content string
	err     error
}

func (c *stubCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.content, nil
}

func TestAnalyzeWrongQuestionsNoData(t *testing.T) {
	client := &stubCompletionClient{content: "should not be called"}
	svc := &AnalysisService{client: client}

	report := svc.AnalyzeWrongQuestions(context.Background(), nil)

	assert.Equal(t, model.AnalysisSourceNoData, report.Source)
	assert.Equal(t, "暂无错题数据，无法进行分析", report.MarkdownContent)
	assert.Equal(t, 0, report.TotalWrongQuestions)
	// 空输入不发任何网络请求
	assert.Equal(t, 0, client.calls)
}

func TestAnalyzeWrongQuestionsModelSuccess(t *testing.T) {
	client := &stubCompletionClient{content: "# 深度分析\n随便什么格式都原样透传"}
	svc := &AnalysisService{client: client}

	records := []model.WrongQuestion{
		wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 2),
	}
	report := svc.AnalyzeWrongQuestions(context.Background(), records)

	assert.Equal(t, model.AnalysisSourceModel, report.Source)
	assert.Equal(t, "# 深度分析\n随便什么格式都原样透传", report.MarkdownContent)
	assert.Equal(t, 1, report.TotalWrongQuestions)
	assert.Equal(t, 1, client.calls)
}

func TestAnalyzeWrongQuestionsFallbackOnError(t *testing.T) {
	cases := map[string]error{
		"timeout":   ErrAITimeout,
		"upstream":  &UpstreamError{StatusCode: 500, Body: "boom"},
		"malformed": ErrMalformedResponse,
		"other":     errors.New("connection refused"),
	}

	for name, callErr := range cases {
		t.Run(name, func(t *testing.T) {
			client := &stubCompletionClient{err: callErr}
			svc := &AnalysisService{client: client}

			records := []model.WrongQuestion{
				wrongQuestion("教育心理学", model.MultipleChoice, model.DifficultyHard, 3),
				wrongQuestion("教育学", model.SingleChoice, model.DifficultyEasy, 1),
			}
			report := svc.AnalyzeWrongQuestions(context.Background(), records)

			require.Equal(t, model.AnalysisSourceFallback, report.Source)
			assert.Equal(t, 2, report.TotalWrongQuestions)
			assert.Equal(t, 1, client.calls)

			content := report.MarkdownContent
			assert.Contains(t, content, "本次共分析 2 道错题")
			assert.Contains(t, content, "## 整体诊断")
			assert.Contains(t, content, "## 薄弱点定位")
			assert.Contains(t, content, "## 学习建议")
			assert.Contains(t, content, "## 学习激励")
			// 首条记录的科目作为最薄弱科目
			assert.Contains(t, content, "**最薄弱科目：** 教育心理学")
		})
	}
}

func TestBuildFallbackReportUnknownSubject(t *testing.T) {
	records := []model.WrongQuestion{
		{Question: &model.Question{}},
	}

	content := buildFallbackReport(records)
	assert.Contains(t, content, "**最薄弱科目：** 未知科目")
}
