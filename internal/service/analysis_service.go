package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 一次分析最多取最近 50 道未掌握错题
const analysisRecordLimit = 50

const analysisCacheTTL = 24 * time.Hour

// AnalysisReport 分析结果。Source 区分模型生成/本地兜底/无数据，
// 调用方必须看 Source 分支文案，不要解析 MarkdownContent。
type AnalysisReport struct {
	Source              model.AnalysisSource `json:"source"`
	MarkdownContent     string               `json:"markdownContent"`
	TotalWrongQuestions int                  `json:"totalWrongQuestions"`
}

type AnalysisService struct {
	wrongRepo *repository.WrongQuestionRepository
	repo      *repository.AnalysisRepository
	client    CompletionClient
	rdb       *redis.Client
}

func NewAnalysisService(wrongRepo *repository.WrongQuestionRepository, repo *repository.AnalysisRepository, client CompletionClient, rdb *redis.Client) *AnalysisService {
	return &AnalysisService{
		wrongRepo: wrongRepo,
		repo:      repo,
		client:    client,
		rdb:       rdb,
	}
}

// AnalyzeWrongQuestions 核心流水线：统计 → 提示词 → 一次补全调用。
// 空输入直接返回 no_data，不发网络请求；补全失败一律降级为本地
// 兜底报告，不向上抛错。模型返回的文本原样透传，不做 JSON 解析。
func (s *AnalysisService) AnalyzeWrongQuestions(ctx context.Context, records []model.WrongQuestion) *AnalysisReport {
	if len(records) == 0 {
		return &AnalysisReport{
			Source:          model.AnalysisSourceNoData,
			MarkdownContent: "暂无错题数据，无法进行分析",
		}
	}

	data := BuildAnalysisData(records)
	prompt := ComposeUserPrompt(data)

	logger.Log.Info("开始AI分析",
		zap.Int("wrongQuestions", len(records)),
		zap.Int("promptLength", len(prompt)))

	content, err := s.client.Complete(ctx, AnalysisSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("AI分析失败，使用兜底报告", zap.Error(err))
		return &AnalysisReport{
			Source:              model.AnalysisSourceFallback,
			MarkdownContent:     buildFallbackReport(records),
			TotalWrongQuestions: len(records),
		}
	}

	return &AnalysisReport{
		Source:              model.AnalysisSourceModel,
		MarkdownContent:     content,
		TotalWrongQuestions: len(records),
	}
}

// buildFallbackReport 仅用本地数据合成的保底报告，格式与模型报告一致
func buildFallbackReport(records []model.WrongQuestion) string {
	subject := records[0].Subject
	if subject == "" {
		subject = UnknownSubject
	}

	return fmt.Sprintf(`# AI私教分析报告

## 整体诊断

本次共分析 %d 道错题。AI 服务暂时不可用，以下为系统生成的基础分析报告。

## 薄弱点定位

**最薄弱科目：** %s

建议优先复习该科目的基础章节，重点回顾错误次数较多的题目。

## 学习建议

- 重点复习薄弱知识点
- 多做练习题巩固
- 查漏补缺，及时重做错题

## 学习激励

继续努力，相信你能够取得进步！
`, len(records), subject)
}

// RunForUser 取该用户未掌握的错题跑一次分析，落库并刷新缓存
func (s *AnalysisService) RunForUser(ctx context.Context, userID uint) (*AnalysisReport, error) {
	start := time.Now()

	records, err := s.wrongRepo.FindForAnalysis(userID, analysisRecordLimit)
	if err != nil {
		return nil, err
	}

	report := s.AnalyzeWrongQuestions(ctx, records)

	monitoring.AnalysisCounter.WithLabelValues(string(report.Source)).Inc()
	monitoring.AnalysisDuration.Observe(time.Since(start).Seconds())

	if report.Source == model.AnalysisSourceNoData {
		return report, nil
	}

	record := &model.AIAnalysis{
		UserID:              userID,
		AnalysisType:        "weakness_analysis",
		Source:              report.Source,
		TotalWrongQuestions: report.TotalWrongQuestions,
		AIResponse:          report.MarkdownContent,
	}
	if err := s.repo.Create(record); err != nil {
		// 保存失败不影响返回结果
		logger.Log.Error("保存分析结果失败", zap.Error(err), zap.Uint("userId", userID))
	} else {
		s.cacheLatest(ctx, userID, record)
	}

	return report, nil
}

// GetLatest 最近一次分析报告，优先走缓存
func (s *AnalysisService) GetLatest(ctx context.Context, userID uint) (*model.AIAnalysis, error) {
	key := latestAnalysisKey(userID)
	if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var record model.AIAnalysis
		if err := json.Unmarshal([]byte(cached), &record); err == nil {
			return &record, nil
		}
	}

	record, err := s.repo.FindLatestByUser(userID)
	if err != nil {
		return nil, err
	}
	s.cacheLatest(ctx, userID, record)
	return record, nil
}

// History 历史报告列表，新的在前
func (s *AnalysisService) History(userID uint, limit int) ([]*model.AIAnalysis, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.ListByUser(userID, limit)
}

func (s *AnalysisService) cacheLatest(ctx context.Context, userID uint, record *model.AIAnalysis) {
	payload, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, latestAnalysisKey(userID), payload, analysisCacheTTL).Err(); err != nil {
		logger.Log.Warn("缓存分析结果失败", zap.Error(err), zap.Uint("userId", userID))
	}
}

func latestAnalysisKey(userID uint) string {
	return fmt.Sprintf("analysis:latest:%d", userID)
}
