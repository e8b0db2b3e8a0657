package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

// SubjectQuestionBrief 科目统计里挂的单题摘要
type SubjectQuestionBrief struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	WrongCount    int    `json:"wrongCount"`
}

// SubjectStat 单科目聚合
type SubjectStat struct {
	Count           int                    `json:"count"`
	TotalWrongCount int                    `json:"totalWrongCount"`
	Questions       []SubjectQuestionBrief `json:"questions"`
}

// AnalysisData 一次分析请求的中间统计，构建后拼进提示词即丢弃。
// map 旁边都带插入序 key 切片：提示词必须逐字节可复现，
// 不能依赖 map 遍历顺序。
type AnalysisData struct {
	TotalWrongQuestions int
	SubjectOrder        []string
	SubjectStats        map[string]*SubjectStat
	DifficultyOrder     []string
	DifficultyStats     map[string]int
	TypeOrder           []string
	TypeStats           map[string]int
	Details             []string
}

// BuildAnalysisData 把错题记录聚合成统计数据和逐题描述文本。
// 缺少关联题目的记录跳过并记日志，任何输入都不报错。
func BuildAnalysisData(records []model.WrongQuestion) *AnalysisData {
	data := &AnalysisData{
		TotalWrongQuestions: len(records),
		SubjectStats:        make(map[string]*SubjectStat),
		DifficultyStats:     make(map[string]int),
		TypeStats:           make(map[string]int),
	}

	for i, wq := range records {
		if wq.Question == nil {
			logger.Log.Warn("错题数据不完整，跳过", zap.Int("index", i), zap.Uint("id", wq.ID))
			continue
		}

		subject := wq.Subject
		if subject == "" {
			subject = UnknownSubject
		}
		difficulty := string(wq.Difficulty)
		if difficulty == "" {
			difficulty = UnknownDifficulty
		}
		questionType := string(wq.QuestionType)
		if questionType == "" {
			questionType = UnknownType
		}

		questionText := wq.Question.Question
		if questionText == "" {
			questionText = MissingQuestion
		}
		userAnswer := wq.UserAnswer
		if userAnswer == "" {
			userAnswer = UnknownAnswer
		}
		correctAnswer := wq.CorrectAnswer
		if correctAnswer == "" {
			correctAnswer = UnknownAnswer
		}
		wrongCount := wq.WrongCount
		if wrongCount < 1 {
			wrongCount = 1
		}

		stat, ok := data.SubjectStats[subject]
		if !ok {
			stat = &SubjectStat{}
			data.SubjectStats[subject] = stat
			data.SubjectOrder = append(data.SubjectOrder, subject)
		}
		stat.Count++
		stat.TotalWrongCount += wrongCount
		stat.Questions = append(stat.Questions, SubjectQuestionBrief{
			Question:      questionText,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			WrongCount:    wrongCount,
		})

		if _, ok := data.DifficultyStats[difficulty]; !ok {
			data.DifficultyOrder = append(data.DifficultyOrder, difficulty)
		}
		data.DifficultyStats[difficulty]++

		if _, ok := data.TypeStats[questionType]; !ok {
			data.TypeOrder = append(data.TypeOrder, questionType)
		}
		data.TypeStats[questionType]++

		data.Details = append(data.Details, renderDetail(i, subject, questionType, difficulty,
			wrongCount, questionText, wq.Question.Options, userAnswer, correctAnswer, wq.Question.Explanation))
	}

	return data
}

// renderDetail 单题文本块，序号沿用输入下标（1 起）
func renderDetail(index int, subject, questionType, difficulty string, wrongCount int,
	questionText, rawOptions, userAnswer, correctAnswer, explanation string) string {

	typeName := questionType
	if info, ok := QuestionTypeMapping[questionType]; ok {
		typeName = info.Name
	}
	diffName := difficulty
	if info, ok := DifficultyMapping[difficulty]; ok {
		diffName = info.Name
	}

	optionsText := MissingOptions
	pairs, err := decodeOrderedOptions(rawOptions)
	if err != nil {
		if !errors.Is(err, errNotObject) {
			logger.Log.Error("处理选项时出错", zap.Error(err), zap.String("options", rawOptions))
			optionsText = "选项处理失败"
		}
	} else if len(pairs) > 0 {
		lines := make([]string, len(pairs))
		for i, p := range pairs {
			lines[i] = p.Key + ". " + p.Value
		}
		optionsText = strings.Join(lines, "\n")
	}

	explanationLine := ""
	if explanation != "" {
		explanationLine = "**解析**: " + explanation
	}

	return fmt.Sprintf(`
### 错题 %d
**科目**: %s
**题型**: %s
**难度**: %s
**错误次数**: %d

**题目**: %s

**选项**:
%s

**您的答案**: %s
**正确答案**: %s
%s
`, index+1, subject, typeName, diffName, wrongCount, questionText, optionsText, userAnswer, correctAnswer, explanationLine)
}

var errNotObject = errors.New("options is not a JSON object")

type optionPair struct {
	Key   string
	Value string
}

// decodeOrderedOptions 按 JSON 原文的键序解出选项，
// 标准库 map 解码会打乱顺序，这里走 token 流。
func decodeOrderedOptions(raw string) ([]optionPair, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errNotObject
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var pairs []optionPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected option key token %v", keyTok)
		}
		var val interface{}
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		pairs = append(pairs, optionPair{Key: key, Value: fmt.Sprint(val)})
	}
	return pairs, nil
}

// ComposeUserPrompt 把统计数据代入固定模板生成 user 消息。
// 相同输入必须产出逐字节相同的结果。
func ComposeUserPrompt(data *AnalysisData) string {
	subjectStatsText := "科目统计信息缺失"
	if len(data.SubjectOrder) > 0 {
		blocks := make([]string, 0, len(data.SubjectOrder))
		for _, subject := range data.SubjectOrder {
			stat := data.SubjectStats[subject]
			avg := formatFixed1(float64(stat.TotalWrongCount) / float64(stat.Count))
			pct := formatFixed1(float64(stat.Count) / float64(data.TotalWrongQuestions) * 100)

			description := ""
			keyTopics := UnknownAnswer
			if info, ok := SubjectMapping[subject]; ok {
				description = info.Description
				keyTopics = strings.Join(info.KeyTopics, "、")
			}

			blocks = append(blocks, fmt.Sprintf(`
**%s** (%s):
- 错题数量: %d
- 平均错误次数: %s
- 主要知识点: %s
- 错误题目占比: %s%%`, subject, description, stat.Count, avg, keyTopics, pct))
		}
		subjectStatsText = strings.Join(blocks, "\n")
	}

	questionTypesText := "题型统计信息缺失"
	if len(data.TypeOrder) > 0 {
		parts := make([]string, 0, len(data.TypeOrder))
		for _, qt := range data.TypeOrder {
			name := qt
			if info, ok := QuestionTypeMapping[qt]; ok {
				name = info.Name
			}
			parts = append(parts, fmt.Sprintf("%s: %d道", name, data.TypeStats[qt]))
		}
		questionTypesText = strings.Join(parts, "、")
	}

	difficultiesText := "难度统计信息缺失"
	if len(data.DifficultyOrder) > 0 {
		parts := make([]string, 0, len(data.DifficultyOrder))
		for _, d := range data.DifficultyOrder {
			name := d
			if info, ok := DifficultyMapping[d]; ok {
				name = info.Name
			}
			parts = append(parts, fmt.Sprintf("%s: %d道", name, data.DifficultyStats[d]))
		}
		difficultiesText = strings.Join(parts, "、")
	}

	// 每个占位符至多替换一次
	prompt := AnalysisUserPromptTemplate
	prompt = strings.Replace(prompt, "{totalWrongQuestions}", strconv.Itoa(data.TotalWrongQuestions), 1)
	prompt = strings.Replace(prompt, "{subjects}", strings.Join(data.SubjectOrder, "、"), 1)
	prompt = strings.Replace(prompt, "{questionTypes}", questionTypesText, 1)
	prompt = strings.Replace(prompt, "{difficulties}", difficultiesText, 1)
	prompt = strings.Replace(prompt, "{wrongQuestionsDetails}", strings.Join(data.Details, "\n"), 1)
	prompt = strings.Replace(prompt, "{subjectStats}", subjectStatsText, 1)
	return prompt
}

func formatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
