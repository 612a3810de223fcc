package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"exam_ai_backend/internal/exam"
	"exam_ai_backend/internal/model"
	"exam_ai_backend/internal/repository"
	"exam_ai_backend/internal/util"
	"exam_ai_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChoiceItem struct {
	ID                uint              `json:"id"`
	ChoicePaperName   string            `json:"choicePaperName"`
	ChoicePaperID     string            `json:"choicePaperId"`
	ChoiceQuestion    string            `json:"choiceQuestion"`
	ChoiceOptions     map[string]string `json:"choiceOptions"`
	ChoiceAnswer      string            `json:"choiceAnswer"`
	ChoiceExplanation string            `json:"choiceExplanation"`
}

type FillItem struct {
	ID              uint   `json:"id"`
	FillPaperName   string `json:"fillPaperName"`
	FillPaperID     string `json:"fillPaperId"`
	FillQuestion    string `json:"fillQuestion"`
	FillAnswer      string `json:"fillAnswer"`
	FillExplanation string `json:"fillExplanation"`
}

type JudgeItem struct {
	ID               uint   `json:"id"`
	JudgePaperName   string `json:"judgePaperName"`
	JudgePaperID     string `json:"judgePaperId"`
	JudgeQuestion    string `json:"judgeQuestion"`
	JudgeAnswer      bool   `json:"judgeAnswer"`
	JudgeExplanation string `json:"judgeExplanation"`
}

// PaperQuestion 学生端试卷中的一道题，QuestionType 为 RADIO / JUDGE / FILL
type PaperQuestion struct {
	QuestionType string      `json:"questionType"`
	ID           string      `json:"id"`
	Question     string      `json:"question"`
	Options      interface{} `json:"options"`
	Answer       string      `json:"answer"`
	Analysis     string      `json:"analysis"`
	Index        int         `json:"index"`
}

type PaperQuestions struct {
	PaperName string          `json:"paperName"`
	Questions []PaperQuestion `json:"questions"`
}

// MirrorItem 用户题目表中的一道题，供按试卷查询
type MirrorItem struct {
	ID          uint              `json:"id"`
	PaperName   string            `json:"paperName"`
	PaperID     string            `json:"paperId"`
	Question    string            `json:"question"`
	Options     map[string]string `json:"options,omitempty"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
	PhoneNumber string            `json:"phoneNumber"`
}

// QuestionService 题库与试卷的查询
type QuestionService struct {
	Repo         *repository.QuestionRepository
	HomeworkRepo *repository.HomeworkRepository
}

func NewQuestionService(repo *repository.QuestionRepository, homeworkRepo *repository.HomeworkRepository) *QuestionService {
	return &QuestionService{Repo: repo, HomeworkRepo: homeworkRepo}
}

func listLimit(latest bool) int {
	if latest {
		return util.LatestLimit
	}
	return 0
}

func (s *QuestionService) ListChoices(ctx context.Context, latest bool) ([]ChoiceItem, error) {
	records, err := s.Repo.ListCanonical(ctx, model.KindChoice, listLimit(latest))
	if err != nil {
		return nil, err
	}
	items := make([]ChoiceItem, 0, len(records))
	for _, r := range records {
		items = append(items, ChoiceItem{
			ID:                r.ID,
			ChoicePaperName:   r.PaperName,
			ChoicePaperID:     r.PaperID,
			ChoiceQuestion:    questionText(r.Question),
			ChoiceOptions:     exam.ParseOptions(r.Options),
			ChoiceAnswer:      r.Answer,
			ChoiceExplanation: explanationText(r.Explanation),
		})
	}
	return items, nil
}

func (s *QuestionService) ListFills(ctx context.Context, latest bool) ([]FillItem, error) {
	records, err := s.Repo.ListCanonical(ctx, model.KindBlank, listLimit(latest))
	if err != nil {
		return nil, err
	}
	items := make([]FillItem, 0, len(records))
	for _, r := range records {
		items = append(items, FillItem{
			ID:              r.ID,
			FillPaperName:   r.PaperName,
			FillPaperID:     r.PaperID,
			FillQuestion:    questionText(r.Question),
			FillAnswer:      r.Answer,
			FillExplanation: explanationText(r.Explanation),
		})
	}
	return items, nil
}

func (s *QuestionService) ListJudges(ctx context.Context, latest bool) ([]JudgeItem, error) {
	records, err := s.Repo.ListCanonical(ctx, model.KindJudgment, listLimit(latest))
	if err != nil {
		return nil, err
	}
	items := make([]JudgeItem, 0, len(records))
	for _, r := range records {
		items = append(items, JudgeItem{
			ID:               r.ID,
			JudgePaperName:   r.PaperName,
			JudgePaperID:     r.PaperID,
			JudgeQuestion:    questionText(r.Question),
			JudgeAnswer:      exam.JudgmentBool(r.Answer),
			JudgeExplanation: explanationText(r.Explanation),
		})
	}
	return items, nil
}

// PublishedPaperNames 已发布作业中的试卷名称
func (s *QuestionService) PublishedPaperNames(ctx context.Context) ([]string, error) {
	names, err := s.HomeworkRepo.DistinctPaperNames(ctx)
	if names == nil {
		names = []string{}
	}
	return names, err
}

// PaperQuestions 按作业记录中的三个试卷编号组卷，顺序为选择题、判断题、填空题，index 从 0 开始。
// 多个用户同步过同一道题时只保留一份。
func (s *QuestionService) PaperQuestions(ctx context.Context, paperName string) (*PaperQuestions, error) {
	hw, err := s.HomeworkRepo.FindByPaperName(ctx, paperName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPaperNotFound
	}
	if err != nil {
		return nil, err
	}

	result := &PaperQuestions{PaperName: paperName, Questions: []PaperQuestion{}}
	sections := []struct {
		kind    model.QuestionKind
		paperID string
	}{
		{model.KindChoice, hw.ChoicePaperID},
		{model.KindJudgment, hw.JudgePaperID},
		{model.KindBlank, hw.BlankPaperID},
	}

	for _, sec := range sections {
		rows, err := s.Repo.ListMirrorByPaperID(ctx, sec.kind, sec.paperID, paperName)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", sec.kind.MirrorTable(), err)
		}
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			q := strings.TrimSpace(row.Question)
			if seen[q] {
				continue
			}
			seen[q] = true
			result.Questions = append(result.Questions, toPaperQuestion(sec.kind, row.QuestionRecord, len(result.Questions)))
		}
	}
	return result, nil
}

func toPaperQuestion(kind model.QuestionKind, r model.QuestionRecord, index int) PaperQuestion {
	pq := PaperQuestion{
		Question: strings.TrimSpace(r.Question),
		Analysis: explanationText(strings.TrimSpace(r.Explanation)),
		Index:    index,
	}

	switch kind {
	case model.KindChoice:
		pq.QuestionType = "RADIO"
		pq.ID = fmt.Sprintf("radio_%d", index)
		options := exam.ParseOptionsWithPlaceholder(r.Options)
		pq.Options = options
		if strings.TrimSpace(r.Options) == "" {
			pq.Answer = "无答案"
			break
		}
		key, ok := exam.ResolveAnswerKey(r.Answer, options)
		if !ok {
			logger.Log.Warn("Answer key not resolved",
				zap.Int("index", index),
				zap.String("answer", r.Answer))
		}
		pq.Answer = strings.TrimSpace(key)
	case model.KindJudgment:
		pq.QuestionType = "JUDGE"
		pq.ID = fmt.Sprintf("judge_%d", index)
		pq.Options = []string{"对", "错"}
		pq.Answer = exam.CleanJudgmentAnswer(r.Answer)
	case model.KindBlank:
		pq.QuestionType = "FILL"
		pq.ID = fmt.Sprintf("fill_%d", index)
		pq.Answer = strings.TrimSpace(r.Answer)
	}
	return pq
}

// OwnerPaperNames 用户同步过的试卷名称，最近的在前
func (s *QuestionService) OwnerPaperNames(ctx context.Context, owner string) ([]string, error) {
	names, err := s.Repo.OwnerPaperNames(ctx, owner)
	if names == nil {
		names = []string{}
	}
	return names, err
}

// MirrorByPaper 按试卷名称查询用户题目表，owner 为空时返回所有用户的记录
func (s *QuestionService) MirrorByPaper(ctx context.Context, kind model.QuestionKind, paperName, owner string) ([]MirrorItem, error) {
	rows, err := s.Repo.ListMirrorByPaper(ctx, kind, paperName, owner)
	if err != nil {
		return nil, err
	}
	items := make([]MirrorItem, 0, len(rows))
	for _, r := range rows {
		item := MirrorItem{
			ID:          r.ID,
			PaperName:   r.PaperName,
			PaperID:     r.PaperID,
			Question:    r.Question,
			Answer:      r.Answer,
			Explanation: r.Explanation,
			PhoneNumber: logger.MaskPhone(r.PhoneNumber),
		}
		if kind.HasOptions() {
			item.Options = exam.ParseOptions(r.Options)
		}
		items = append(items, item)
	}
	return items, nil
}

func questionText(q string) string {
	if strings.TrimSpace(q) == "" {
		return exam.NoQuestion
	}
	return q
}

func explanationText(e string) string {
	if strings.TrimSpace(e) == "" {
		return exam.NoExplanation
	}
	return e
}
