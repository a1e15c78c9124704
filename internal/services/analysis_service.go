package services

import (
	"context"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/normalize"
	"github.com/yoockh/chatrel/internal/prompt"
	"github.com/yoockh/chatrel/internal/providers/llm"
	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/utils"
)

type AnalysisService interface {
	Deep(ctx context.Context, sessionID string, variant prompt.Variant) (*models.AnalysisResult, error)
	Quick(ctx context.Context, sessionID string) (*models.QuickScanResult, error)
}

type analysisService struct {
	sessions memory.SessionRepository
	llm      llm.Provider
	log      *logrus.Logger
}

func NewAnalysisService(sessions memory.SessionRepository, provider llm.Provider, log *logrus.Logger) AnalysisService {
	return &analysisService{sessions: sessions, llm: provider, log: log}
}

func (s *analysisService) Deep(ctx context.Context, sessionID string, variant prompt.Variant) (*models.AnalysisResult, error) {
	const op = "AnalysisService.Deep"

	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}
	tr, err := sess.Begin(models.TaskDeepAnalysis)
	if err != nil {
		return nil, err
	}
	defer sess.Finish(models.TaskDeepAnalysis)

	raw, err := s.llm.Generate(ctx, prompt.DeepAnalysis(tr.Text, variant))
	if err != nil {
		diagnose(s.log, op, sessionID, err, "")
		return nil, err
	}

	parse := normalize.Analysis
	if variant == prompt.VariantV1 {
		parse = normalize.AnalysisV1
	}
	res, err := parse(raw)
	if err != nil {
		diagnose(s.log, op, sessionID, err, raw)
		return nil, err
	}

	if err := sess.StoreAnalysis(tr.ID, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *analysisService) Quick(ctx context.Context, sessionID string) (*models.QuickScanResult, error) {
	const op = "AnalysisService.Quick"

	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}
	tr, err := sess.Begin(models.TaskQuickScan)
	if err != nil {
		return nil, err
	}
	defer sess.Finish(models.TaskQuickScan)

	raw, err := s.llm.Generate(ctx, prompt.QuickScan(tr.Text))
	if err != nil {
		diagnose(s.log, op, sessionID, err, "")
		return nil, err
	}
	res, err := normalize.QuickScan(raw)
	if err != nil {
		diagnose(s.log, op, sessionID, err, raw)
		return nil, err
	}

	if err := sess.StoreQuickScan(tr.ID, res); err != nil {
		return nil, err
	}
	return res, nil
}

// maxLoggedPayload bounds how much of a rejected model payload is logged.
const maxLoggedPayload = 512

func diagnose(l *logrus.Logger, op, sessionID string, err error, raw string) {
	entry := l.WithFields(logrus.Fields{
		"op":         op,
		"session_id": sessionID,
		"code":       utils.CodeOf(err),
	}).WithError(err)
	if raw != "" {
		entry = entry.WithField("payload", clip(raw, maxLoggedPayload))
	}
	entry.Warn("inference call failed")
}

// clip cuts s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
