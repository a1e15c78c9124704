// Package session keeps the in-memory state of one analysis session: the
// transcript snapshot, the results derived from it, the follow-up chat and
// the per-task gates that stop duplicate in-flight calls.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoockh/chatrel/internal/conversation"
	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/utils"
)

type Session struct {
	mu sync.Mutex

	id         string
	createdAt  time.Time
	lastActive time.Time

	transcript models.Transcript
	analysis   *models.AnalysisResult
	quickScan  *models.QuickScanResult
	chat       *conversation.Log

	tasks map[models.TaskKind]models.TaskState
}

func New(id, text string) *Session {
	now := time.Now().UTC()
	s := &Session{
		id:         id,
		createdAt:  now,
		lastActive: now,
		chat:       conversation.New(),
		tasks:      make(map[models.TaskKind]models.TaskState, len(models.TaskKinds)),
	}
	for _, k := range models.TaskKinds {
		s.tasks[k] = models.TaskIdle
	}
	s.transcript = snapshot(text, now)
	return s
}

func snapshot(text string, now time.Time) models.Transcript {
	return models.Transcript{
		ID:         uuid.NewString(),
		Text:       text,
		Chars:      len([]rune(text)),
		CapturedAt: now,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Begin moves kind from Idle to Pending and returns the transcript the call
// must work on. A kind that is already Pending is rejected with CodeConflict.
func (s *Session) Begin(kind models.TaskKind) (models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginLocked(kind); err != nil {
		return models.Transcript{}, err
	}
	return s.transcript, nil
}

func (s *Session) beginLocked(kind models.TaskKind) error {
	if s.tasks[kind] == models.TaskPending {
		return utils.E(utils.CodeConflict, "Session.Begin", string(kind)+" already in progress", nil)
	}
	s.tasks[kind] = models.TaskPending
	s.lastActive = time.Now().UTC()
	return nil
}

// Finish returns kind to Idle. Safe to call on every exit path.
func (s *Session) Finish(kind models.TaskKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[kind] = models.TaskIdle
}

func (s *Session) State(kind models.TaskKind) models.TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[kind]
}

// ReplaceTranscript takes a new snapshot, drops both results and resets the
// chat to the welcome message. Calls still in flight for the old snapshot
// will have their results discarded.
func (s *Session) ReplaceTranscript(text string) models.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	s.transcript = snapshot(text, now)
	s.analysis = nil
	s.quickScan = nil
	s.chat.Reset()
	s.lastActive = now
	return s.transcript
}

func (s *Session) StoreAnalysis(transcriptID string, res *models.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked("Session.StoreAnalysis", transcriptID); err != nil {
		return err
	}
	s.analysis = res
	return nil
}

func (s *Session) StoreQuickScan(transcriptID string, res *models.QuickScanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked("Session.StoreQuickScan", transcriptID); err != nil {
		return err
	}
	s.quickScan = res
	return nil
}

func (s *Session) currentLocked(op, transcriptID string) error {
	if s.transcript.ID != transcriptID {
		return utils.E(utils.CodeConflict, op, "transcript changed while the request was running", nil)
	}
	s.lastActive = time.Now().UTC()
	return nil
}

// BeginChat opens the chat gate, captures the grounding transcript and the
// history preceding the new message, then appends the user message.
func (s *Session) BeginChat(text string) (models.Transcript, []models.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginLocked(models.TaskChat); err != nil {
		return models.Transcript{}, nil, err
	}
	history := s.chat.History()
	s.chat.Append(models.RoleUser, text)
	return s.transcript, history, nil
}

// RecordReply appends a model message if the transcript has not changed
// since BeginChat.
func (s *Session) RecordReply(transcriptID, text string) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked("Session.RecordReply", transcriptID); err != nil {
		return models.ChatMessage{}, err
	}
	return s.chat.Append(models.RoleModel, text), nil
}

func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Messages()
}

func (s *Session) View() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make(map[models.TaskKind]models.TaskState, len(s.tasks))
	for k, v := range s.tasks {
		tasks[k] = v
	}
	return models.Session{
		SessionID:    s.id,
		Transcript:   s.transcript,
		Analysis:     s.analysis,
		QuickScan:    s.quickScan,
		Tasks:        tasks,
		MessageCount: s.chat.Len(),
		CreatedAt:    s.createdAt,
		LastActive:   s.lastActive,
	}
}
