package models

import "time"

type TaskKind string

const (
	TaskDeepAnalysis TaskKind = "deep_analysis"
	TaskQuickScan    TaskKind = "quick_scan"
	TaskChat         TaskKind = "chat"
)

// TaskKinds lists every kind in a stable order.
var TaskKinds = []TaskKind{TaskDeepAnalysis, TaskQuickScan, TaskChat}

type TaskState string

const (
	TaskIdle    TaskState = "idle"
	TaskPending TaskState = "pending"
)

// Transcript is an immutable snapshot of the text a session analyses.
type Transcript struct {
	ID         string    `json:"id"`
	Text       string    `json:"-"`
	Chars      int       `json:"chars"`
	CapturedAt time.Time `json:"captured_at"`
}

// Session is the read view of one analysis session handed to the presentation layer.
type Session struct {
	SessionID  string     `json:"session_id"`
	Transcript Transcript `json:"transcript"`

	Analysis  *AnalysisResult  `json:"analysis,omitempty"`
	QuickScan *QuickScanResult `json:"quick_scan,omitempty"`

	Tasks        map[TaskKind]TaskState `json:"tasks"`
	MessageCount int                    `json:"message_count"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}
