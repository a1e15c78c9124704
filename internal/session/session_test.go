package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/chatrel/internal/conversation"
	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/utils"
)

func TestNew(t *testing.T) {
	s := New("s1", "Alice: hi\nBob: hi")
	v := s.View()

	assert.Equal(t, "s1", v.SessionID)
	assert.Equal(t, 17, v.Transcript.Chars)
	assert.NotEmpty(t, v.Transcript.ID)
	assert.Nil(t, v.Analysis)
	assert.Nil(t, v.QuickScan)
	assert.Equal(t, 1, v.MessageCount)
	for _, k := range models.TaskKinds {
		assert.Equal(t, models.TaskIdle, v.Tasks[k])
	}
}

func TestGate_RejectsSecondBeginOfSameKind(t *testing.T) {
	s := New("s1", "text")

	_, err := s.Begin(models.TaskDeepAnalysis)
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, s.State(models.TaskDeepAnalysis))

	_, err = s.Begin(models.TaskDeepAnalysis)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	// other kinds are independent
	_, err = s.Begin(models.TaskQuickScan)
	require.NoError(t, err)

	s.Finish(models.TaskDeepAnalysis)
	assert.Equal(t, models.TaskIdle, s.State(models.TaskDeepAnalysis))
	_, err = s.Begin(models.TaskDeepAnalysis)
	assert.NoError(t, err)
}

func TestStoreResults(t *testing.T) {
	s := New("s1", "text")
	tr, err := s.Begin(models.TaskDeepAnalysis)
	require.NoError(t, err)

	res := &models.AnalysisResult{RelationshipType: models.RelationshipFamily, HealthScore: 60}
	require.NoError(t, s.StoreAnalysis(tr.ID, res))
	require.NoError(t, s.StoreQuickScan(tr.ID, &models.QuickScanResult{Sentiment: models.SentimentNeutral}))

	v := s.View()
	assert.Same(t, res, v.Analysis)
	assert.Equal(t, models.SentimentNeutral, v.QuickScan.Sentiment)
}

func TestReplaceTranscript_InvalidatesEverything(t *testing.T) {
	s := New("s1", "old text")
	old, err := s.Begin(models.TaskDeepAnalysis)
	require.NoError(t, err)
	require.NoError(t, s.StoreQuickScan(old.ID, &models.QuickScanResult{Sentiment: models.SentimentPositive}))

	_, _, err = s.BeginChat("question")
	require.NoError(t, err)
	s.Finish(models.TaskChat)

	fresh := s.ReplaceTranscript("new text")
	assert.NotEqual(t, old.ID, fresh.ID)

	// result for the superseded snapshot is discarded
	err = s.StoreAnalysis(old.ID, &models.AnalysisResult{})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	v := s.View()
	assert.Nil(t, v.Analysis)
	assert.Nil(t, v.QuickScan)
	assert.Equal(t, "new text", v.Transcript.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, conversation.WelcomeID, msgs[0].ID)
}

func TestBeginChat_HistoryExcludesNewMessage(t *testing.T) {
	s := New("s1", "text")

	tr, history, err := s.BeginChat("first question")
	require.NoError(t, err)
	assert.Equal(t, []models.Turn{{Role: models.RoleModel, Text: conversation.WelcomeText}}, history)

	_, _, err = s.BeginChat("second question")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	reply, err := s.RecordReply(tr.ID, "answer")
	require.NoError(t, err)
	assert.Equal(t, models.RoleModel, reply.Role)
	s.Finish(models.TaskChat)

	_, history, err = s.BeginChat("second question")
	require.NoError(t, err)
	assert.Equal(t, []models.Turn{
		{Role: models.RoleModel, Text: conversation.WelcomeText},
		{Role: models.RoleUser, Text: "first question"},
		{Role: models.RoleModel, Text: "answer"},
	}, history)
}

func TestRecordReply_StaleTranscript(t *testing.T) {
	s := New("s1", "text")
	tr, _, err := s.BeginChat("q")
	require.NoError(t, err)

	s.ReplaceTranscript("other")
	_, err = s.RecordReply(tr.ID, "late answer")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Len(t, s.Messages(), 1)
}
