package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/chatrel/internal/models"
)

func TestNew_SeedsWelcome(t *testing.T) {
	l := New()
	msgs := l.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeID, msgs[0].ID)
	assert.Equal(t, models.RoleModel, msgs[0].Role)
	assert.Equal(t, WelcomeText, msgs[0].Text)
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestAppend_HistoryKeepsOrderAndRoles(t *testing.T) {
	l := New()
	a := l.Append(models.RoleUser, "are they friends?")
	b := l.Append(models.RoleModel, "mostly")
	l.Append(models.RoleUser, "why mostly?")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	want := []models.Turn{
		{Role: models.RoleModel, Text: WelcomeText},
		{Role: models.RoleUser, Text: "are they friends?"},
		{Role: models.RoleModel, Text: "mostly"},
		{Role: models.RoleUser, Text: "why mostly?"},
	}
	assert.Equal(t, want, l.History())
	assert.Equal(t, 4, l.Len())
}

func TestMessages_ReturnsCopy(t *testing.T) {
	l := New()
	l.Append(models.RoleUser, "hello")

	msgs := l.Messages()
	msgs[1].Text = "changed"
	assert.Equal(t, "hello", l.Messages()[1].Text)
}

func TestReset_LeavesOnlyWelcome(t *testing.T) {
	l := New()
	l.Append(models.RoleUser, "one")
	l.Append(models.RoleModel, "two")

	l.Reset()

	msgs := l.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, WelcomeID, msgs[0].ID)
}
