package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/foliogen-api/internal/cache"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/service"
)

type fakeGenerationLogger struct {
	entries []model.GenerationLog
}

func (f *fakeGenerationLogger) LogGeneration(_ context.Context, entry *model.GenerationLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func TestGenerateLogsAnalytics(t *testing.T) {
	owner := uuid.New()

	sessions := newFakeSessionStore()
	sessionID := uuid.New()
	sessions.sessions[sessionID] = &model.Session{
		ID:     sessionID,
		UserID: &owner,
		ResumeData: model.ResumeData{
			Name:   "Ada Lovelace",
			Title:  "Engineer",
			Skills: []string{"Go"},
		},
	}

	logger := &fakeGenerationLogger{}
	h := NewGenerateHandler(
		service.NewEngine(),
		service.NewTemplateRegistry(),
		service.NewGroqClient("", "https://api.groq.com/openai", "m"),
		cache.New("", "", time.Hour), // disabled cache
		sessions,
		logger,
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate", authAs(owner), h.Generate)

	w := postJSON(t, r, "/generate", gin.H{
		"sessionId":  sessionID.String(),
		"stack":      "react",
		"templateId": "minimal",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, logger.entries, 1)
	entry := logger.entries[0]
	assert.Equal(t, owner, entry.UserID)
	require.NotNil(t, entry.SessionID)
	assert.Equal(t, sessionID, *entry.SessionID)
	assert.Equal(t, "react", entry.Stack)
	assert.Equal(t, "minimal", entry.TemplateID)
	assert.False(t, entry.Cached)
}

func TestGenerateDoesNotLogOnBadRequest(t *testing.T) {
	logger := &fakeGenerationLogger{}
	h := NewGenerateHandler(
		service.NewEngine(),
		service.NewTemplateRegistry(),
		service.NewGroqClient("", "https://api.groq.com/openai", "m"),
		cache.New("", "", time.Hour),
		newFakeSessionStore(),
		logger,
	)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/generate", authAs(uuid.New()), h.Generate)

	w := postJSON(t, r, "/generate", gin.H{
		"sessionId": uuid.New().String(),
		"stack":     "angular",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, logger.entries)
}
