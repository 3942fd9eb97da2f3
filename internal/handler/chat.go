package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/service"
)

type ChatHandler struct {
	groq     *service.GroqClient
	sessions sessionStore
	projects projectStore
}

func NewChatHandler(groq *service.GroqClient, sessions sessionStore, projects projectStore) *ChatHandler {
	return &ChatHandler{groq: groq, sessions: sessions, projects: projects}
}

type chatRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	ProjectID string `json:"projectId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// resolve loads the session and project from the request and verifies the
// authenticated user owns both, writing the error response itself on failure
func (h *ChatHandler) resolve(c *gin.Context) (*chatRequest, *model.Session, *model.Project, bool) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, nil, nil, false
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId, projectId and message are required"})
		return nil, nil, nil, false
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return nil, nil, nil, false
	}

	session, err := h.sessions.FindByID(c.Request.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil, nil, nil, false
	}
	if session == nil || session.UserID == nil || *session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, nil, nil, false
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return nil, nil, nil, false
	}

	project, err := h.projects.FindByID(c.Request.Context(), userID, projectID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return nil, nil, nil, false
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, nil, nil, false
	}
	return &req, session, project, true
}

// applyRefinement runs the instruction through the LLM, persists the new
// files and the chat turns, and returns the result. Both session and project
// have already passed the ownership checks in resolve.
func (h *ChatHandler) applyRefinement(c *gin.Context, req *chatRequest, session *model.Session, project *model.Project) (*service.RefineResult, error) {
	userID, _ := getUserID(c)

	if _, err := h.sessions.AppendMessage(c.Request.Context(), session.ID, "user", req.Message); err != nil {
		log.Warn().Err(err).Msg("Failed to persist user chat message")
	}

	result, err := h.groq.RefinePortfolio(c.Request.Context(), project.Stack, project.Files, req.Message)
	if err != nil {
		return nil, err
	}

	if err := h.projects.UpdateFiles(c.Request.Context(), userID, project.ID, result.Files); err != nil {
		log.Error().Err(err).Msg("Failed to persist refined files")
		return nil, err
	}

	if _, err := h.sessions.AppendMessage(c.Request.Context(), session.ID, "assistant", result.Summary); err != nil {
		log.Warn().Err(err).Msg("Failed to persist assistant chat message")
	}
	return result, nil
}

// Chat handles POST /chat
// Applies one refinement instruction to a saved project
func (h *ChatHandler) Chat(c *gin.Context) {
	req, session, project, ok := h.resolve(c)
	if !ok {
		return
	}

	result, err := h.applyRefinement(c, req, session, project)
	if err != nil {
		log.Error().Err(err).Msg("Refinement failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Refinement failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": result.Summary,
		"files":   result.Files,
	})
}

// ChatStream handles POST /chat/stream
// Same as Chat but reports progress over SSE: a "tool" event when the
// refinement starts, a "result" event with the outcome, then "done"
func (h *ChatHandler) ChatStream(c *gin.Context) {
	req, session, project, ok := h.resolve(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Disable proxy buffering so events reach the client immediately
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("tool", gin.H{"name": "refine_portfolio", "status": "running"})
	c.Writer.Flush()

	result, err := h.applyRefinement(c, req, session, project)
	if err != nil {
		log.Error().Err(err).Msg("Refinement failed")
		c.SSEvent("error", gin.H{"error": "Refinement failed. Please try again."})
		c.Writer.Flush()
		return
	}

	c.SSEvent("result", gin.H{
		"summary": result.Summary,
		"files":   result.Files,
	})
	c.SSEvent("done", gin.H{})
	c.Writer.Flush()
}

// History handles GET /chat/:sessionId
// Returns the session's refinement conversation, oldest first
func (h *ChatHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	session, err := h.sessions.FindByID(c.Request.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	if session == nil || session.UserID == nil || *session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	messages, err := h.sessions.ListMessages(c.Request.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load chat history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
