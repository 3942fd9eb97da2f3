package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/cache"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/service"
)

type GenerateHandler struct {
	engine    *service.Engine
	templates *service.TemplateRegistry
	groq      *service.GroqClient
	cache     *cache.PortfolioCache
	sessions  sessionFinder
	analytics generationLogger
}

func NewGenerateHandler(
	engine *service.Engine,
	templates *service.TemplateRegistry,
	groq *service.GroqClient,
	portfolioCache *cache.PortfolioCache,
	sessions sessionFinder,
	analytics generationLogger,
) *GenerateHandler {
	return &GenerateHandler{
		engine:    engine,
		templates: templates,
		groq:      groq,
		cache:     portfolioCache,
		sessions:  sessions,
		analytics: analytics,
	}
}

// Generate handles POST /generate
// Renders the session's resume into a full project for the chosen stack,
// optionally refined by the user's prompt
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		SessionID  string `json:"sessionId" binding:"required"`
		Stack      string `json:"stack" binding:"required"`
		TemplateID string `json:"templateId"`
		Prompt     string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and stack are required"})
		return
	}

	if !slices.Contains(service.SupportedStacks, req.Stack) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported stack. Use one of: react, nextjs, vue, svelte."})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
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

	tpl := h.templates.Suggest(session.ResumeData)
	if req.TemplateID != "" {
		tpl, err = h.templates.Get(req.TemplateID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template"})
			return
		}
	}

	resumeJSON, err := json.Marshal(session.ResumeData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize resume data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	started := time.Now()

	cacheKey := cache.Key(req.Prompt+"|"+tpl.ID, string(resumeJSON), req.Stack)
	if files := h.cache.Get(c.Request.Context(), cacheKey); files != nil {
		log.Info().Str("sessionId", req.SessionID).Str("stack", req.Stack).Msg("Portfolio served from cache")
		h.logGeneration(c, userID, &sessionID, req.Stack, tpl.ID, true, started)
		c.JSON(http.StatusOK, gin.H{
			"files":    files,
			"stack":    req.Stack,
			"template": tpl,
			"cached":   true,
		})
		return
	}

	files, err := h.engine.Generate(req.Stack, session.ResumeData, tpl)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate portfolio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
		return
	}

	// Apply the user's prompt as a first refinement pass. A failed
	// refinement still returns the deterministic build.
	if req.Prompt != "" {
		result, refineErr := h.groq.RefinePortfolio(c.Request.Context(), req.Stack, files, req.Prompt)
		if refineErr != nil {
			log.Warn().Err(refineErr).Msg("Prompt refinement failed, returning base build")
		} else {
			files = result.Files
		}
	}

	h.cache.Set(c.Request.Context(), cacheKey, files)
	h.logGeneration(c, userID, &sessionID, req.Stack, tpl.ID, false, started)

	log.Info().
		Str("sessionId", req.SessionID).
		Str("stack", req.Stack).
		Str("template", tpl.ID).
		Int("files", len(files)).
		Msg("Portfolio generated")

	c.JSON(http.StatusOK, gin.H{
		"files":    files,
		"stack":    req.Stack,
		"template": tpl,
		"cached":   false,
	})
}

// logGeneration records the request for usage analytics. Failures are
// logged, never surfaced: analytics must not break generation.
func (h *GenerateHandler) logGeneration(c *gin.Context, userID uuid.UUID, sessionID *uuid.UUID, stack, templateID string, cached bool, started time.Time) {
	err := h.analytics.LogGeneration(c.Request.Context(), &model.GenerationLog{
		UserID:     userID,
		SessionID:  sessionID,
		Stack:      stack,
		TemplateID: templateID,
		Cached:     cached,
		DurationMs: time.Since(started).Milliseconds(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to log generation")
	}
}

// ListTemplates handles GET /templates
func (h *GenerateHandler) ListTemplates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	templates, total := h.templates.List(limit, offset)
	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// SuggestTemplate handles POST /templates/suggest
func (h *GenerateHandler) SuggestTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
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

	c.JSON(http.StatusOK, h.templates.Suggest(session.ResumeData))
}

// RandomTemplate handles GET /templates/random
func (h *GenerateHandler) RandomTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.templates.Random())
}
