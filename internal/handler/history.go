package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/repository"
	"github.com/yourusername/foliogen-api/internal/service"
)

type HistoryHandler struct {
	projects projectStore
}

func NewHistoryHandler(projects projectStore) *HistoryHandler {
	return &HistoryHandler{projects: projects}
}

// List handles GET /history
// Returns the user's saved projects without their file maps
func (h *HistoryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	projects, err := h.projects.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

// Get handles GET /history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	project, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

// Save handles POST /history
// Stores a generated portfolio under the user's account
func (h *HistoryHandler) Save(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req struct {
		SessionID     string            `json:"sessionId"`
		Name          string            `json:"name" binding:"required"`
		Stack         string            `json:"stack" binding:"required"`
		Files         map[string]string `json:"files" binding:"required"`
		Customization map[string]any    `json:"customization"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, stack and files are required"})
		return
	}

	var sessionID *uuid.UUID
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}
		sessionID = &parsed
	}

	project, err := h.projects.Save(c.Request.Context(), &model.Project{
		UserID:        userID,
		SessionID:     sessionID,
		Name:          req.Name,
		Stack:         req.Stack,
		Files:         req.Files,
		Customization: req.Customization,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to save project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}

	log.Info().Str("projectId", project.ID.String()).Str("stack", project.Stack).Msg("Project saved")
	c.JSON(http.StatusCreated, project)
}

// Delete handles DELETE /history/:id
func (h *HistoryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), userID, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to delete project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Archive handles GET /history/:id/archive
// Streams the project as a downloadable ZIP
func (h *HistoryHandler) Archive(c *gin.Context) {
	project, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if len(project.Files) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Project has no files to export"})
		return
	}

	archive, err := service.BuildArchive(project.Name, project.Files)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build project archive")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, project.Name))
	c.Data(http.StatusOK, "application/zip", archive)
}

// loadOwned resolves the :id param to a project the user owns, writing the
// error response itself on failure
func (h *HistoryHandler) loadOwned(c *gin.Context) (*model.Project, bool) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return nil, false
	}

	project, err := h.projects.FindByID(c.Request.Context(), userID, projectID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		return nil, false
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}
	return project, true
}
