package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/model"
	"github.com/yourusername/foliogen-api/internal/repository"
	"github.com/yourusername/foliogen-api/internal/service"
)

type ResumeHandler struct {
	groq     *service.GroqClient
	sessions *repository.SessionRepo
}

func NewResumeHandler(groq *service.GroqClient, sessions *repository.SessionRepo) *ResumeHandler {
	return &ResumeHandler{groq: groq, sessions: sessions}
}

// Upload handles POST /resume/upload
// Accepts a PDF via multipart form, extracts its text, runs structured
// extraction, and opens a session holding the result
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are supported"})
		return
	}

	// Limit to 10MB
	if header.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	// Validate PDF magic bytes (header must start with %PDF)
	if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF file"})
		return
	}

	text, err := extractPDFText(fileBytes)
	if err != nil {
		log.Error().Err(err).Msg("Failed to extract text from PDF")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Could not extract text from this PDF. It may be image-based or corrupted.",
		})
		return
	}

	text = strings.TrimSpace(text)
	if len(text) < 50 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Very little text was extracted. This PDF may be image-based (scanned). Try a text-based PDF.",
		})
		return
	}

	// Cap at 30K bytes before sending to the LLM
	text = truncateUTF8(text, 30000)

	data, err := h.groq.ParseResume(c.Request.Context(), text)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse resume")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Resume analysis failed. Please try again."})
		return
	}

	// Resumes without a summary get one written for them. A failed
	// suggestion just leaves the field empty.
	if data.Summary == "" {
		summary, sugErr := h.groq.SuggestSummary(c.Request.Context(), *data)
		if sugErr != nil {
			log.Warn().Err(sugErr).Msg("Failed to suggest resume summary")
		} else {
			data.Summary = summary
		}
	}

	prompt := c.Request.FormValue("prompt")
	session, err := h.sessions.Create(c.Request.Context(), &userID, header.Filename, *data, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save resume data"})
		return
	}

	log.Info().
		Str("sessionId", session.ID.String()).
		Str("filename", header.Filename).
		Int("textLen", len(text)).
		Msg("Resume uploaded and parsed")

	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /resume/:sessionId
func (h *ResumeHandler) GetSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	session, err := h.loadOwnedSession(c, userID)
	if err != nil {
		return // response already written
	}

	c.JSON(http.StatusOK, session)
}

// UpdateSession handles PATCH /resume/:sessionId
// Lets the user correct extracted fields before generating
func (h *ResumeHandler) UpdateSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	session, err := h.loadOwnedSession(c, userID)
	if err != nil {
		return
	}

	data := session.ResumeData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resume data"})
		return
	}
	if data.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.sessions.UpdateResumeData(c.Request.Context(), session.ID, data); err != nil {
		log.Error().Err(err).Msg("Failed to update resume data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save changes"})
		return
	}

	session.ResumeData = data
	c.JSON(http.StatusOK, session)
}

// loadOwnedSession resolves the :sessionId param to a session the user owns,
// writing the error response itself on failure
func (h *ResumeHandler) loadOwnedSession(c *gin.Context, userID uuid.UUID) (*model.Session, error) {
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return nil, err
	}

	session, err := h.sessions.FindByID(c.Request.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil, err
	}
	if session == nil || session.UserID == nil || *session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

// ── Helpers ──────────────────────────────────────────

// truncateUTF8 caps s at limit bytes without splitting a multi-byte rune
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func extractPDFText(data []byte) (string, error) {
	// Write to temp file — ledongthuc/pdf requires a file reader
	tmpFile, err := os.CreateTemp("", "resume-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	f, reader, err := pdf.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
