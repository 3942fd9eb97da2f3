package model

import (
	"time"

	"github.com/google/uuid"
)

// ── Resume section types ───────────────────────────────

type ResumeExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type ResumeEducation struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ResumeProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

// ResumeData is the structured content extracted from an uploaded resume.
// It drives both the template engine and the LLM generation prompts.
type ResumeData struct {
	Name       string             `json:"name"`
	Title      string             `json:"title"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Summary    string             `json:"summary"`
	Skills     []string           `json:"skills"`
	Projects   []ResumeProject    `json:"projects"`
	Experience []ResumeExperience `json:"experience"`
	Education  []ResumeEducation  `json:"education"`
	Links      map[string]string  `json:"links"`
}

// User represents a Foliogen account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session represents one uploaded resume and its extracted data. Generation
// and chat requests reference the session they operate on.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	UserID         *uuid.UUID `json:"userId,omitempty"`
	ResumeFilename string     `json:"resumeFilename"`
	ResumeData     ResumeData `json:"resumeData"`
	UserPrompt     string     `json:"userPrompt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Project is a saved generated portfolio: the full file map plus the
// template/stack choices that produced it.
type Project struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	SessionID     *uuid.UUID        `json:"sessionId,omitempty"`
	Name          string            `json:"name"`
	Stack         string            `json:"stack"`
	Files         map[string]string `json:"files,omitempty"`
	Customization map[string]any    `json:"customization,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// GenerationLog records one generation request for usage analytics.
type GenerationLog struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	SessionID  *uuid.UUID `json:"sessionId,omitempty"`
	Stack      string     `json:"stack"`
	TemplateID string     `json:"templateId"`
	Cached     bool       `json:"cached"`
	DurationMs int64      `json:"durationMs"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ChatMessage is one turn of a session's refinement conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	Role      string    `json:"role"` // user or assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
