package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/foliogen-api/internal/model"
)

// Store interfaces let handler tests substitute fakes for the pgx-backed
// repositories. The repository types satisfy them as-is.

type sessionFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
}

type sessionStore interface {
	sessionFinder
	AppendMessage(ctx context.Context, sessionID uuid.UUID, role, content string) (*model.ChatMessage, error)
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error)
}

type projectStore interface {
	Save(ctx context.Context, p *model.Project) (*model.Project, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Project, error)
	UpdateFiles(ctx context.Context, userID, id uuid.UUID, files map[string]string) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type generationLogger interface {
	LogGeneration(ctx context.Context, entry *model.GenerationLog) error
}
