package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/foliogen-api/internal/model"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create records an uploaded resume and its extracted data
func (r *SessionRepo) Create(ctx context.Context, userID *uuid.UUID, filename string, data model.ResumeData, prompt string) (*model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (user_id, resume_filename, resume_data, user_prompt)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, resume_filename, resume_data, user_prompt, created_at
	`, userID, filename, data, prompt).Scan(
		&s.ID, &s.UserID, &s.ResumeFilename, &s.ResumeData, &s.UserPrompt, &s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return &s, nil
}

// FindByID looks up a session, nil if none exists
func (r *SessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, resume_filename, resume_data, user_prompt, created_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(
		&s.ID, &s.UserID, &s.ResumeFilename, &s.ResumeData, &s.UserPrompt, &s.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding session by id: %w", err)
	}
	return &s, nil
}

// UpdateResumeData replaces the session's extracted resume content
func (r *SessionRepo) UpdateResumeData(ctx context.Context, id uuid.UUID, data model.ResumeData) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE sessions SET resume_data = $2 WHERE id = $1
	`, id, data)
	if err != nil {
		return fmt.Errorf("updating resume data: %w", err)
	}
	return nil
}

// AppendMessage stores one chat turn for the session
func (r *SessionRepo) AppendMessage(ctx context.Context, sessionID uuid.UUID, role, content string) (*model.ChatMessage, error) {
	var m model.ChatMessage
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, session_id, role, content, created_at
	`, sessionID, role, content).Scan(
		&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("appending chat message: %w", err)
	}
	return &m, nil
}

// ListMessages returns the session's chat history, oldest first
func (r *SessionRepo) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
