package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/foliogen-api/internal/model"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

// Save stores a generated portfolio for the user
func (r *ProjectRepo) Save(ctx context.Context, p *model.Project) (*model.Project, error) {
	var out model.Project
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (user_id, session_id, name, stack, files, customization)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, session_id, name, stack, files, customization, created_at, updated_at
	`, p.UserID, p.SessionID, p.Name, p.Stack, p.Files, p.Customization).Scan(
		&out.ID, &out.UserID, &out.SessionID, &out.Name, &out.Stack,
		&out.Files, &out.Customization, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return &out, nil
}

// FindByID looks up a project owned by the user, nil if none exists
func (r *ProjectRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, session_id, name, stack, files, customization, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&p.ID, &p.UserID, &p.SessionID, &p.Name, &p.Stack,
		&p.Files, &p.Customization, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding project by id: %w", err)
	}
	return &p, nil
}

// ListByUser returns the user's saved projects without the file maps,
// newest first
func (r *ProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, session_id, name, stack, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.SessionID, &p.Name, &p.Stack, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateFiles replaces a project's file map after a refinement pass
func (r *ProjectRepo) UpdateFiles(ctx context.Context, userID, id uuid.UUID, files map[string]string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects SET files = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`, id, userID, files)
	if err != nil {
		return fmt.Errorf("updating project files: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project owned by the user
func (r *ProjectRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
