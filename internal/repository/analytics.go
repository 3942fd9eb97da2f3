package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourusername/foliogen-api/internal/model"
)

type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// LogGeneration records one generation request for usage analytics
func (r *AnalyticsRepo) LogGeneration(ctx context.Context, entry *model.GenerationLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO generation_logs (user_id, session_id, stack, template_id, cached, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.UserID, entry.SessionID, entry.Stack, entry.TemplateID, entry.Cached, entry.DurationMs)
	if err != nil {
		return fmt.Errorf("logging generation: %w", err)
	}
	return nil
}

// CountByStack returns how many generations each stack has served for the
// user, most used first
func (r *AnalyticsRepo) CountByStack(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT stack, COUNT(*)
		FROM generation_logs
		WHERE user_id = $1
		GROUP BY stack
		ORDER BY COUNT(*) DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("counting generations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stack string
		var n int
		if err := rows.Scan(&stack, &n); err != nil {
			return nil, fmt.Errorf("scanning generation count: %w", err)
		}
		counts[stack] = n
	}
	return counts, rows.Err()
}
