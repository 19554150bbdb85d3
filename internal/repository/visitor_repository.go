package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Zachkp/portfolio/internal/domain"
)

type visitorRepository struct {
	db *sql.DB
}

func NewVisitorRepository(db *sql.DB) domain.VisitorRepository {
	return &visitorRepository{db: db}
}

func (r *visitorRepository) Record(ctx context.Context, v *domain.VisitorMetric) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC())
	return err
}

// Stats aggregates page views relative to now. "Today" is now's UTC
// calendar day.
func (r *visitorRepository) Stats(ctx context.Context, now time.Time) (*domain.VisitorStats, error) {
	stats := &domain.VisitorStats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitors`).Scan(&stats.TotalVisitors); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`).Scan(&stats.UniqueVisitors); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, startOfDay).Scan(&stats.VisitorsToday); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, now.AddDate(0, 0, -7)).Scan(&stats.VisitorsThisWeek); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps domain.PathStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, err
		}
		stats.TopPaths = append(stats.TopPaths, ps)
	}
	return stats, rows.Err()
}

func (r *visitorRepository) Recent(ctx context.Context, limit int) ([]domain.VisitorMetric, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visitors := []domain.VisitorMetric{}
	for rows.Next() {
		var v domain.VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (r *visitorRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
