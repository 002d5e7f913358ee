package postgres

import (
	"context"

	"github.com/julianstephens/habitbreaker/internal/models"
)

func (s *Store) GetDailyReports(ctx context.Context, owner int64, limit int) ([]models.DailyReport, error) {
	// LIMIT NULL means no limit in PostgreSQL.
	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, owner, habit_id, occurred_at, outcome
FROM daily_reports WHERE owner = $1
ORDER BY id DESC LIMIT $2`, owner, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.DailyReport
	for rows.Next() {
		var r models.DailyReport
		var outcome string
		if err := rows.Scan(&r.ID, &r.Owner, &r.HabitID, &r.OccurredAt, &outcome); err != nil {
			return nil, err
		}
		r.Outcome, err = models.ParseOutcome(outcome)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *Store) CountDailyReports(ctx context.Context, habitID int64) (int, int, error) {
	var success, breaks int
	err := s.db.QueryRowContext(ctx, `
SELECT
	COUNT(*) FILTER (WHERE outcome = 'success'),
	COUNT(*) FILTER (WHERE outcome = 'break')
FROM daily_reports WHERE habit_id = $1`, habitID).Scan(&success, &breaks)
	return success, breaks, err
}
