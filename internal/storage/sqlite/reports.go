package sqlite

import (
	"context"

	"github.com/julianstephens/habitbreaker/internal/models"
)

func (s *Store) GetDailyReports(ctx context.Context, owner int64, limit int) ([]models.DailyReport, error) {
	// A negative LIMIT means no limit in SQLite.
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, habit_id, occurred_at, outcome
		FROM daily_reports WHERE owner = ?
		ORDER BY id DESC LIMIT ?`, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.DailyReport
	for rows.Next() {
		var r models.DailyReport
		var occurredAt, outcome string

		if err := rows.Scan(&r.ID, &r.Owner, &r.HabitID, &occurredAt, &outcome); err != nil {
			return nil, err
		}

		r.OccurredAt, err = parseTime(occurredAt, "occurred_at")
		if err != nil {
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
			COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'break' THEN 1 ELSE 0 END), 0)
		FROM daily_reports WHERE habit_id = ?`, habitID).Scan(&success, &breaks)
	return success, breaks, err
}
