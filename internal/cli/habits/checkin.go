package habits

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/constants"
	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/models"
)

// noHabitError rewrites ErrNoActiveHabit into an actionable message.
func noHabitError(err error) error {
	if errors.Is(err, apperrors.ErrNoActiveHabit) {
		return fmt.Errorf("%w: create one with '%s habit new'", err, constants.AppName)
	}
	return err
}

type SuccessCmd struct {
	UserFlags
}

func (c *SuccessCmd) Run(ctx *cli.Context) error {
	streak, err := ctx.Tracker.RecordSuccess(context.Background(), c.User)
	if err != nil {
		return noHabitError(err)
	}
	ctx.Printf("🎉 Success recorded. Current streak: %d day(s)\n", streak)
	return nil
}

type BreakCmd struct {
	UserFlags
}

func (c *BreakCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Tracker.RecordBreak(context.Background(), c.User); err != nil {
		return noHabitError(err)
	}
	ctx.Println("😔 Break recorded. The streak starts over; the longest streak is kept.")
	return nil
}

type StatsCmd struct {
	UserFlags
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Tracker.GetStats(context.Background(), c.User)
	if err != nil {
		return noHabitError(err)
	}

	ctx.Printf("📊 %s\n", stats.Name)
	ctx.Printf("  Current streak:  %d\n", stats.CurrentStreak)
	ctx.Printf("  Longest streak:  %d\n", stats.LongestStreak)
	ctx.Printf("  Successful days: %d\n", stats.TotalDays)
	ctx.Printf("  Break days:      %d\n", stats.BreakDays)
	ctx.Printf("  Success rate:    %s%%\n", strconv.FormatFloat(stats.SuccessRate, 'f', 1, 64))
	return nil
}

type HistoryCmd struct {
	UserFlags
	Limit int `help:"Number of check-ins to show; 0 shows all." default:"${history_limit}"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	reports, err := ctx.Tracker.History(context.Background(), c.User, c.Limit)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		ctx.Println("No check-ins yet.")
		return nil
	}

	for _, r := range reports {
		icon := "✅"
		if r.Outcome == models.OutcomeBreak {
			icon = "😔"
		}
		ctx.Printf("%s  %s %s\n", r.OccurredAt.Local().Format(constants.DateTimeFormat), icon, r.Outcome)
	}
	return nil
}
