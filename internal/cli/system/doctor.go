package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/habitbreaker/internal/backup"
	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/keyring"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks report problems without failing the command.
	warnOnly bool
	// opensDB marks the check that later needsDB checks depend on.
	opensDB bool
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", opensDB: true, run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Habit counters", needsDB: true, run: checkHabitCounters},
	{name: "Report log", needsDB: true, run: checkReportLog},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := 0
	dbReachable := false
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.opensDB {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			failed++
		}
	}

	ctx.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", current, latest)
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d; run 'migrate'", current, latest)
	}
	return nil
}

// checkHabitCounters verifies the streak invariants on every habit.
func checkHabitCounters(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(context.Background())
	if err != nil {
		return err
	}

	var problems []error
	for _, h := range habits {
		if h.CurrentStreak < 0 || h.TotalDays < 0 || h.BreakDays < 0 {
			problems = append(problems, fmt.Errorf("habit %d has negative counters", h.ID))
		}
		if h.LongestStreak < h.CurrentStreak {
			problems = append(problems, fmt.Errorf("habit %d: longest streak %d < current streak %d", h.ID, h.LongestStreak, h.CurrentStreak))
		}
		if h.CurrentStreak > h.TotalDays {
			problems = append(problems, fmt.Errorf("habit %d: current streak %d exceeds successful days %d", h.ID, h.CurrentStreak, h.TotalDays))
		}
	}
	return errors.Join(problems...)
}

// checkReportLog compares each habit's counters with its daily report rows.
func checkReportLog(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(context.Background())
	if err != nil {
		return err
	}

	var problems []error
	for _, h := range habits {
		success, breaks, err := ctx.Store.CountDailyReports(context.Background(), h.ID)
		if err != nil {
			return err
		}
		if success != h.TotalDays || breaks != h.BreakDays {
			problems = append(problems, fmt.Errorf("habit %d: counters %d/%d but log has %d successes and %d breaks",
				h.ID, h.TotalDays, h.BreakDays, success, breaks))
		}
	}
	return errors.Join(problems...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("backups are only managed for SQLite storage")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s; create one with 'backup create'", mgr.GetBackupDir())
	}
	return nil
}

func checkKeyring(_ *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
