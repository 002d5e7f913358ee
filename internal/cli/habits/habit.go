package habits

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/constants"
)

type HabitCmd struct {
	New  HabitNewCmd  `cmd:"" help:"Start tracking a new habit. It becomes the active habit."`
	Show HabitShowCmd `cmd:"" help:"Show the active habit." default:"withargs"`
	List HabitListCmd `cmd:"" help:"List every habit, newest first."`
}

type HabitNewCmd struct {
	UserFlags
	Name string `arg:"" optional:"" help:"Habit to quit. Prompts when omitted."`
}

func (c *HabitNewCmd) Run(ctx *cli.Context) error {
	name := c.Name
	if name == "" {
		err := huh.NewInput().
			Title("Which bad habit do you want to beat?").
			Placeholder("smoking, nail biting, procrastination").
			CharLimit(constants.MaxHabitNameLength).
			Value(&name).
			Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
	}

	habit, err := ctx.Tracker.CreateHabit(context.Background(), c.User, name)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Now tracking %q for %s\n", habit.Name, identityLabel(c.User))
	return nil
}

type HabitShowCmd struct {
	UserFlags
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Tracker.GetActiveHabit(context.Background(), c.User)
	if err != nil {
		return err
	}
	if habit == nil {
		ctx.Printf("No active habit for %s. Start one with '%s habit new'.\n", identityLabel(c.User), constants.AppName)
		return nil
	}

	ctx.Printf("%s\n", habit.Name)
	ctx.Printf("  Started:        %s\n", habit.StartedAt.Local().Format(constants.DateTimeFormat))
	ctx.Printf("  Current streak: %d\n", habit.CurrentStreak)
	ctx.Printf("  Longest streak: %d\n", habit.LongestStreak)
	return nil
}

type HabitListCmd struct {
	UserFlags
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits(context.Background(), c.User)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for i, h := range habits {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		ctx.Printf("%s %-30s started %s  streak %d/%d  days %d  breaks %d\n",
			marker, h.Name, h.StartedAt.Local().Format("2006-01-02"),
			h.CurrentStreak, h.LongestStreak, h.TotalDays, h.BreakDays)
	}
	return nil
}
