package habits

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitbreaker/internal/cli"
)

// UserFlags selects the chat identity a command acts for.
type UserFlags struct {
	User int64 `help:"Chat identity of the user." short:"u" required:""`
}

type StartCmd struct {
	UserFlags
	Name   string `help:"Display name, stored on first contact only."`
	Handle string `help:"Handle, stored on first contact only."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	if err := ctx.Registry.Register(context.Background(), c.User, c.Name, c.Handle); err != nil {
		return err
	}

	u, err := ctx.Registry.Get(context.Background(), c.User)
	if err != nil {
		return err
	}
	ctx.Printf("✓ User %d registered on %s\n", u.Identity, u.RegisteredAt.Local().Format("2006-01-02"))
	if u.DisplayName != "" {
		ctx.Printf("  Name: %s\n", u.DisplayName)
	}
	if u.Handle != "" {
		ctx.Printf("  Handle: @%s\n", u.Handle)
	}
	return nil
}

// identityLabel renders a user for command output.
func identityLabel(id int64) string {
	return fmt.Sprintf("user %d", id)
}
