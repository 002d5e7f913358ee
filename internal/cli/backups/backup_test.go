package backups

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/storage/postgres"
	"github.com/julianstephens/habitbreaker/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.NewContext(store)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: habitbreaker-") {
		t.Errorf("unexpected create output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("expected one backup, got:\n%s", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestContext(t)
	bg := context.Background()

	if _, err := ctx.Tracker.CreateHabit(bg, 1, "smoking"); err != nil {
		t.Fatal(err)
	}
	mgr, err := manager(ctx)
	if err != nil {
		t.Fatal(err)
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := ctx.Tracker.CreateHabit(bg, 1, "sugar"); err != nil {
		t.Fatal(err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Previous database saved as:") {
		t.Errorf("expected pre-restore backup notice, got:\n%s", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	habits, err := ctx.Tracker.Habits(bg, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 1 || habits[0].Name != "smoking" {
		t.Errorf("habits after restore = %+v, want only smoking", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&BackupRestoreCmd{BackupFile: "habitbreaker-19700101-000000.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := cli.NewContext(postgres.New("postgres://bot@localhost:5432/habits"))

	for name, cmd := range map[string]interface{ Run(*cli.Context) error }{
		"create":  &BackupCreateCmd{},
		"list":    &BackupListCmd{},
		"restore": &BackupRestoreCmd{BackupFile: "x", Yes: true},
	} {
		if err := cmd.Run(ctx); !errors.Is(err, errNotSQLite) {
			t.Errorf("%s: error = %v, want %v", name, err, errNotSQLite)
		}
	}
}
