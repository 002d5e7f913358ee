package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/storage/sqlite"
)

func setupTestTracker(t *testing.T) (*Tracker, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tr := New(store)
	tr.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return tr, store
}

func mustCreate(t *testing.T, tr *Tracker, identity int64, name string) {
	t.Helper()
	if _, err := tr.CreateHabit(context.Background(), identity, name); err != nil {
		t.Fatalf("CreateHabit(%q) failed: %v", name, err)
	}
}

func TestCreateHabit(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()

	h, err := tr.CreateHabit(ctx, 1, "  smoking  ")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if h.Name != "smoking" {
		t.Errorf("name = %q, want trimmed", h.Name)
	}
	if h.CurrentStreak != 0 || h.LongestStreak != 0 || h.TotalDays != 0 || h.BreakDays != 0 {
		t.Errorf("new habit not zeroed: %+v", h)
	}
	if !h.StartedAt.Equal(tr.now()) {
		t.Errorf("started_at = %v, want %v", h.StartedAt, tr.now())
	}
}

func TestCreateHabitNames(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "sugar", want: "sugar"},
		{name: "unicode", input: "курение", want: "курение"},
		{name: "ampersand kept", input: "cake & cookies", want: "cake & cookies"},
		{name: "surrounding space trimmed", input: "  vaping \n", want: "vaping"},
		{name: "comparison kept", input: "x > y", want: "x > y"},
		{name: "quotes kept", input: `"just one more" episode`, want: `"just one more" episode`},
		{name: "markup", input: "<b>doomscrolling</b>", wantErr: true},
		{name: "less than", input: "x<y", wantErr: true},
		{name: "tag inside word", input: "a<b>c", wantErr: true},
		{name: "invalid utf-8", input: "sug\xffar", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " \t\n ", wantErr: true},
		{name: "only markup", input: "<i></i>", wantErr: true},
		{name: "too long", input: strings.Repeat("x", 201), wantErr: true},
		{name: "max length", input: strings.Repeat("я", 200), want: strings.Repeat("я", 200)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := setupTestTracker(t)
			h, err := tr.CreateHabit(context.Background(), int64(i+1), tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateHabit failed: %v", err)
			}
			if h.Name != tt.want {
				t.Errorf("name = %q, want %q", h.Name, tt.want)
			}
		})
	}
}

func TestInvalidNameLeavesActiveHabit(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()
	mustCreate(t, tr, 1, "smoking")

	if _, err := tr.CreateHabit(ctx, 1, "   "); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	active, err := tr.GetActiveHabit(ctx, 1)
	if err != nil {
		t.Fatalf("GetActiveHabit failed: %v", err)
	}
	if active == nil || active.Name != "smoking" {
		t.Errorf("active habit changed: %+v", active)
	}
}

func TestSecondHabitBecomesActive(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()
	mustCreate(t, tr, 1, "smoking")
	if _, err := tr.RecordSuccess(ctx, 1); err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}
	mustCreate(t, tr, 1, "sugar")

	active, err := tr.GetActiveHabit(ctx, 1)
	if err != nil {
		t.Fatalf("GetActiveHabit failed: %v", err)
	}
	if active.Name != "sugar" || active.TotalDays != 0 {
		t.Errorf("active = %+v, want fresh sugar habit", active)
	}

	habits, err := tr.Habits(ctx, 1)
	if err != nil {
		t.Fatalf("Habits failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(habits))
	}
	if habits[1].Name != "smoking" || habits[1].TotalDays != 1 {
		t.Errorf("old habit not preserved: %+v", habits[1])
	}
}

func TestFirstSuccess(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()
	mustCreate(t, tr, 1, "smoking")

	streak, err := tr.RecordSuccess(ctx, 1)
	if err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}

	stats, err := tr.GetStats(ctx, 1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 || stats.TotalDays != 1 {
		t.Errorf("stats = %+v, want 1/1/1", stats)
	}
}

func TestSuccessBreakSequence(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()
	mustCreate(t, tr, 1, "smoking")

	for _, step := range []string{"success", "success", "break", "success"} {
		var err error
		if step == "success" {
			_, err = tr.RecordSuccess(ctx, 1)
		} else {
			var ok bool
			ok, err = tr.RecordBreak(ctx, 1)
			if err == nil && !ok {
				t.Fatal("RecordBreak returned false")
			}
		}
		if err != nil {
			t.Fatalf("%s failed: %v", step, err)
		}
	}

	stats, err := tr.GetStats(ctx, 1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.CurrentStreak != 1 || stats.LongestStreak != 2 || stats.TotalDays != 3 || stats.BreakDays != 1 {
		t.Errorf("stats = %+v, want current 1 longest 2 total 3 breaks 1", stats)
	}
	if stats.SuccessRate != 75.0 {
		t.Errorf("success rate = %v, want 75.0", stats.SuccessRate)
	}

	history, err := tr.History(ctx, 1, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 4 {
		t.Errorf("expected 4 reports, got %d", len(history))
	}
}

func TestNoActiveHabit(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()

	active, err := tr.GetActiveHabit(ctx, 99)
	if err != nil || active != nil {
		t.Errorf("GetActiveHabit = %v, %v; want nil, nil", active, err)
	}

	stats, err := tr.GetStats(ctx, 99)
	if stats != nil || !errors.Is(err, apperrors.ErrNoActiveHabit) {
		t.Errorf("GetStats = %v, %v; want nil, ErrNoActiveHabit", stats, err)
	}

	if _, err := tr.RecordSuccess(ctx, 99); !errors.Is(err, apperrors.ErrNoActiveHabit) {
		t.Errorf("RecordSuccess err = %v, want ErrNoActiveHabit", err)
	}
	if ok, err := tr.RecordBreak(ctx, 99); ok || !errors.Is(err, apperrors.ErrNoActiveHabit) {
		t.Errorf("RecordBreak = %v, %v; want false, ErrNoActiveHabit", ok, err)
	}

	history, err := tr.History(ctx, 99, 10)
	if err != nil || len(history) != 0 {
		t.Errorf("History = %v, %v; want empty", history, err)
	}
}

func TestConcurrentSuccesses(t *testing.T) {
	tr, _ := setupTestTracker(t)
	ctx := context.Background()
	mustCreate(t, tr, 1, "smoking")
	mustCreate(t, tr, 2, "sugar")

	const perUser = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perUser)
	for i := 0; i < perUser; i++ {
		for _, id := range []int64{1, 2} {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := tr.RecordSuccess(ctx, id)
				errs <- err
			}(id)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("RecordSuccess failed: %v", err)
		}
	}

	for _, id := range []int64{1, 2} {
		stats, err := tr.GetStats(ctx, id)
		if err != nil {
			t.Fatalf("GetStats failed: %v", err)
		}
		if stats.TotalDays != perUser || stats.CurrentStreak != perUser {
			t.Errorf("identity %d: total %d streak %d, want %d", id, stats.TotalDays, stats.CurrentStreak, perUser)
		}
	}
}

func TestStorageFailure(t *testing.T) {
	tr, store := setupTestTracker(t)
	store.GetDB().Close()

	if _, err := tr.CreateHabit(context.Background(), 1, "smoking"); !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("CreateHabit err = %v, want ErrStorage", err)
	}
	if _, err := tr.RecordSuccess(context.Background(), 1); !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("RecordSuccess err = %v, want ErrStorage", err)
	}
}
