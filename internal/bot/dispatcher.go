package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/julianstephens/habitbreaker/internal/constants"
	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/models"
)

// Registrar records first contact with a user.
type Registrar interface {
	Register(ctx context.Context, identity int64, displayName, handle string) error
}

// HabitTracker is the part of the tracker the dispatcher drives.
type HabitTracker interface {
	CreateHabit(ctx context.Context, identity int64, name string) (models.Habit, error)
	RecordSuccess(ctx context.Context, identity int64) (int, error)
	RecordBreak(ctx context.Context, identity int64) (bool, error)
	GetStats(ctx context.Context, identity int64) (*models.Stats, error)
}

type Dispatcher struct {
	registry Registrar
	tracker  HabitTracker

	pick func(n int) int
	now  func() time.Time

	limit rate.Limit
	burst int

	mu        sync.Mutex
	pending   map[int64]bool
	limiters  map[int64]*rate.Limiter
	lastSweep time.Time
}

type Option func(*Dispatcher)

// WithRateLimit overrides the per-identity command rate.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(d *Dispatcher) {
		d.limit = limit
		d.burst = burst
	}
}

// WithRandom sets the function used to pick a motivation line; it must return
// a value in [0, n).
func WithRandom(pick func(n int) int) Option {
	return func(d *Dispatcher) {
		d.pick = pick
	}
}

func NewDispatcher(registry Registrar, tracker HabitTracker, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		tracker:  tracker,
		pick:     rand.IntN,
		now:      time.Now,
		limit:    rate.Limit(constants.CommandsPerSecond),
		burst:    constants.CommandBurst,
		pending:  make(map[int64]bool),
		limiters: make(map[int64]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) allow(identity int64) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastSweep) >= constants.LimiterSweepInterval {
		d.sweepLimiters(now)
	}

	l, ok := d.limiters[identity]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.limiters[identity] = l
	}
	return l.AllowN(now, 1)
}

// sweepLimiters drops limiters that have refilled to their burst; a full
// limiter is indistinguishable from a new one. Callers hold d.mu.
func (d *Dispatcher) sweepLimiters(now time.Time) {
	for identity, l := range d.limiters {
		if l.TokensAt(now) >= float64(d.burst) {
			delete(d.limiters, identity)
		}
	}
	d.lastSweep = now
}

// takePending reports whether identity was asked for a habit name and clears
// the pending step.
func (d *Dispatcher) takePending(identity int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending[identity] {
		delete(d.pending, identity)
		return true
	}
	return false
}

func (d *Dispatcher) setPending(identity int64) {
	d.mu.Lock()
	d.pending[identity] = true
	d.mu.Unlock()
}

// command extracts the command from text, dropping a @botname suffix and any
// trailing keyboard decoration. It returns "" for plain text.
func (d *Dispatcher) command(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

// Handle processes one message and returns the reply to send.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) Reply {
	rlog := logger.With("request_id", uuid.NewString(), "identity", msg.Identity)

	if !d.allow(msg.Identity) {
		rlog.Warn("Rate limit exceeded")
		return Reply{Text: constants.MsgSlowDown}
	}

	cmd := d.command(msg.Text)

	// A pending /new_habit consumes the next plain message as the name. Any
	// command cancels it.
	if d.takePending(msg.Identity) && cmd == "" {
		rlog.Debug("Handling habit name")
		return d.createHabit(ctx, rlog, msg)
	}

	if cmd == "" && slices.Contains(constants.Greetings, strings.ToLower(strings.TrimSpace(msg.Text))) {
		cmd = constants.CmdStart
	}

	rlog.Debug("Handling message", "command", cmd)

	switch cmd {
	case constants.CmdStart:
		return d.start(ctx, rlog, msg)
	case constants.CmdHelp:
		return Reply{Text: constants.MsgHelp, Keyboard: constants.MainKeyboard}
	case constants.CmdNewHabit:
		d.setPending(msg.Identity)
		return Reply{Text: constants.MsgAskHabitName}
	case constants.CmdSuccess:
		return d.success(ctx, rlog, msg)
	case constants.CmdBreak:
		return d.recordBreak(ctx, rlog, msg)
	case constants.CmdStats:
		return d.stats(ctx, rlog, msg)
	default:
		return Reply{Text: constants.MsgNotUnderstood}
	}
}

func (d *Dispatcher) start(ctx context.Context, rlog *log.Logger, msg Message) Reply {
	if err := d.registry.Register(ctx, msg.Identity, msg.DisplayName, msg.Handle); err != nil {
		return errorReply(rlog, "register", err)
	}
	return Reply{Text: constants.MsgStart, Keyboard: constants.MainKeyboard}
}

func (d *Dispatcher) createHabit(ctx context.Context, rlog *log.Logger, msg Message) Reply {
	habit, err := d.tracker.CreateHabit(ctx, msg.Identity, msg.Text)
	if err != nil {
		return errorReply(rlog, "create habit", err)
	}
	return Reply{
		Text:     fmt.Sprintf(constants.MsgHabitCreated, escapeMarkdown(habit.Name)),
		Markdown: true,
		Keyboard: constants.MainKeyboard,
	}
}

func (d *Dispatcher) success(ctx context.Context, rlog *log.Logger, msg Message) Reply {
	streak, err := d.tracker.RecordSuccess(ctx, msg.Identity)
	if err != nil {
		return errorReply(rlog, "record success", err)
	}
	motivation := constants.Motivation[d.pick(len(constants.Motivation))]
	return Reply{
		Text:     fmt.Sprintf(constants.MsgSuccess, streak) + "\n\n" + motivation,
		Markdown: true,
	}
}

func (d *Dispatcher) recordBreak(ctx context.Context, rlog *log.Logger, msg Message) Reply {
	if _, err := d.tracker.RecordBreak(ctx, msg.Identity); err != nil {
		return errorReply(rlog, "record break", err)
	}
	return Reply{Text: constants.MsgBreak}
}

func (d *Dispatcher) stats(ctx context.Context, rlog *log.Logger, msg Message) Reply {
	stats, err := d.tracker.GetStats(ctx, msg.Identity)
	if err != nil {
		return errorReply(rlog, "get stats", err)
	}
	return Reply{Text: FormatStats(stats), Markdown: true}
}

// FormatStats renders stats as the Markdown block shown by /stats.
func FormatStats(s *models.Stats) string {
	return fmt.Sprintf(constants.MsgStats,
		escapeMarkdown(s.Name),
		s.CurrentStreak,
		s.LongestStreak,
		s.TotalDays,
		s.BreakDays,
		strconv.FormatFloat(s.SuccessRate, 'f', 1, 64),
	)
}

func errorReply(rlog *log.Logger, op string, err error) Reply {
	switch {
	case errors.Is(err, apperrors.ErrNoActiveHabit):
		return Reply{Text: constants.MsgNoHabit}
	case errors.Is(err, apperrors.ErrNameTooLong):
		return Reply{Text: fmt.Sprintf(constants.MsgNameTooLong, constants.MaxHabitNameLength)}
	case errors.Is(err, apperrors.ErrNameMarkup):
		return Reply{Text: constants.MsgNameMarkup}
	case errors.Is(err, apperrors.ErrEmptyName):
		return Reply{Text: constants.MsgEmptyName}
	case errors.Is(err, apperrors.ErrValidation):
		rlog.Debug("Rejected input", "op", op, "error", err)
		return Reply{Text: constants.MsgInvalidName}
	default:
		rlog.Error("Command failed", "op", op, "error", err)
		return Reply{Text: constants.MsgGenericError}
	}
}
