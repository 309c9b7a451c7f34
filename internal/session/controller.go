package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/task"
)

// Completion describes one mark of a task as done.
type Completion struct {
	Task task.ID

	// NewlyCompleted is false when the task was already done today.
	NewlyCompleted bool

	// Score is today's score after the mark.
	Score int

	// PerfectDay reports whether today now has every task done.
	PerfectDay bool
}

// Celebrate reports whether this mark is the one that finished the day.
// Replays of an already-completed task never celebrate.
func (c Completion) Celebrate() bool {
	return c.NewlyCompleted && c.PerfectDay
}

// Snapshot is a read-only copy of the controller state for display.
type Snapshot struct {
	Email     string
	SessionID string
	Today     string
	Completed map[task.ID]bool
	Score     int
	Streak    int
	History   progress.History

	// Unsaved is set while the last save failed and no later save has
	// succeeded. Local state is ahead of the service until then.
	Unsaved bool
}

// LoggedIn reports whether the snapshot belongs to a session.
func (s Snapshot) LoggedIn() bool { return s.Email != "" }

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for date keys.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithMarker sets where the logged-in email is remembered.
func WithMarker(m Marker) Option {
	return func(c *Controller) { c.marker = m }
}

// Controller tracks one user's day. Local state changes before the
// service confirms a save: a failed save leaves the change in place,
// flags the session unsaved and returns *apperr.UnavailableError. Nothing
// is retried automatically; Persist saves again on request.
//
// Methods are safe for concurrent use so saves can run off the UI loop.
type Controller struct {
	remote Remote
	marker Marker
	logger *zap.Logger
	now    func() time.Time

	// saveMu orders saves so each one sends the newest history.
	saveMu sync.Mutex

	mu        sync.Mutex
	email     string
	sessionID string
	today     string
	completed map[task.ID]bool
	history   progress.History
	version   uint64
	unsaved   bool
}

// New returns a logged-out controller.
func New(remote Remote, opts ...Option) *Controller {
	c := &Controller{
		remote:    remote,
		marker:    &memMarker{},
		logger:    zap.NewNop(),
		now:       time.Now,
		completed: map[task.ID]bool{},
		history:   progress.History{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("session")
	return c
}

// ValidateEmail accepts any address containing "@".
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return apperr.Invalid("email", "enter a valid email address")
	}
	return nil
}

// Login fetches or creates the record for email and starts a session on
// it. Surrounding whitespace is ignored; the address is otherwise kept
// exactly as typed.
func (c *Controller) Login(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	rec, err := c.remote.Login(ctx, email)
	if err != nil {
		c.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return err
	}
	c.adopt(email, rec)
	if err := c.marker.Save(email); err != nil {
		c.logger.Warn("remember session", zap.Error(err))
	}
	return nil
}

// Resume restores the remembered session. It returns false with a nil
// error when nothing is remembered. An unknown email forgets the marker
// and returns the *apperr.NotFoundError; an unreachable service keeps it.
func (c *Controller) Resume(ctx context.Context) (bool, error) {
	email, err := c.marker.Load()
	if err != nil {
		return false, fmt.Errorf("load session marker: %w", err)
	}
	if email == "" {
		return false, nil
	}
	rec, err := c.remote.Fetch(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		if cerr := c.marker.Clear(); cerr != nil {
			c.logger.Warn("forget session", zap.Error(cerr))
		}
		return false, err
	}
	if err != nil {
		return false, err
	}
	c.adopt(email, rec)
	return true, nil
}

// adopt replaces the local mirrors with rec.
func (c *Controller) adopt(email string, rec progress.UserRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.email = email
	c.sessionID = uuid.NewString()
	c.history = rec.History.Clone()
	if c.history == nil {
		c.history = progress.History{}
	}
	c.today = progress.DateKey(c.now())
	c.completed = c.todayCompleted()
	c.version++
	c.unsaved = false
	c.logger.Info("session started",
		zap.String("session_id", c.sessionID),
		zap.String("email", email),
		zap.Int("days", len(c.history)),
		zap.Int("done_today", len(c.completed)))
}

// todayCompleted copies the completed set recorded under c.today.
func (c *Controller) todayCompleted() map[task.ID]bool {
	done := map[task.ID]bool{}
	if rec, ok := c.history[c.today]; ok {
		maps.Copy(done, rec.Completed)
	}
	return done
}

// rollover re-seeds the completed set when the date has changed since it
// was loaded.
func (c *Controller) rollover() {
	today := progress.DateKey(c.now())
	if today == c.today {
		return
	}
	c.logger.Info("day changed", zap.String("from", c.today), zap.String("to", today))
	c.today = today
	c.completed = c.todayCompleted()
}

// Record marks id done today in local state only and returns the result.
// Marking an already-done task again is a replay: the record is rewritten
// unchanged and NewlyCompleted is false.
func (c *Controller) Record(id task.ID) (Completion, error) {
	if !task.Valid(id) {
		return Completion{}, apperr.Invalid("task", fmt.Sprintf("unknown task %q", id))
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollover()
	newly := !c.completed[id]
	c.completed[id] = true
	rec := progress.NewDayRecord(c.completed)
	c.history[c.today] = rec
	c.version++

	c.logger.Debug("task marked",
		zap.String("session_id", c.sessionID),
		zap.String("task", string(id)),
		zap.Bool("new", newly),
		zap.Int("score", rec.Score))
	return Completion{
		Task:           id,
		NewlyCompleted: newly,
		Score:          rec.Score,
		PerfectDay:     rec.Perfect(),
	}, nil
}

// MarkComplete records id and saves. The completion is returned even when
// the save fails.
func (c *Controller) MarkComplete(ctx context.Context, id task.ID) (Completion, error) {
	comp, err := c.Record(id)
	if err != nil {
		return comp, err
	}
	return comp, c.Persist(ctx)
}

// Persist writes the whole local history to the service. It is a no-op
// when logged out.
func (c *Controller) Persist(ctx context.Context) error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	email, sessionID, version := c.email, c.sessionID, c.version
	h := c.history.Clone()
	c.mu.Unlock()
	if email == "" {
		return nil
	}

	err := c.remote.SaveHistory(ctx, email, h)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID != sessionID {
		// Logged out or switched user while saving.
		return err
	}
	if err != nil {
		c.unsaved = true
		c.logger.Warn("save failed", zap.String("session_id", sessionID), zap.Error(err))
		var ue *apperr.UnavailableError
		if !errors.As(err, &ue) {
			err = &apperr.UnavailableError{Op: "save progress", Err: err}
		}
		return err
	}
	if version == c.version {
		c.unsaved = false
	}
	return nil
}

// Logout forgets the session locally. Stored data is untouched.
func (c *Controller) Logout() {
	c.mu.Lock()
	if c.email != "" {
		c.logger.Info("session ended", zap.String("session_id", c.sessionID))
	}
	c.email = ""
	c.sessionID = ""
	c.today = ""
	c.completed = map[task.ID]bool{}
	c.history = progress.History{}
	c.version++
	c.unsaved = false
	c.mu.Unlock()

	if err := c.marker.Clear(); err != nil {
		c.logger.Warn("forget session", zap.Error(err))
	}
}

// Snapshot returns a copy of the current state. A date change since the
// last mark is applied first.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.email != "" {
		c.rollover()
	}
	return Snapshot{
		Email:     c.email,
		SessionID: c.sessionID,
		Today:     progress.DateKey(now),
		Completed: maps.Clone(c.completed),
		Score:     progress.ScoreOf(c.completed),
		Streak:    progress.Streak(c.history, now),
		History:   c.history.Clone(),
		Unsaved:   c.unsaved,
	}
}

// Done reports whether id is completed today.
func (c *Controller) Done(id task.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed[id]
}
