// Package store owns the in-memory wellness snapshot. Every mutation is a
// pure transform of a deep copy; the result replaces the current snapshot
// atomically and schedules a debounced write through the persistence
// gateway.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/phoenix-rise/internal/constants"
	"github.com/julianstephens/phoenix-rise/internal/logger"
	"github.com/julianstephens/phoenix-rise/internal/models"
	"github.com/julianstephens/phoenix-rise/internal/scoring"
	"github.com/julianstephens/phoenix-rise/internal/storage"
	"github.com/julianstephens/phoenix-rise/internal/utils"
	"github.com/julianstephens/phoenix-rise/internal/validation"
)

var (
	// ErrNotFound is returned when a mutator references an unknown entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a mutator rejects its arguments.
	ErrInvalidInput = errors.New("invalid input")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// VoiceLoop is the wake-word listener the store starts and stops.
type VoiceLoop interface {
	Start() error
	Stop()
	SetMicEnabled(enabled bool)
	OnDetect(fn func())
}

// Options configures a Store. Gateway is required.
type Options struct {
	Gateway       *storage.Gateway
	Debounce      time.Duration
	MealRetention string
	Listener      VoiceLoop
	// OnWakeWord runs after the listener hears the trigger phrase and the
	// microphone has been handed to the foreground conversation.
	OnWakeWord func()
	Clock      func() time.Time
	NewID      func() string
}

type Store struct {
	gw        *storage.Gateway
	flusher   *Flusher
	retention string
	now       func() time.Time
	newID     func() string

	mu   sync.RWMutex
	data models.WellnessData

	// voiceMu serializes listener start/stop decisions. It is never held
	// together with mu.
	voiceMu    sync.Mutex
	listener   VoiceLoop
	onWake     func()
	appActive  bool
	micEnabled bool
}

func New(opts Options) *Store {
	s := &Store{
		gw:        opts.Gateway,
		retention: opts.MealRetention,
		now:       opts.Clock,
		newID:     opts.NewID,
		listener:  opts.Listener,
		onWake:    opts.OnWakeWord,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = newUUID
	}
	if s.retention == "" {
		s.retention = constants.MealRetentionArchive
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = constants.DefaultDebounce
	}
	s.flusher = NewFlusher(debounce, func() { s.persist(context.Background()) })
	s.data = models.DefaultWellnessData(s.now())
	if s.listener != nil {
		s.listener.OnDetect(s.handleWakeWord)
	}
	return s
}

// newUUID returns a time-ordered identifier so entities sort by creation.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load restores the persisted snapshot, hydrates the standalone settings,
// applies the daily rollover and brings the voice loop in line with the
// wake-word setting.
func (s *Store) Load(ctx context.Context) error {
	now := s.now()
	data := s.readSnapshot(ctx, now)

	settings, err := s.hydrateSettings(ctx)
	if err != nil {
		return err
	}
	settings.apply(&data.VoiceSettings)

	rolled := false
	if !utils.IsToday(data.LastUpdated, now) {
		rollover(&data, now, s.retention)
		rolled = true
	}
	data.PhoenixPoints = scoring.Score(data, now)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	if rolled {
		s.flusher.Schedule()
	}

	s.voiceMu.Lock()
	s.appActive = true
	s.voiceMu.Unlock()
	s.syncVoice()
	return nil
}

// readSnapshot decodes the persisted aggregate. Anything unreadable is
// deleted and replaced with defaults.
func (s *Store) readSnapshot(ctx context.Context, now time.Time) models.WellnessData {
	raw, ok := s.gw.Read(ctx, constants.KeySnapshot)
	if !ok {
		return models.DefaultWellnessData(now)
	}
	data, err := validation.DecodeSnapshot([]byte(raw))
	if err != nil {
		logger.Warn("Discarding unreadable snapshot", "error", err)
		s.gw.Remove(ctx, constants.KeySnapshot)
		return models.DefaultWellnessData(now)
	}
	return data
}

func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	buf, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		logger.Error("Failed to encode snapshot", "error", err)
		return
	}
	s.gw.Write(ctx, constants.KeySnapshot, string(buf))
}

// update applies fn to a deep copy of the snapshot. On success the copy
// becomes current, lastUpdated and phoenixPoints are refreshed and a write
// is scheduled. On error nothing changes.
func (s *Store) update(fn func(d *models.WellnessData, now time.Time) error) error {
	now := s.now()

	s.mu.Lock()
	next := s.data.Clone()
	if err := fn(&next, now); err != nil {
		s.mu.Unlock()
		return err
	}
	next.LastUpdated = now
	next.PhoenixPoints = scoring.Score(next, now)
	s.data = next
	s.mu.Unlock()

	s.flusher.Schedule()
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.WellnessData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Now reports the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Points is the score stored with the current snapshot.
func (s *Store) Points() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.PhoenixPoints
}

// Breakdown itemizes the current score.
func (s *Store) Breakdown() scoring.Breakdown {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scoring.Compute(s.data, s.now())
}

// TodayMeals is the meal log filtered to the current calendar day.
func (s *Store) TodayMeals() []models.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	var out []models.Meal
	for _, m := range s.data.Meals {
		if utils.IsToday(m.Date, now) {
			out = append(out, m)
		}
	}
	return out
}

// Flush writes the snapshot now if a debounced write is pending.
func (s *Store) Flush(context.Context) {
	s.flusher.Flush()
}

// Close stops the voice loop, performs the final flush and closes storage.
func (s *Store) Close(context.Context) error {
	if s.listener != nil {
		s.listener.Stop()
	}
	s.flusher.Close()
	return s.gw.Close()
}

// ClearAll wipes every persisted key and resets to defaults.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	s.data = models.DefaultWellnessData(s.now())
	s.mu.Unlock()

	s.gw.RemoveAll(ctx)
	s.persist(ctx)
	s.syncVoice()
}

// remove deletes the first element matching and reports whether one did.
func remove[T any](items []T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}
