package scoreboard

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	DEFAULT_TOP_LIMIT = 5
	MIN_CALLSIGN_LEN  = 2
	MAX_CALLSIGN_LEN  = 12
	ANONYMOUS         = "ANON"
)

var (
	ErrInvalidCallsign = errors.New("invalid callsign")
	ErrInvalidScore    = errors.New("score must be a finite number")
)

type Entry struct {
	Callsign string `msgpack:"callsign"`
	Score    int    `msgpack:"score"`
	// DurationMs is nil when the game length is unknown.
	DurationMs *int64 `msgpack:"duration_ms"`
	Timestamp  int64  `msgpack:"timestamp"`
}

// Storage persists the table. Load on an empty store returns no entries
// and no error.
type Storage interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

type Result struct {
	Callsign   string
	Score      float64
	DurationMs float64
	Timestamp  time.Time
}

type Options struct {
	TopLimit        int
	RequireCallsign bool
	Storage         Storage
}

// Scoreboard keeps the best results, highest score first, ties broken by
// the earlier result.
type Scoreboard struct {
	topLimit        int
	requireCallsign bool
	storage         Storage
	entries         []Entry
}

func New(opts Options) *Scoreboard {
	sb := &Scoreboard{
		topLimit:        opts.TopLimit,
		requireCallsign: opts.RequireCallsign,
		storage:         opts.Storage,
	}
	if sb.topLimit <= 0 {
		sb.topLimit = DEFAULT_TOP_LIMIT
	}
	if sb.storage == nil {
		sb.storage = NewMemoryStorage(nil)
	}

	loaded, err := sb.storage.Load()
	if err != nil {
		log.Warnf("scoreboard: starting empty: %v", err)
	}
	sb.entries = sb.normalizeEntries(loaded)
	sb.persist()
	return sb
}

func (sb *Scoreboard) RecordResult(r Result) (Entry, error) {
	callsign, err := sb.validateCallsign(r.Callsign)
	if err != nil {
		return Entry{}, err
	}
	score, err := validateScore(r.Score)
	if err != nil {
		return Entry{}, err
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	entry := Entry{
		Callsign:   callsign,
		Score:      score,
		DurationMs: validateDuration(r.DurationMs),
		Timestamp:  ts.UnixMilli(),
	}

	sb.entries = append(sb.entries, entry)
	slices.SortStableFunc(sb.entries, compareEntries)
	if len(sb.entries) > sb.topLimit {
		sb.entries = sb.entries[:sb.topLimit]
	}
	sb.persist()
	log.Infof("SCORE: %s recorded %d", entry.Callsign, entry.Score)
	return entry, nil
}

// Qualifies reports whether score would make it onto the table.
func (sb *Scoreboard) Qualifies(score int) bool {
	if len(sb.entries) < sb.topLimit {
		return true
	}
	return score > sb.entries[len(sb.entries)-1].Score
}

func (sb *Scoreboard) TopScores() []Entry {
	return slices.Clone(sb.entries)
}

func (sb *Scoreboard) BestScore() (Entry, bool) {
	if len(sb.entries) == 0 {
		return Entry{}, false
	}
	return sb.entries[0], true
}

func (sb *Scoreboard) Reset() {
	sb.entries = nil
	sb.persist()
}

func (sb *Scoreboard) SetTopLimit(limit int) int {
	if limit <= 0 {
		return sb.topLimit
	}
	sb.topLimit = limit
	if len(sb.entries) > limit {
		sb.entries = sb.entries[:limit]
		sb.persist()
	}
	return sb.topLimit
}

func (sb *Scoreboard) TopLimit() int { return sb.topLimit }

func (sb *Scoreboard) ImportEntries(entries []Entry) []Entry {
	sb.entries = sb.normalizeEntries(entries)
	sb.persist()
	return sb.TopScores()
}

func (sb *Scoreboard) persist() {
	if err := sb.storage.Save(sb.TopScores()); err != nil {
		log.Errorf("scoreboard: save: %v", err)
	}
}

// normalizeEntries drops invalid entries, then sorts and truncates.
func (sb *Scoreboard) normalizeEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		callsign, err := sb.validateCallsign(e.Callsign)
		if err != nil {
			continue
		}
		e.Callsign = callsign
		e.Score = max(e.Score, 0)
		if e.DurationMs != nil && *e.DurationMs < 0 {
			e.DurationMs = nil
		}
		if e.Timestamp <= 0 {
			e.Timestamp = time.Now().UnixMilli()
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, compareEntries)
	if len(out) > sb.topLimit {
		out = out[:sb.topLimit]
	}
	return out
}

func (sb *Scoreboard) validateCallsign(callsign string) (string, error) {
	trimmed := strings.TrimSpace(callsign)
	if !sb.requireCallsign {
		if trimmed == "" {
			return ANONYMOUS, nil
		}
		return trimmed, nil
	}
	if n := len([]rune(trimmed)); n < MIN_CALLSIGN_LEN || n > MAX_CALLSIGN_LEN {
		return "", fmt.Errorf("%w: must be between %d and %d characters", ErrInvalidCallsign, MIN_CALLSIGN_LEN, MAX_CALLSIGN_LEN)
	}
	return trimmed, nil
}

func validateScore(score float64) (int, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, ErrInvalidScore
	}
	return max(int(math.Round(score)), 0), nil
}

func validateDuration(d float64) *int64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return nil
	}
	ms := int64(math.Round(d))
	return &ms
}

func compareEntries(a, b Entry) int {
	if a.Score != b.Score {
		return cmp.Compare(b.Score, a.Score)
	}
	return cmp.Compare(a.Timestamp, b.Timestamp)
}
