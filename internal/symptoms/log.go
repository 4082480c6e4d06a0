package symptoms

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StorageKey is the key/value slot that holds the serialized log.
const StorageKey = "symptomsData"

const dateLayout = "2006-01-02"

// Storage is a durable key/value slot store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ConfirmFunc is asked before an existing entry is replaced. Only a true
// answer lets the replacement go ahead.
type ConfirmFunc func(existing Entry) bool

type Outcome int

const (
	Inserted Outcome = iota
	Replaced
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	default:
		return "cancelled"
	}
}

// Log is the in-memory symptom log, most recent date first, mirrored to a
// single storage slot after every mutation.
type Log struct {
	storage Storage
	catalog Catalog
	logger  *zap.Logger

	mu      sync.RWMutex
	entries []Entry
	loading bool
}

func NewLog(storage Storage, catalog Catalog, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{
		storage: storage,
		catalog: catalog,
		logger:  logger,
		loading: true,
	}
}

func (l *Log) Catalog() Catalog {
	return l.catalog
}

// Loading reports whether the initial Load has not finished yet.
func (l *Log) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// Load replaces the in-memory collection with the persisted one. A missing
// slot is an empty log. On a DeserializationError the log is left empty and
// usable.
func (l *Log) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() { l.loading = false }()

	l.entries = nil

	raw, ok, err := l.storage.Get(ctx, StorageKey)
	if err != nil {
		return &PersistenceError{Op: "read", Err: err}
	}
	if !ok {
		l.logger.Debug("no stored symptom log")
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		l.logger.Warn("stored symptom log is corrupt", zap.Error(err))
		return &DeserializationError{Err: err}
	}
	sortDescending(entries)
	l.entries = l.dropDuplicateDates(entries)
	l.logger.Debug("symptom log loaded", zap.Int("entries", len(entries)))
	return nil
}

// Entries returns a copy of the displayed sequence (descending by date).
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneEntries(l.entries)
}

func (l *Log) Find(date string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.Date == date {
			return e.clone(), true
		}
	}
	return Entry{}, false
}

// Upsert records the non-skipped selections for date. When date already has
// an entry, confirm decides whether it is replaced; a nil confirm cancels.
// Memory only changes once the new collection has been persisted.
func (l *Log) Upsert(ctx context.Context, date string, selections map[string]Severity, confirm ConfirmFunc) (Outcome, error) {
	if date == "" {
		return Cancelled, &ValidationError{Reason: "missing date"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return Cancelled, &ValidationError{Reason: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date)}
	}
	selected := 0
	for name, sev := range selections {
		if !l.catalog.Contains(name) {
			return Cancelled, &ValidationError{Reason: fmt.Sprintf("unknown symptom %q", name)}
		}
		if sev < None || sev > Severe {
			return Cancelled, &ValidationError{Reason: fmt.Sprintf("invalid severity for %s", name)}
		}
		if sev != None {
			selected++
		}
	}
	if selected == 0 {
		return Cancelled, &ValidationError{Reason: "no symptoms selected"}
	}

	existing, exists := l.Find(date)
	outcome := Inserted
	if exists {
		if confirm == nil || !confirm(existing) {
			l.logger.Debug("replace declined", zap.String("date", date))
			return Cancelled, nil
		}
		outcome = Replaced
	}

	entry := newEntry(date, l.catalog, selections)

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Entry, 0, len(l.entries)+1)
	for _, e := range l.entries {
		if e.Date != date {
			next = append(next, e)
		}
	}
	next = append(next, entry)
	sortDescending(next)

	if err := l.persist(ctx, next); err != nil {
		return Cancelled, err
	}
	l.entries = next
	l.logger.Info("symptom entry saved",
		zap.String("date", date),
		zap.Stringer("outcome", outcome),
		zap.Int("symptoms", len(entry.Reports)))
	return outcome, nil
}

// Delete removes the entry at index in the displayed sequence.
func (l *Log) Delete(ctx context.Context, index int) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.entries) {
		return Entry{}, &IndexError{Index: index, Len: len(l.entries)}
	}
	removed := l.entries[index]

	next := make([]Entry, 0, len(l.entries)-1)
	next = append(next, l.entries[:index]...)
	next = append(next, l.entries[index+1:]...)

	if err := l.persist(ctx, next); err != nil {
		return Entry{}, err
	}
	l.entries = next
	l.logger.Info("symptom entry deleted", zap.String("date", removed.Date))
	return removed, nil
}

func (l *Log) persist(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return &PersistenceError{Op: "encode", Err: err}
	}
	if err := l.storage.Set(ctx, StorageKey, string(data)); err != nil {
		l.logger.Error("persist symptom log", zap.Error(err))
		return &PersistenceError{Op: "write", Err: err}
	}
	return nil
}

// dropDuplicateDates keeps the first entry seen for each date of a sorted
// collection.
func (l *Log) dropDuplicateDates(entries []Entry) []Entry {
	out := entries[:0]
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.Date] {
			l.logger.Warn("dropping duplicate stored symptom entry", zap.String("date", e.Date))
			continue
		}
		seen[e.Date] = true
		out = append(out, e)
	}
	return out
}

// ISO dates sort lexicographically in chronological order.
func sortDescending(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
