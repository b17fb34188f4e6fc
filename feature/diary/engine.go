package diary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"diary-store/feature/diary/cache"
	"diary-store/feature/diary/models"
	"diary-store/feature/diary/style"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dirty is the bitmask a mutation returns to report which sub-trees of the
// loaded entries changed. The store step only writes sub-trees whose bit is
// set.
type Dirty uint8

const (
	// DirtyNone reports no changes; the store step is a no-op.
	DirtyNone Dirty = 0
	// DirtyEntry reports changed entry metadata (title, body, style,
	// visibility, last_modified).
	DirtyEntry Dirty = 1 << 0
	// DirtyComment reports a changed comment sequence.
	DirtyComment Dirty = 1 << 1
)

// MutateFunc is the caller-supplied mutation step of a transaction. It
// receives the decoded entry mapping for the transaction's date context and
// returns the dirty bitmask describing its changes. A nil MutateFunc is the
// read-only no-op path.
type MutateFunc func(entries map[string]*models.Entry) Dirty

// Engine orchestrates the load, mutate, dirty-tracked save and cache
// refresh cycle against the diary store.
type Engine struct {
	db     *gorm.DB
	styles *style.Registry
	cache  *cache.Store
	cached bool
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine creates a new reconciliation engine on top of an established
// database handle. A nil store disables caching regardless of cfg.
func NewEngine(db *gorm.DB, styles *style.Registry, store *cache.Store, cfg cache.Config, logger *zap.Logger) *Engine {
	if styles == nil {
		styles = style.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:     db,
		styles: styles,
		cache:  store,
		cached: cfg.Enabled && store != nil,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Transaction loads the entry mapping for date, invokes mutate with it and
// persists whatever mutate reports dirty, refreshing the parsed-entry cache
// afterwards.
//
// date is normally a canonical YYYYMMDD identifier; loading then happens at
// month granularity, batching likely-future lookups (calendar rendering,
// neighbouring days) into one query. Any other shape falls back to an
// exact diary_id lookup.
//
// Transactions for the same month are serialized with a per-key mutex.
// Concurrent transactions for different months may still race on the store
// itself if the surrounding application runs several writers; this layer
// assumes at most one writer per date context.
func (e *Engine) Transaction(ctx context.Context, date string, mutate MutateFunc) error {
	key := cacheKey(date)
	unlock := e.lockKey(key)
	defer unlock()

	l := e.logger.With(
		zap.String("txn_id", uuid.NewString()),
		zap.String("date", date),
	)

	entries, hit, err := e.load(ctx, date, key)
	if err != nil {
		return err
	}

	dirty := DirtyNone
	if mutate != nil {
		dirty = mutate(entries)
	}

	if err := e.persist(ctx, entries, dirty); err != nil {
		return err
	}

	// A fresh load was already cached by load; only a dirty transaction
	// needs to overwrite the cached mapping with the mutated one.
	if e.cached && dirty != DirtyNone {
		e.cache.Put(key, entries)
	}

	l.Debug("transaction complete",
		zap.Int("entries", len(entries)),
		zap.Bool("cache_hit", hit),
		zap.Uint8("dirty", uint8(dirty)),
	)
	return nil
}

// load produces the decoded entry mapping for date, via the cache when
// enabled. The returned map is always private to this transaction; cached
// entries are shared by pointer, exactly like a mapping rebuilt from a
// fresh query would be handed out.
func (e *Engine) load(ctx context.Context, date, key string) (map[string]*models.Entry, bool, error) {
	if !e.cached {
		entries := make(map[string]*models.Entry)
		if err := e.restore(ctx, date, entries); err != nil {
			return nil, false, err
		}
		return entries, false, nil
	}

	cached, hit, err := e.cache.GetOrBuild(key, func() (cache.Mapping, error) {
		m := make(cache.Mapping)
		if err := e.restore(ctx, date, m); err != nil {
			return nil, err
		}
		return m, nil
	})
	if err != nil {
		return nil, false, err
	}

	entries := make(map[string]*models.Entry, len(cached))
	for id, entry := range cached {
		entries[id] = entry
	}
	return entries, hit, nil
}

// restore queries the store for date's context and decodes every returned
// record into entries. A canonical YYYYMMDD date widens to its whole month;
// anything else is treated as an exact diary_id. A decode failure aborts
// the whole restore; partially decoded entries are not committed.
func (e *Engine) restore(ctx context.Context, date string, entries map[string]*models.Entry) error {
	q := e.db.WithContext(ctx).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("no ASC")
	})

	if year, month, _, ok := models.SplitDiaryID(date); ok {
		q = q.Where("year = ? AND month = ?", year, month)
	} else {
		q = q.Where("diary_id = ?", date)
	}

	var recs []models.DiaryRecord
	if err := q.Find(&recs).Error; err != nil {
		return fmt.Errorf("failed to query diaries for %s: %w", date, err)
	}

	for i := range recs {
		rec := &recs[i]

		codec, err := e.styles.Resolve(rec.Style)
		if err != nil {
			return err
		}

		entry, err := codec.Decode(rec.DiaryID, rec.Title, rec.Body, time.Unix(rec.LastModified, 0))
		if err != nil {
			return fmt.Errorf("failed to decode entry %s: %w", rec.DiaryID, err)
		}
		entry.Visible = rec.Visible

		for _, c := range rec.Comments {
			entry.AddComment(&models.Comment{
				Name:    c.Name,
				Mail:    c.Mail,
				Body:    c.Body,
				Date:    c.DateValue(),
				Visible: c.Visible,
			})
		}

		entries[rec.DiaryID] = entry
	}

	return nil
}

// lockKey serializes transactions per month key and returns the unlock.
func (e *Engine) lockKey(key string) func() {
	e.mu.Lock()
	m, ok := e.locks[key]
	if !ok {
		m = &sync.Mutex{}
		e.locks[key] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// cacheKey maps a transaction date to its cache key: month granularity for
// canonical identifiers, the raw key otherwise.
func cacheKey(date string) string {
	if year, month, _, ok := models.SplitDiaryID(date); ok {
		return year + month
	}
	return date
}
