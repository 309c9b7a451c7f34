package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const userPrefix = "user:"

// BadgerConfig configures the Badger backend.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory.
	Path string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives Badger's internal logs. Nil disables them.
	Logger *zap.Logger
}

// DefaultBadgerConfig returns durable settings without a path.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{SyncWrites: true}
}

// InMemoryBadgerConfig returns settings for a throwaway database.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.s.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.s.Debugf(format, args...) }

// Badger stores each record under "user:<email>".
type Badger struct {
	mu sync.Mutex
	db *badger.DB
}

var _ Repo = (*Badger)(nil)

// OpenBadger opens or creates a Badger database.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{s: cfg.Logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// update runs fn in a read-write transaction. Writers are serialised so a
// merge never loses a race against a concurrent merge of the same key.
func (b *Badger) update(fn func(txn *badger.Txn) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Update(fn)
}

func userKey(email string) []byte {
	return []byte(userPrefix + email)
}

func (b *Badger) Get(_ context.Context, email string) (Record, error) {
	var rec Record
	err := b.db.View(func(txn *badger.Txn) error {
		r, err := getTxn(txn, email)
		rec = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *Badger) Put(_ context.Context, email string, patch Record) error {
	return b.update(func(txn *badger.Txn) error {
		base, err := getTxn(txn, email)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return setTxn(txn, email, Merge(base, patch))
	})
}

func (b *Badger) Create(_ context.Context, email string) (Record, bool, error) {
	var (
		rec     Record
		created bool
	)
	err := b.update(func(txn *badger.Txn) error {
		existing, err := getTxn(txn, email)
		if err == nil {
			rec = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		rec, created = NewRecord(), true
		return setTxn(txn, email, rec)
	})
	if err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

func (b *Badger) Emails(_ context.Context) ([]string, error) {
	var out []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(userPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			out = append(out, strings.TrimPrefix(string(it.Item().Key()), userPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	return out, nil
}

func getTxn(txn *badger.Txn, email string) (Record, error) {
	item, err := txn.Get(userKey(email))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", email, err)
	}
	var rec Record
	err = item.Value(func(val []byte) error {
		r, err := decode(val)
		rec = r
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", email, err)
	}
	return rec, nil
}

func setTxn(txn *badger.Txn, email string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", email, err)
	}
	if err := txn.Set(userKey(email), data); err != nil {
		return fmt.Errorf("put %s: %w", email, err)
	}
	return nil
}
