package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/submission"
	"github.com/trezcool/lessonnotes/storage/database/dummy"
)

// OpenDB returns an empty in-memory key-value store.
func OpenDB(t *testing.T) core.KeyValueStore {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// StoreSubmissions writes subs as the stored collection, bypassing any repository.
func StoreSubmissions(t *testing.T, kv core.KeyValueStore, subs ...submission.Submission) {
	data, err := json.Marshal(subs)
	if err != nil {
		t.Fatalf("StoreSubmissions() failed: %v", err)
	}
	if err := kv.Set(context.Background(), "submissions", data); err != nil {
		t.Fatalf("StoreSubmissions() failed: %v", err)
	}
}

// NewValidator returns a validator set up the way the applications set it up.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	profile.InitValidators(validate, translator)
	return validate, translator
}

type LogEntry struct {
	Level   string
	Message string
}

// Logger records what is logged instead of printing it.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		msg += fmt.Sprint(args...)
	}
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg})
}

func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry{}, l.entries...)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }
