// Package subject holds the subject list shown in the settings. It lives in memory only.
package subject

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lessonnotes/core"
)

var (
	errBlankName = "this field cannot be blank"
	errDuplicate = "subject already exists"
)

// DefaultSubjects seeds a new List.
var DefaultSubjects = []string{"Mathematics", "English Language", "Integrated Science", "Social Studies", "R.M.E"}

type NewSubject struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// List is a set of subject names compared without regard to letter case.
// It keeps insertion order and is safe for concurrent use.
type List struct {
	mu    sync.RWMutex
	names []string
}

func NewList(names ...string) *List {
	l := new(List)
	for _, n := range names {
		_ = l.Add(n)
	}
	return l
}

func (l *List) indexOf(name string) int {
	folded := core.FoldString(name)
	for i, n := range l.names {
		if core.FoldString(n) == folded {
			return i
		}
	}
	return -1
}

// All returns a copy of the names.
func (l *List) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, len(l.names))
	copy(names, l.names)
	return names
}

// Add appends name once trimmed. Blank names and case-insensitive duplicates are rejected.
func (l *List) Add(name string) error {
	name = core.CleanString(name)
	if name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: errBlankName})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(name) >= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: errDuplicate})
	}
	l.names = append(l.names, name)
	return nil
}

// Remove deletes name, matched case-insensitively. It reports whether something was removed.
func (l *List) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(name)
	if idx < 0 {
		return false
	}
	l.names = append(l.names[:idx], l.names[idx+1:]...)
	return true
}
