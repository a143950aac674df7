// Package store owns the in-memory todo list.
//
// Every mutation is expressed as an Action and applied through Reduce, so the
// list a caller got from List is never changed behind its back.
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tada/internal/model"
)

// maxIDAttempts bounds how often Add asks the id source for a fresh id.
const maxIDAttempts = 8

// Listener is called after every state-changing action with a copy of the
// resulting list.
type Listener func(action Action, items []model.Item)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for transition and seed logs.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc replaces the default uuid id source.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithSeed adds texts, in order, when the store is created.
// Texts that fail validation are skipped.
func WithSeed(texts ...string) Option {
	return func(s *Store) { s.seed = append(s.seed, texts...) }
}

type subscription struct {
	id int
	fn Listener
}

// Store is an ordered, in-memory collection of todo items.
// It is safe for concurrent use; listeners run outside the lock.
type Store struct {
	mu     sync.RWMutex
	items  []model.Item
	issued map[string]struct{}

	subMu  sync.Mutex
	subs   []subscription
	nextID int

	newID func() string
	log   zerolog.Logger
	seed  []string
}

// New creates an empty store and applies opts. Seed texts are added through
// Add, so they get ids and notify nobody (no listener can exist yet).
func New(opts ...Option) *Store {
	s := &Store{
		items:  []model.Item{},
		issued: make(map[string]struct{}),
		newID:  func() string { return uuid.New().String() },
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, text := range s.seed {
		if _, err := s.Add(text); err != nil {
			s.log.Warn().Err(err).Str("text", text).Msg("skipping seed item")
		}
	}
	s.seed = nil

	return s
}

// Add appends a new item holding the trimmed text and returns it.
// Empty text (after trimming) is rejected with ErrInvalidInput.
func (s *Store) Add(text string) (model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, fmt.Errorf("add: %w: text is empty", ErrInvalidInput)
	}

	s.mu.Lock()
	id, err := s.issueLocked()
	if err != nil {
		s.mu.Unlock()
		return model.Item{}, fmt.Errorf("add: %w", err)
	}
	item := model.Item{ID: id, Text: text}
	snapshot := s.applyLocked(AddAction{Item: item})
	s.mu.Unlock()

	s.notify(AddAction{Item: item}, snapshot)
	return item, nil
}

// Remove deletes the item with the given id. It reports whether an item was
// removed; unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	return s.Dispatch(RemoveAction{ID: id})
}

// Dispatch applies action through Reduce and reports whether the list
// changed. A nil action changes nothing. An AddAction must carry non-empty
// text and an id this store has not issued before; otherwise it is ignored.
// Its text is stored trimmed, as with Add.
func (s *Store) Dispatch(action Action) bool {
	if action == nil {
		return false
	}

	s.mu.Lock()
	if a, ok := action.(AddAction); ok {
		a.Item.Text = strings.TrimSpace(a.Item.Text)
		if _, seen := s.issued[a.Item.ID]; seen || a.Item.ID == "" || a.Item.Text == "" {
			s.mu.Unlock()
			s.log.Debug().Str("action", action.Kind()).Str("id", a.Item.ID).Msg("rejected add")
			return false
		}
		s.issued[a.Item.ID] = struct{}{}
		action = a
	}

	before := len(s.items)
	snapshot := s.applyLocked(action)
	changed := snapshot != nil
	s.mu.Unlock()

	if !changed {
		s.log.Debug().Str("action", action.Kind()).Int("len", before).Msg("no change")
		return false
	}
	s.notify(action, snapshot)
	return true
}

// List returns a copy of the items in insertion order.
func (s *Store) List() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Subscribe registers fn to run after every change. The returned func
// removes the subscription; calling it more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// issueLocked returns an id never handed out by this store and records it.
func (s *Store) issueLocked() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, seen := s.issued[id]; seen {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", ErrIDExhausted
}

// applyLocked swaps in the reduced list. It returns a copy of the new list,
// or nil when the action changed nothing.
func (s *Store) applyLocked(action Action) []model.Item {
	next := Reduce(s.items, action)
	// Every effective action changes the length.
	if len(next) == len(s.items) {
		return nil
	}
	s.items = next

	s.log.Debug().
		Str("action", action.Kind()).
		Int("len", len(next)).
		Msg("state changed")

	return clone(next)
}

func (s *Store) notify(action Action, items []model.Item) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(action, clone(items))
	}
}

func clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}
