// Package store keeps tasks, lists and projects as whole serialized
// collections in a key-value medium and tells subscribers when any of them
// is rewritten.
//
// Writes are read-modify-write sequences with no lock spanning them. Two
// writers interleaving their sequences can lose one of the updates; callers
// are expected to be a single operator driving one view at a time.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/agenda/internal/db"
	"github.com/balkashynov/agenda/internal/events"
	"github.com/balkashynov/agenda/internal/models"
)

// Collection keys in the medium
const (
	TasksKey    = "tasks"
	ListsKey    = "lists"
	ProjectsKey = "projects"
)

// ErrUnavailable is returned when writing to a store that has no medium
var ErrUnavailable = errors.New("storage is not available")

// Fields is a partial record keyed by persisted field name.
// A nil value clears an optional field.
type Fields map[string]any

// Store is the single entry point to persisted records
type Store struct {
	medium db.Medium
	bus    *events.Bus
	clock  func() time.Time
	log    *zap.Logger
	userID string

	tasks    collection[models.Task]
	lists    collection[models.CustomList]
	projects collection[models.Project]
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now as the store's notion of the current time
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithUserID sets the owner stamped on records created through the store
func WithUserID(id string) Option {
	return func(s *Store) { s.userID = id }
}

// New builds a store over medium. A nil medium behaves like a context
// without storage: reads are empty and writes fail with ErrUnavailable.
func New(medium db.Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		bus:    events.NewBus(),
		clock:  time.Now,
		log:    zap.NewNop(),
		userID: models.DefaultUserID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = collection[models.Task]{key: TasksKey, store: s}
	s.lists = collection[models.CustomList]{key: ListsKey, store: s}
	s.projects = collection[models.Project]{key: ProjectsKey, store: s}
	return s
}

// Now returns the current time according to the store clock
func (s *Store) Now() time.Time { return s.clock() }

// UserID returns the owner id for new records
func (s *Store) UserID() string { return s.userID }

// NewID derives a record identifier from the current millisecond.
// Identifiers only stay unique while records are not created concurrently.
func (s *Store) NewID() string {
	return strconv.FormatInt(s.clock().UnixMilli(), 10)
}

// Subscribe registers for change notifications. The caller must Close the
// subscription when it stops listening.
func (s *Store) Subscribe() *events.Subscription {
	return s.bus.Subscribe()
}

// Listen registers for change notifications until ctx is done
func (s *Store) Listen(ctx context.Context) <-chan events.Event {
	return s.bus.Listen(ctx)
}

// Close releases subscribers and the underlying medium
func (s *Store) Close() error {
	s.bus.Close()
	if s.medium == nil {
		return nil
	}
	return s.medium.Close()
}

func (s *Store) notify(key string) {
	event := s.bus.Publish(s.clock())
	s.log.Debug("collection saved",
		zap.String("key", key),
		zap.Int64("sequence", event.SequenceID))
}
