package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brandbook/entries-api/internal/core/domain"
	"github.com/brandbook/entries-api/internal/core/ports"
)

// EntryStore is the slice of the user repository the entry service needs.
type EntryStore interface {
	SaveEntries(ctx context.Context, user *domain.User) error
}

// EntryService mutates the authenticated user's entry collection and
// rewrites it as a whole.
type EntryService struct {
	store   EntryStore
	metrics ports.Metrics
	log     zerolog.Logger
	newID   func() string
}

func NewEntryService(store EntryStore, log zerolog.Logger) *EntryService {
	return &EntryService{store: store, metrics: nopMetrics{}, log: log, newID: uuid.NewString}
}

// WithMetrics sets the outcome recorder.
func (s *EntryService) WithMetrics(m ports.Metrics) *EntryService {
	s.metrics = orNop(m)
	return s
}

func (s *EntryService) List(_ context.Context, user *domain.User) (domain.Entries, error) {
	return user.Entries.List(), nil
}

// Create appends a new entry with a freshly generated id.
func (s *EntryService) Create(ctx context.Context, user *domain.User, fields domain.EntryFields) (domain.Entries, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	id := s.newID()
	for user.Entries.Contains(id) {
		id = s.newID()
	}

	if err := s.save(ctx, user, user.Entries.Append(id, fields)); err != nil {
		s.metrics.EntryMutation("create", "error")
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.metrics.EntryMutation("create", "applied")
	s.log.Info().Str("user_id", user.ID).Str("entry_id", id).Msg("entry created")
	return user.Entries.List(), nil
}

// Update overwrites the entry with the given id. An unknown id leaves the
// collection unchanged and writes nothing.
func (s *EntryService) Update(ctx context.Context, user *domain.User, id string, fields domain.EntryFields) (domain.Entries, error) {
	if id == "" || strings.TrimSpace(fields.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	updated, ok := user.Entries.Update(id, fields)
	if !ok {
		s.metrics.EntryMutation("update", "noop")
		s.log.Debug().Str("user_id", user.ID).Str("entry_id", id).Msg("update matched no entry")
		return user.Entries.List(), nil
	}

	if err := s.save(ctx, user, updated); err != nil {
		s.metrics.EntryMutation("update", "error")
		return nil, fmt.Errorf("update entry: %w", err)
	}

	s.metrics.EntryMutation("update", "applied")
	return user.Entries.List(), nil
}

// Delete removes every entry carrying id.
func (s *EntryService) Delete(ctx context.Context, user *domain.User, id string) (domain.Entries, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	remaining, removed := user.Entries.Remove(id)
	if removed == 0 {
		s.metrics.EntryMutation("delete", "noop")
		return user.Entries.List(), nil
	}

	if err := s.save(ctx, user, remaining); err != nil {
		s.metrics.EntryMutation("delete", "error")
		return nil, fmt.Errorf("delete entry: %w", err)
	}

	s.metrics.EntryMutation("delete", "applied")
	s.log.Info().Str("user_id", user.ID).Str("entry_id", id).Int("removed", removed).Msg("entry deleted")
	return user.Entries.List(), nil
}

// save swaps in the new collection and persists it, restoring the previous
// one when the write fails.
func (s *EntryService) save(ctx context.Context, user *domain.User, entries domain.Entries) error {
	prev := user.Entries
	user.Entries = entries
	if err := s.store.SaveEntries(ctx, user); err != nil {
		user.Entries = prev
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to save entries")
		return err
	}
	return nil
}
