package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/balkashynov/agenda/internal/views"
)

type record interface {
	RecordID() string
}

// collection is one JSON array stored under key
type collection[T record] struct {
	key   string
	store *Store
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	items := []T{}
	if c.store.medium == nil {
		return items, nil
	}

	raw, ok, err := c.store.medium.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if c.store.medium == nil {
		return ErrUnavailable
	}
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.medium.Set(ctx, c.key, string(raw)); err != nil {
		c.store.log.Warn("save failed", zap.String("key", c.key), zap.Error(err))
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}

	c.store.notify(c.key)
	return nil
}

func (c collection[T]) find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.all(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.RecordID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (c collection[T]) add(ctx context.Context, item T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, item))
}

// update merges fields over the first record with id. A missing id is not
// an error and leaves the collection untouched.
func (c collection[T]) update(ctx context.Context, id string, fields Fields) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	for i, item := range items {
		if item.RecordID() != id {
			continue
		}
		merged, err := merge(item, fields)
		if err != nil {
			return fmt.Errorf("failed to update %s %s: %w", c.key, id, err)
		}
		items[i] = merged
		return c.save(ctx, items)
	}
	c.store.log.Debug("update skipped, no such record", zap.String("key", c.key), zap.String("id", id))
	return nil
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	return c.save(ctx, kept)
}

func (c collection[T]) reorder(ctx context.Context, from, to int) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return fmt.Errorf("position out of range: %s has %d entries", c.key, len(items))
	}
	return c.save(ctx, views.Move(items, from, to))
}

// ErrUnknownField is returned by updates naming a field the record does not have
var ErrUnknownField = errors.New("unknown field")

// merge overlays fields on the JSON form of item, one level deep
func merge[T any](item T, fields Fields) (T, error) {
	var out T

	known := jsonFields(reflect.TypeOf(out))
	for name := range fields {
		if !known[name] {
			return out, fmt.Errorf("%w %q", ErrUnknownField, name)
		}
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return out, err
	}
	object := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &object); err != nil {
		return out, err
	}
	for name, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return out, fmt.Errorf("field %q: %w", name, err)
		}
		object[name] = encoded
	}

	raw, err = json.Marshal(object)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

// jsonFields returns the JSON names of the exported fields of a struct type
func jsonFields(t reflect.Type) map[string]bool {
	names := map[string]bool{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
	return names
}
