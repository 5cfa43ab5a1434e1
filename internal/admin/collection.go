package admin

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avocado-ai/avocado-web/internal/domain"
)

var (
	// ErrNotFound is returned for an id that is not in the mirror.
	ErrNotFound = errors.New("record not found")
	// ErrDeclined is returned when a delete was not confirmed.
	ErrDeclined = errors.New("delete not confirmed")
)

// Collection mirrors one backend resource in memory together with the state
// of its create and edit forms. The mutex is only held around state changes,
// never across backend calls, so concurrent saves resolve last-writer-wins.
type Collection[T any, P Record[T]] struct {
	remote Remote[T]
	bus    Publisher
	sample []T

	mu          sync.RWMutex
	items       []T
	loaded      bool
	loadErr     error
	usingSample bool
	creating    bool
	draft       T
	editing     *T
}

// View is a consistent copy of a collection's state.
type View[T any] struct {
	Name     string
	Items    []T
	Loaded   bool
	Err      error
	Fallback bool
	Creating bool
	Draft    T
	Editing  *T
}

// NewCollection creates a collection backed by remote. When sample is not
// nil it replaces the mirror after a failed load.
func NewCollection[T any, P Record[T]](remote Remote[T], bus Publisher, sample []T) *Collection[T, P] {
	c := &Collection[T, P]{remote: remote, bus: bus, sample: sample, items: []T{}}
	P(&c.draft).Reset()
	return c
}

func (c *Collection[T, P]) Name() string {
	return c.remote.Name()
}

// Load replaces the mirror with the backend list. On failure the error is
// kept as the collection state and returned.
func (c *Collection[T, P]) Load(ctx context.Context) error {
	items, err := c.remote.List(ctx)

	c.mu.Lock()
	if err != nil {
		c.loadErr = err
		if c.sample != nil {
			c.items = cloneAll[T, P](c.sample)
			c.usingSample = true
			c.loaded = true
		}
	} else {
		c.items = items
		c.loadErr = nil
		c.usingSample = false
		c.loaded = true
	}
	c.mu.Unlock()

	if err != nil {
		zap.L().Error("load collection failed", zap.String("resource", c.Name()), zap.Error(err))
	}
	c.publish(ctx, domain.ActionLoad, 0, "", err)
	return err
}

// View returns a snapshot of the collection.
func (c *Collection[T, P]) View() View[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := View[T]{
		Name:     c.Name(),
		Items:    cloneAll[T, P](c.items),
		Loaded:   c.loaded,
		Err:      c.loadErr,
		Fallback: c.usingSample,
		Creating: c.creating,
		Draft:    clone[T, P](c.draft),
	}
	if c.editing != nil {
		e := clone[T, P](*c.editing)
		v.Editing = &e
	}
	return v
}

// Loaded reports whether the mirror holds backend or sample data.
func (c *Collection[T, P]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Items returns a copy of the mirrored records.
func (c *Collection[T, P]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneAll[T, P](c.items)
}

// Get returns the mirrored record with id.
func (c *Collection[T, P]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return clone[T, P](c.items[i]), true
	}
	var zero T
	return zero, false
}

// OpenCreate shows the create form, keeping any draft in progress.
func (c *Collection[T, P]) OpenCreate() {
	c.mu.Lock()
	c.creating = true
	c.mu.Unlock()
}

// CancelCreate closes the create form and discards the draft.
func (c *Collection[T, P]) CancelCreate() {
	c.mu.Lock()
	c.creating = false
	P(&c.draft).Reset()
	c.mu.Unlock()
}

// SetDraft stores the create form input.
func (c *Collection[T, P]) SetDraft(item T) {
	P(&item).Normalize()
	c.mu.Lock()
	c.draft = clone[T, P](item)
	c.mu.Unlock()
}

// Draft returns the create form input.
func (c *Collection[T, P]) Draft() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone[T, P](c.draft)
}

// Create posts item to the backend and appends the stored record to the
// mirror. The console form state is left alone.
func (c *Collection[T, P]) Create(ctx context.Context, item T) (T, error) {
	P(&item).Normalize()
	created, err := c.remote.Create(ctx, item)
	if err != nil {
		zap.L().Error("create record failed", zap.String("resource", c.Name()), zap.Error(err))
		c.publish(ctx, domain.ActionCreate, 0, P(&item).Label(), err)
		return item, err
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()

	c.publish(ctx, domain.ActionCreate, P(&created).RecordID(), P(&created).Label(), nil)
	return clone[T, P](created), nil
}

// SaveDraft submits the create form. On success the form closes and the
// draft resets. On failure the form stays open with item as the draft.
func (c *Collection[T, P]) SaveDraft(ctx context.Context, item T) (T, error) {
	created, err := c.Create(ctx, item)

	c.mu.Lock()
	if err != nil {
		c.creating = true
		c.draft = clone[T, P](created)
	} else {
		c.creating = false
		P(&c.draft).Reset()
	}
	c.mu.Unlock()
	return created, err
}

// Edit opens the edit form on record id.
func (c *Collection[T, P]) Edit(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	e := clone[T, P](c.items[i])
	c.editing = &e
	return clone[T, P](e), true
}

// Editing returns the record under edit.
func (c *Collection[T, P]) Editing() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.editing == nil {
		var zero T
		return zero, false
	}
	return clone[T, P](*c.editing), true
}

// SetEditing replaces the edit form input. It reports false when no edit is open.
func (c *Collection[T, P]) SetEditing(item T) bool {
	P(&item).Normalize()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return false
	}
	e := clone[T, P](item)
	c.editing = &e
	return true
}

// CancelEdit closes the edit form.
func (c *Collection[T, P]) CancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// Update sends item to the backend under its own id and replaces the mirror
// entry. The console form state is left alone.
func (c *Collection[T, P]) Update(ctx context.Context, item T) (T, error) {
	P(&item).Normalize()
	id := P(&item).RecordID()
	if _, ok := c.Get(id); !ok {
		return item, ErrNotFound
	}

	updated, err := c.remote.Update(ctx, id, item)
	if err != nil {
		zap.L().Error("update record failed", zap.String("resource", c.Name()), zap.Int64("id", id), zap.Error(err))
		c.publish(ctx, domain.ActionUpdate, id, P(&item).Label(), err)
		return item, err
	}

	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = updated
	}
	c.mu.Unlock()

	c.publish(ctx, domain.ActionUpdate, id, P(&updated).Label(), nil)
	return clone[T, P](updated), nil
}

// SaveEdit submits the edit form. On success the form closes; on failure it
// stays open holding item.
func (c *Collection[T, P]) SaveEdit(ctx context.Context, item T) (T, error) {
	id := P(&item).RecordID()
	updated, err := c.Update(ctx, item)

	c.mu.Lock()
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		e := clone[T, P](updated)
		c.editing = &e
	case c.editing != nil && P(c.editing).RecordID() == id:
		c.editing = nil
	}
	c.mu.Unlock()
	return updated, err
}

// Delete removes record id after confirm approves. A nil or declining
// confirm returns ErrDeclined without contacting the backend.
func (c *Collection[T, P]) Delete(ctx context.Context, id int64, confirm func() bool) error {
	item, ok := c.Get(id)
	if !ok {
		return ErrNotFound
	}
	if confirm == nil || !confirm() {
		return ErrDeclined
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		zap.L().Error("delete record failed", zap.String("resource", c.Name()), zap.Int64("id", id), zap.Error(err))
		c.publish(ctx, domain.ActionDelete, id, P(&item).Label(), err)
		return err
	}

	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	if c.editing != nil && P(c.editing).RecordID() == id {
		c.editing = nil
	}
	c.mu.Unlock()

	c.publish(ctx, domain.ActionDelete, id, P(&item).Label(), nil)
	return nil
}

// AddDraftValue applies the array editor to a field of the draft.
func (c *Collection[T, P]) AddDraftValue(field, input string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return editList[T, P](&c.draft, field, input, true)
}

// RemoveDraftValue removes value from a field of the draft.
func (c *Collection[T, P]) RemoveDraftValue(field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return editList[T, P](&c.draft, field, value, false)
}

// AddEditValue applies the array editor to a field of the record under edit.
func (c *Collection[T, P]) AddEditValue(field, input string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return false
	}
	return editList[T, P](c.editing, field, input, true)
}

// RemoveEditValue removes value from a field of the record under edit.
func (c *Collection[T, P]) RemoveEditValue(field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return false
	}
	return editList[T, P](c.editing, field, value, false)
}

func (c *Collection[T, P]) indexOf(id int64) int {
	for i := range c.items {
		if P(&c.items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) publish(ctx context.Context, action string, id int64, detail string, err error) {
	if c.bus == nil {
		return
	}
	name, ip := OperatorFrom(ctx)
	ev := &OpEvent{
		Operator: name,
		IP:       ip,
		Resource: c.Name(),
		Action:   action,
		TargetID: id,
		Detail:   detail,
		Success:  err == nil,
		Time:     time.Now(),
	}
	if err != nil {
		ev.Detail = detail + ": " + err.Error()
		if detail == "" {
			ev.Detail = err.Error()
		}
	}
	c.bus.Publish(TopicOperation, ev)
}

func editList[T any, P Record[T]](rec *T, field, value string, add bool) bool {
	list, limit, ok := P(rec).ListField(field)
	if !ok {
		return false
	}
	if add {
		return AddValue(list, value, limit)
	}
	return RemoveValue(list, value)
}

// clone copies v so that its array fields no longer share backing storage.
func clone[T any, P Record[T]](v T) T {
	p := P(&v)
	for _, name := range p.ListNames() {
		if list, _, ok := p.ListField(name); ok {
			*list = append(make([]string, 0, len(*list)), (*list)...)
		}
	}
	return v
}

func cloneAll[T any, P Record[T]](items []T) []T {
	out := make([]T, len(items))
	for i := range items {
		out[i] = clone[T, P](items[i])
	}
	return out
}
