package admin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocado-ai/avocado-web/internal/domain"
)

type fakeRemote struct {
	mu      sync.Mutex
	items   []domain.Job
	nextID  int64
	listErr error
	saveErr error
	deletes []int64
}

func (f *fakeRemote) Name() string { return domain.ResourceJobs }

func (f *fakeRemote) List(ctx context.Context) ([]domain.Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Job(nil), f.items...), nil
}

func (f *fakeRemote) Create(ctx context.Context, item domain.Job) (domain.Job, error) {
	if f.saveErr != nil {
		return domain.Job{}, f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	return item, nil
}

func (f *fakeRemote) Update(ctx context.Context, id int64, item domain.Job) (domain.Job, error) {
	if f.saveErr != nil {
		return domain.Job{}, f.saveErr
	}
	return item, nil
}

func (f *fakeRemote) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []*OpEvent
}

func (b *recordingBus) Publish(topic string, args ...interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if topic == TopicOperation {
		b.events = append(b.events, args[0].(*OpEvent))
	}
}

func newJobs(remote *fakeRemote, bus Publisher, sample []domain.Job) *Collection[domain.Job, *domain.Job] {
	return NewCollection[domain.Job, *domain.Job](remote, bus, sample)
}

func seededRemote() *fakeRemote {
	return &fakeRemote{
		nextID: 10,
		items: []domain.Job{
			{ID: 1, Title: "Cybersecurity Analyst", Requirements: []string{}, Benefits: []string{}, Tags: []string{"Security"}, IsActive: true},
			{ID: 2, Title: "ML Engineer", Requirements: []string{}, Benefits: []string{}, Tags: []string{}, IsActive: false},
		},
	}
}

func TestLoad(t *testing.T) {
	c := newJobs(seededRemote(), nil, nil)
	require.NoError(t, c.Load(context.Background()))

	v := c.View()
	assert.True(t, v.Loaded)
	assert.NoError(t, v.Err)
	assert.False(t, v.Fallback)
	assert.Len(t, v.Items, 2)
}

func TestLoadFailureSurfacesError(t *testing.T) {
	boom := errors.New("connection refused")
	c := newJobs(&fakeRemote{listErr: boom}, nil, nil)

	err := c.Load(context.Background())
	assert.ErrorIs(t, err, boom)

	v := c.View()
	assert.ErrorIs(t, v.Err, boom)
	assert.False(t, v.Loaded)
	assert.False(t, v.Fallback)
	assert.Empty(t, v.Items)
}

func TestLoadFailureWithSampleFallback(t *testing.T) {
	c := newJobs(&fakeRemote{listErr: errors.New("timeout")}, nil, DefaultSamples().Jobs)

	require.Error(t, c.Load(context.Background()))
	v := c.View()
	assert.True(t, v.Fallback)
	assert.Error(t, v.Err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "AI Security Engineer", v.Items[0].Title)
}

func TestCreateAppendsAndClosesForm(t *testing.T) {
	bus := &recordingBus{}
	c := newJobs(seededRemote(), bus, nil)
	ctx := WithOperator(context.Background(), "admin", "10.0.0.8")
	require.NoError(t, c.Load(ctx))

	c.OpenCreate()
	draft := c.Draft()
	draft.Title = "AI Security Engineer"
	draft.Department = "Engineering"
	c.SetDraft(draft)
	require.True(t, c.AddDraftValue("tags", "AI"))
	require.True(t, c.AddDraftValue("tags", "Security"))

	created, err := c.SaveDraft(ctx, c.Draft())
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	v := c.View()
	require.Len(t, v.Items, 3)
	last := v.Items[2]
	assert.Equal(t, "AI Security Engineer", last.Title)
	assert.Equal(t, "Engineering", last.Department)
	assert.Equal(t, []string{"AI", "Security"}, last.Tags)
	assert.NotZero(t, last.ID)
	assert.False(t, v.Creating)
	assert.Equal(t, "", v.Draft.Title)
	assert.Equal(t, []string{}, v.Draft.Tags)
	assert.True(t, v.Draft.IsActive)

	require.Len(t, bus.events, 2)
	ev := bus.events[1]
	assert.Equal(t, domain.ActionCreate, ev.Action)
	assert.Equal(t, "admin", ev.Operator)
	assert.Equal(t, "10.0.0.8", ev.IP)
	assert.Equal(t, int64(11), ev.TargetID)
	assert.True(t, ev.Success)
}

func TestCreateFailureKeepsDraft(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))

	remote.saveErr = errors.New("backend returned 500")
	_, err := c.SaveDraft(context.Background(), domain.Job{Title: "Red Team Lead", Tags: []string{"Offense"}})
	require.Error(t, err)

	v := c.View()
	assert.True(t, v.Creating)
	assert.Equal(t, "Red Team Lead", v.Draft.Title)
	assert.Equal(t, []string{"Offense"}, v.Draft.Tags)
	assert.Len(t, v.Items, 2)
}

func TestUpdate(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))

	editing, ok := c.Edit(2)
	require.True(t, ok)
	editing.IsActive = true
	editing.Title = "Senior ML Engineer"

	remote.saveErr = errors.New("unavailable")
	_, err := c.SaveEdit(context.Background(), editing)
	require.Error(t, err)
	still, open := c.Editing()
	require.True(t, open)
	assert.Equal(t, "Senior ML Engineer", still.Title)
	got, _ := c.Get(2)
	assert.Equal(t, "ML Engineer", got.Title)

	remote.saveErr = nil
	_, err = c.SaveEdit(context.Background(), still)
	require.NoError(t, err)
	_, open = c.Editing()
	assert.False(t, open)
	got, _ = c.Get(2)
	assert.Equal(t, "Senior ML Engineer", got.Title)
	assert.True(t, got.IsActive)
}

func TestDirectSavesLeaveFormState(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))

	remote.saveErr = errors.New("backend returned 500")
	_, err := c.Create(context.Background(), domain.Job{Title: "Red Team Lead"})
	require.Error(t, err)
	_, err = c.Update(context.Background(), domain.Job{ID: 2, Title: "Renamed"})
	require.Error(t, err)

	v := c.View()
	assert.False(t, v.Creating)
	assert.Equal(t, "", v.Draft.Title)
	assert.Nil(t, v.Editing)

	remote.saveErr = nil
	c.OpenCreate()
	c.SetDraft(domain.Job{Title: "Half typed"})
	_, _ = c.Edit(1)
	_, err = c.Create(context.Background(), domain.Job{Title: "Posted elsewhere"})
	require.NoError(t, err)
	_, err = c.Update(context.Background(), domain.Job{ID: 1, Title: "Renamed elsewhere"})
	require.NoError(t, err)

	v = c.View()
	assert.True(t, v.Creating)
	assert.Equal(t, "Half typed", v.Draft.Title)
	require.NotNil(t, v.Editing)
	assert.Equal(t, "Cybersecurity Analyst", v.Editing.Title)
	got, _ := c.Get(1)
	assert.Equal(t, "Renamed elsewhere", got.Title)
}

func TestUpdateUnknownID(t *testing.T) {
	c := newJobs(seededRemote(), nil, nil)
	require.NoError(t, c.Load(context.Background()))
	_, err := c.Update(context.Background(), domain.Job{ID: 99})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDeclinedIssuesNoRequest(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))
	before := c.View()

	err := c.Delete(context.Background(), 1, func() bool { return false })
	assert.ErrorIs(t, err, ErrDeclined)
	assert.ErrorIs(t, c.Delete(context.Background(), 1, nil), ErrDeclined)

	assert.Empty(t, remote.deletes)
	assert.Equal(t, before, c.View())
}

func TestDeleteConfirmed(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))
	_, _ = c.Edit(1)

	require.NoError(t, c.Delete(context.Background(), 1, func() bool { return true }))
	assert.Equal(t, []int64{1}, remote.deletes)
	_, ok := c.Get(1)
	assert.False(t, ok)
	_, open := c.Editing()
	assert.False(t, open)
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	remote := seededRemote()
	c := newJobs(remote, nil, nil)
	require.NoError(t, c.Load(context.Background()))

	remote.saveErr = errors.New("backend returned 502")
	err := c.Delete(context.Background(), 2, func() bool { return true })
	require.Error(t, err)
	_, ok := c.Get(2)
	assert.True(t, ok)
}

func TestEditValues(t *testing.T) {
	c := newJobs(seededRemote(), nil, nil)
	require.NoError(t, c.Load(context.Background()))

	assert.False(t, c.AddEditValue("tags", "AI"))
	_, _ = c.Edit(1)
	assert.True(t, c.AddEditValue("tags", " AI "))
	assert.False(t, c.AddEditValue("tags", "Security"))
	assert.True(t, c.RemoveEditValue("tags", "Security"))
	assert.False(t, c.AddEditValue("unknown", "x"))

	editing, _ := c.Editing()
	assert.Equal(t, []string{"AI"}, editing.Tags)
	stored, _ := c.Get(1)
	assert.Equal(t, []string{"Security"}, stored.Tags)
}

func TestConcurrentCreates(t *testing.T) {
	c := newJobs(seededRemote(), nil, nil)
	require.NoError(t, c.Load(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Create(context.Background(), domain.Job{Title: "Analyst"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, c.Items(), 22)
}
