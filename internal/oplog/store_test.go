package oplog

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	s, err := NewStore(db, 1)
	require.NoError(t, err)
	return s
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 7, 19, 9, 0, 0, 0, time.UTC)

	events := []*admin.OpEvent{
		{Operator: "admin", IP: "10.0.0.1", Resource: domain.ResourceJobs, Action: domain.ActionCreate, TargetID: 1, Detail: "AI Security Engineer", Success: true, Time: base},
		{Operator: "admin", IP: "10.0.0.1", Resource: domain.ResourceJobs, Action: domain.ActionDelete, TargetID: 1, Detail: "AI Security Engineer", Success: true, Time: base.Add(time.Minute)},
		{Operator: "editor", IP: "10.0.0.2", Resource: domain.ResourceNews, Action: domain.ActionUpdate, TargetID: 4, Detail: "Launch", Success: false, Time: base.Add(2 * time.Minute)},
	}
	for _, ev := range events {
		require.NoError(t, s.Record(ctx, ev))
	}

	rows, total, err := s.List(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ResourceNews, rows[0].Resource)
	assert.NotZero(t, rows[0].ID)
	assert.NotEqual(t, rows[0].ID, rows[1].ID)

	rows, total, err = s.List(ctx, Query{Resource: domain.ResourceJobs, Action: domain.ActionDelete})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), rows[0].TargetID)

	rows, _, err = s.List(ctx, Query{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ActionCreate, rows[0].OptAction)
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, &admin.OpEvent{Operator: "admin", Resource: domain.ResourceProducts, Action: domain.ActionUpdate, TargetID: 9, Detail: "Sentinel", Success: true}))

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(ctx, &buf, Query{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,operator,ip,resource,action,target_id,detail,success,time"))
	assert.Contains(t, lines[1], "admin,,products,update,9,Sentinel,true")
}

func TestPurge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Record(ctx, &admin.OpEvent{Action: domain.ActionLoad, Time: now.Add(-2 * Retention)}))
	require.NoError(t, s.Record(ctx, &admin.OpEvent{Action: domain.ActionLoad, Time: now}))

	n, err := s.Purge(ctx, now.Add(-Retention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, total, err := s.List(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSubscribe(t *testing.T) {
	s := newTestStore(t)
	bus := EventBus.New()
	require.NoError(t, s.Subscribe(bus))

	bus.Publish(admin.TopicOperation, &admin.OpEvent{Operator: "admin", Resource: domain.ResourceCases, Action: domain.ActionCreate, Success: true})
	bus.WaitAsync()

	rows, total, err := s.List(context.Background(), Query{Resource: domain.ResourceCases})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "admin", rows[0].OprName)
	require.NoError(t, s.Unsubscribe(bus))
}
