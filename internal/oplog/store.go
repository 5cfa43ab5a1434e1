package oplog

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/domain"
)

// Retention is how long operation logs are kept by the daily purge.
const Retention = 365 * 24 * time.Hour

// Query filters a log listing.
type Query struct {
	Resource string
	Action   string
	Operator string
	Page     int
	PageSize int
}

func (q Query) normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 500 {
		q.PageSize = 20
	}
	return q
}

// Store persists admin operation events.
type Store struct {
	db   *gorm.DB
	node *snowflake.Node
}

// NewStore creates a store writing to db. nodeID distinguishes instances
// sharing one database.
func NewStore(db *gorm.DB, nodeID int64) (*Store, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrap(err, "create id generator")
	}
	return &Store{db: db, node: node}, nil
}

// Subscribe records every operation event published on bus.
func (s *Store) Subscribe(bus EventBus.Bus) error {
	return bus.SubscribeAsync(admin.TopicOperation, s.handle, false)
}

// Unsubscribe detaches the store from bus.
func (s *Store) Unsubscribe(bus EventBus.Bus) error {
	return bus.Unsubscribe(admin.TopicOperation, s.handle)
}

func (s *Store) handle(ev *admin.OpEvent) {
	if err := s.Record(context.Background(), ev); err != nil {
		zap.L().Error("write operation log failed",
			zap.String("resource", ev.Resource),
			zap.String("action", ev.Action),
			zap.Error(err))
	}
}

// Record stores ev.
func (s *Store) Record(ctx context.Context, ev *admin.OpEvent) error {
	at := ev.Time
	if at.IsZero() {
		at = time.Now()
	}
	row := domain.SysOprLog{
		ID:        s.node.Generate().Int64(),
		OprName:   ev.Operator,
		OprIp:     ev.IP,
		Resource:  ev.Resource,
		OptAction: ev.Action,
		TargetID:  ev.TargetID,
		OptDesc:   ev.Detail,
		Success:   ev.Success,
		OptTime:   at,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *Store) filtered(ctx context.Context, q Query) *gorm.DB {
	db := s.db.WithContext(ctx).Model(&domain.SysOprLog{})
	if v := strings.TrimSpace(q.Resource); v != "" {
		db = db.Where("resource = ?", v)
	}
	if v := strings.TrimSpace(q.Action); v != "" {
		db = db.Where("opt_action = ?", v)
	}
	if v := strings.TrimSpace(q.Operator); v != "" {
		db = db.Where("opr_name = ?", v)
	}
	return db
}

// List returns one page of logs, newest first, and the total match count.
func (s *Store) List(ctx context.Context, q Query) ([]domain.SysOprLog, int64, error) {
	q = q.normalized()
	var total int64
	if err := s.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.SysOprLog
	err := s.filtered(ctx, q).
		Order("opt_time DESC, id DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ExportCSV writes every log matching q to w, newest first.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer, q Query) error {
	var rows []domain.SysOprLog
	if err := s.filtered(ctx, q).Order("opt_time DESC, id DESC").Find(&rows).Error; err != nil {
		return err
	}
	return gocsv.Marshal(&rows, w)
}

// Purge deletes logs older than before.
func (s *Store) Purge(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("opt_time < ?", before).Delete(&domain.SysOprLog{})
	return res.RowsAffected, res.Error
}
