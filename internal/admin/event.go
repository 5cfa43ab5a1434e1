package admin

import (
	"context"
	"time"
)

// TopicOperation is the event bus topic carrying *OpEvent values.
const TopicOperation = "admin:operation"

// OpEvent describes one admin action against the backend.
type OpEvent struct {
	Operator string
	IP       string
	Resource string
	Action   string
	TargetID int64
	Detail   string
	Success  bool
	Time     time.Time
}

// Publisher is the subset of EventBus.Bus used by the dashboard.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

type operatorKey struct{}

type operator struct {
	name string
	ip   string
}

// WithOperator attaches the acting admin user and client address to ctx.
func WithOperator(ctx context.Context, name, ip string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator{name: name, ip: ip})
}

// OperatorFrom returns the admin user and address stored by WithOperator.
func OperatorFrom(ctx context.Context) (name, ip string) {
	if op, ok := ctx.Value(operatorKey{}).(operator); ok {
		return op.name, op.ip
	}
	return "", ""
}
