package admin

import (
	"context"
	"strings"
)

// Record is the constraint satisfied by the pointer form of every managed
// entity in internal/domain.
type Record[T any] interface {
	*T
	RecordID() int64
	SetRecordID(id int64)
	Label() string
	Visible() bool
	ListNames() []string
	ListField(name string) (*[]string, int, bool)
	Reset()
	Normalize()
}

// Remote is the backend side of one collection.
type Remote[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// AddValue trims input and appends it to list when it is non-empty, not
// already present and the list is under limit. A limit of 0 means no cap.
func AddValue(list *[]string, input string, limit int) bool {
	v := strings.TrimSpace(input)
	if v == "" {
		return false
	}
	if limit > 0 && len(*list) >= limit {
		return false
	}
	for _, existing := range *list {
		if existing == v {
			return false
		}
	}
	*list = append(*list, v)
	return true
}

// RemoveValue drops every occurrence of value from list.
func RemoveValue(list *[]string, value string) bool {
	out := make([]string, 0, len(*list))
	for _, existing := range *list {
		if existing != value {
			out = append(out, existing)
		}
	}
	removed := len(out) != len(*list)
	*list = out
	return removed
}
