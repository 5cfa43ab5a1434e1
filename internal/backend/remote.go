package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Remote performs CRUD for one resource against the backend.
type Remote[T any] struct {
	client *Client
	res    Resource[T]
}

func NewRemote[T any](client *Client, res Resource[T]) *Remote[T] {
	return &Remote[T]{client: client, res: res}
}

// Name returns the resource name.
func (r *Remote[T]) Name() string {
	return r.res.Name
}

// List fetches and normalizes the whole collection.
func (r *Remote[T]) List(ctx context.Context) ([]T, error) {
	body, err := r.client.Do(ctx, http.MethodGet, r.res.listPath(), nil)
	if err != nil {
		return nil, err
	}
	raws, err := splitArray(body)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		item, err := r.res.Decode(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create posts item and returns the stored record with its server id.
func (r *Remote[T]) Create(ctx context.Context, item T) (T, error) {
	body, err := r.client.Do(ctx, http.MethodPost, r.res.createPath(), r.res.Payload(item))
	if err != nil {
		var zero T
		return zero, err
	}
	created, err := r.res.Decode(body)
	if err != nil {
		return created, err
	}
	if r.res.ID(created) == 0 {
		return created, errors.Wrapf(ErrMalformed, "create %s: response carries no id", r.res.Name)
	}
	return created, nil
}

// Update replaces record id. When the backend acknowledges without a usable
// body the submitted item is returned.
func (r *Remote[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	body, err := r.client.Do(ctx, http.MethodPut, r.res.itemPath(id), r.res.Payload(item))
	if err != nil {
		var zero T
		return zero, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return item, nil
	}
	updated, err := r.res.Decode(body)
	if err != nil || r.res.ID(updated) != id {
		return item, nil
	}
	return updated, nil
}

// Delete removes record id.
func (r *Remote[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Do(ctx, http.MethodDelete, r.res.itemPath(id), nil)
	return err
}
