package admin

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/domain"
)

func TestLoadAllJoinsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/products") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"t","name":"n"}]`)
	}))
	defer srv.Close()

	d := NewDashboard(backend.NewClient(srv.URL, time.Second), nil, false)
	err := d.LoadAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, backend.StatusCode(err))

	assert.Len(t, d.Jobs.Items(), 1)
	assert.Len(t, d.News.Items(), 1)
	assert.Len(t, d.Techniques.Items(), 1)
	assert.Error(t, d.Products.View().Err)
	assert.Empty(t, d.Products.Items())
}

func TestDashboardSampleFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDashboard(backend.NewClient(srv.URL, time.Second), nil, true)
	require.Error(t, d.LoadAll(context.Background()))
	for _, name := range domain.Resources {
		_, ok := d.Tab(name)
		assert.True(t, ok, name)
	}
	assert.True(t, d.Cases.View().Fallback)
	assert.Equal(t, "Fortune 500 Financial Institution", d.Cases.Items()[0].Title)
}

func TestAddJobAgainstBackend(t *testing.T) {
	var created string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/jobs/":
			_, _ = io.WriteString(w, `[]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/jobs/":
			body, _ := io.ReadAll(r.Body)
			created = string(body)
			out := strings.Replace(string(body), "{", `{"id":101,`, 1)
			_, _ = io.WriteString(w, out)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	d := NewDashboard(backend.NewClient(srv.URL, time.Second), nil, false)
	require.NoError(t, d.Jobs.Load(context.Background()))

	d.Jobs.OpenCreate()
	job := d.Jobs.Draft()
	job.Title = "AI Security Engineer"
	job.Department = "Engineering"
	job.Tags = []string{"AI", "Security"}
	_, err := d.Jobs.SaveDraft(context.Background(), job)
	require.NoError(t, err)

	v := d.Jobs.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, int64(101), v.Items[0].ID)
	assert.Equal(t, "AI Security Engineer", v.Items[0].Title)
	assert.Equal(t, "Engineering", v.Items[0].Department)
	assert.Equal(t, []string{"AI", "Security"}, v.Items[0].Tags)
	assert.False(t, v.Creating)
	assert.Contains(t, created, `"is_active":true`)
}
