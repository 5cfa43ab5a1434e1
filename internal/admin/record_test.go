package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avocado-ai/avocado-web/internal/domain"
)

func TestAddValue(t *testing.T) {
	tags := []string{}
	assert.True(t, AddValue(&tags, "AI", domain.Unlimited))
	assert.False(t, AddValue(&tags, "AI", domain.Unlimited))
	assert.False(t, AddValue(&tags, " AI ", domain.Unlimited))
	assert.False(t, AddValue(&tags, "   ", domain.Unlimited))
	assert.True(t, AddValue(&tags, "ai", domain.Unlimited))
	assert.Equal(t, []string{"AI", "ai"}, tags)
}

func TestAddValueRespectsLimit(t *testing.T) {
	images := []string{}
	for _, u := range []string{"a.png", "b.png", "c.png", "d.png"} {
		AddValue(&images, u, domain.NewsImageLimit)
	}
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, images)
}

func TestRemoveValue(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.True(t, RemoveValue(&list, "b"))
	assert.False(t, RemoveValue(&list, "x"))
	assert.Equal(t, []string{"a", "c"}, list)
}

func TestNewsDraftImageLimit(t *testing.T) {
	c := NewCollection[domain.News, *domain.News](nil, nil, nil)
	for _, u := range []string{"1.png", "2.png", "3.png"} {
		assert.True(t, c.AddDraftValue("images", u))
	}
	assert.False(t, c.AddDraftValue("images", "4.png"))
	assert.True(t, c.RemoveDraftValue("images", "2.png"))
	assert.Equal(t, []string{"1.png", "3.png"}, c.Draft().Images)
}
