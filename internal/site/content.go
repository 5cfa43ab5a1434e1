package site

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/avocado-ai/avocado-web/internal/domain"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Content is the static copy of every public collection.
type Content struct {
	Products   []domain.Product   `yaml:"products"`
	Techniques []domain.Technique `yaml:"techniques"`
	Cases      []domain.Case      `yaml:"cases"`
	Jobs       []domain.Job       `yaml:"jobs"`
	News       []domain.News      `yaml:"news"`
}

var fallback = mustLoadContent(fallbackYAML)

func mustLoadContent(data []byte) Content {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(err)
	}
	for i := range c.Products {
		c.Products[i].Normalize()
	}
	for i := range c.Techniques {
		c.Techniques[i].Normalize()
	}
	for i := range c.Cases {
		c.Cases[i].Normalize()
	}
	for i := range c.Jobs {
		c.Jobs[i].Normalize()
	}
	for i := range c.News {
		c.News[i].Normalize()
	}
	return c
}

// Fallback returns the embedded content.
func Fallback() Content {
	return fallback
}
