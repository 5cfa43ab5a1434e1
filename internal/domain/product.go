package domain

// Product represents a catalog product. Price is free text ("Contact sales",
// "From $99/month") as published by the marketing team.
type Product struct {
	ID          int64    `json:"id" form:"id"`
	Name        string   `json:"name" form:"name" validate:"required,max=200"`
	Category    string   `json:"category" form:"category" validate:"required,max=100"`
	Description string   `json:"description" form:"description" validate:"required"`
	Price       string   `json:"price" form:"price" validate:"required,max=100"`
	Features    []string `json:"features" form:"-"`
	IsActive    bool     `json:"isActive" form:"isActive"`
}

func (p *Product) RecordID() int64 { return p.ID }

func (p *Product) Label() string { return p.Name }

func (p *Product) ListNames() []string { return []string{"features"} }

func (p *Product) ListField(name string) (*[]string, int, bool) {
	if name == "features" {
		return &p.Features, Unlimited, true
	}
	return nil, 0, false
}

func (p *Product) Reset() {
	*p = Product{Features: []string{}, IsActive: true}
}

func (p *Product) Normalize() {
	p.Features = emptyIfNil(p.Features)
}

func (p *Product) Visible() bool { return p.IsActive }

func (p *Product) SetRecordID(id int64) { p.ID = id }
