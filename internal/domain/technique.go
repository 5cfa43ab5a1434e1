package domain

// Technique describes a core technology shown on the techniques page.
type Technique struct {
	ID          int64    `json:"id" form:"id"`
	Name        string   `json:"name" form:"name" validate:"required,max=200"`
	Category    string   `json:"category" form:"category" validate:"required,max=100"`
	Description string   `json:"description" form:"description" validate:"required"`
	Features    []string `json:"features" form:"-"`
	IsActive    bool     `json:"isActive" form:"isActive"`
}

func (t *Technique) RecordID() int64 { return t.ID }

func (t *Technique) Label() string { return t.Name }

func (t *Technique) ListNames() []string { return []string{"features"} }

func (t *Technique) ListField(name string) (*[]string, int, bool) {
	if name == "features" {
		return &t.Features, Unlimited, true
	}
	return nil, 0, false
}

func (t *Technique) Reset() {
	*t = Technique{Features: []string{}, IsActive: true}
}

func (t *Technique) Normalize() {
	t.Features = emptyIfNil(t.Features)
}

func (t *Technique) Visible() bool { return t.IsActive }

func (t *Technique) SetRecordID(id int64) { t.ID = id }
