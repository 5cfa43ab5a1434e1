package domain

// Case is a customer case study.
type Case struct {
	ID        int64    `json:"id" form:"id"`
	Title     string   `json:"title" form:"title" validate:"required,max=200"`
	Industry  string   `json:"industry" form:"industry" validate:"required,max=100"`
	Challenge string   `json:"challenge" form:"challenge" validate:"required"`
	Solution  string   `json:"solution" form:"solution" validate:"required"`
	Results   []string `json:"results" form:"-"`
	IsActive  bool     `json:"isActive" form:"isActive"`
}

func (c *Case) RecordID() int64 { return c.ID }

func (c *Case) Label() string { return c.Title }

func (c *Case) ListNames() []string { return []string{"results"} }

func (c *Case) ListField(name string) (*[]string, int, bool) {
	if name == "results" {
		return &c.Results, Unlimited, true
	}
	return nil, 0, false
}

func (c *Case) Reset() {
	*c = Case{Results: []string{}, IsActive: true}
}

func (c *Case) Normalize() {
	c.Results = emptyIfNil(c.Results)
}

func (c *Case) Visible() bool { return c.IsActive }

func (c *Case) SetRecordID(id int64) { c.ID = id }
