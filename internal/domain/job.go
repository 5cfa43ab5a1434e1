package domain

// Job is a career posting in its working (camelCase) shape.
type Job struct {
	ID           int64    `json:"id" form:"id"`
	Title        string   `json:"title" form:"title" validate:"required,max=200"`
	Department   string   `json:"department" form:"department" validate:"required,max=100"`
	Location     string   `json:"location" form:"location" validate:"required,max=100"`
	Type         string   `json:"type" form:"type" validate:"required,max=50"`
	Salary       string   `json:"salary" form:"salary" validate:"required,max=100"`
	Description  string   `json:"description" form:"description" validate:"required"`
	Requirements []string `json:"requirements" form:"-"`
	Benefits     []string `json:"benefits" form:"-"`
	Tags         []string `json:"tags" form:"-"`
	PostedDate   string   `json:"postedDate" form:"postedDate"`
	IsActive     bool     `json:"isActive" form:"isActive"`
}

func (j *Job) RecordID() int64 { return j.ID }

func (j *Job) Label() string { return j.Title }

func (j *Job) ListNames() []string {
	return []string{"requirements", "benefits", "tags"}
}

// ListField returns the named array field and its editor limit.
func (j *Job) ListField(name string) (*[]string, int, bool) {
	switch name {
	case "requirements":
		return &j.Requirements, Unlimited, true
	case "benefits":
		return &j.Benefits, Unlimited, true
	case "tags":
		return &j.Tags, Unlimited, true
	}
	return nil, 0, false
}

// Reset restores the empty-default shape used by the create form.
func (j *Job) Reset() {
	*j = Job{
		Requirements: []string{},
		Benefits:     []string{},
		Tags:         []string{},
		IsActive:     true,
	}
}

// Normalize replaces nil arrays with empty ones.
func (j *Job) Normalize() {
	j.Requirements = emptyIfNil(j.Requirements)
	j.Benefits = emptyIfNil(j.Benefits)
	j.Tags = emptyIfNil(j.Tags)
}

// Visible reports whether the posting is shown on the public site.
func (j *Job) Visible() bool { return j.IsActive }

func (j *Job) SetRecordID(id int64) { j.ID = id }
