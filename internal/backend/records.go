package backend

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/pkg/dates"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StringList decodes an array field that the backend sends either as a JSON
// array or as a JSON-encoded string holding an array. Anything else decodes
// to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = parseStringList(data)
	return nil
}

func parseStringList(data []byte) []string {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "" || raw == "null":
		return []string{}
	case strings.HasPrefix(raw, "["):
		var items []interface{}
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return []string{}
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item == nil {
				continue
			}
			out = append(out, cast.ToString(item))
		}
		return out
	case strings.HasPrefix(raw, `"`):
		var encoded string
		if err := json.Unmarshal([]byte(raw), &encoded); err != nil {
			return []string{}
		}
		encoded = strings.TrimSpace(encoded)
		if !strings.HasPrefix(encoded, "[") {
			return []string{}
		}
		return parseStringList([]byte(encoded))
	}
	return []string{}
}

// flag reads a boolean that may be missing, null, a string or a number.
// Missing values take the backend default of true.
func flag(v interface{}) bool {
	if v == nil {
		return true
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

type jobRecord struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Department   string      `json:"department"`
	Location     string      `json:"location"`
	Type         string      `json:"type"`
	Salary       string      `json:"salary"`
	Description  string      `json:"description"`
	Requirements StringList  `json:"requirements"`
	Benefits     StringList  `json:"benefits"`
	Tags         StringList  `json:"tags"`
	PostedDate   string      `json:"posted_date"`
	IsActive     interface{} `json:"is_active"`
}

type jobPayload struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Tags         []string `json:"tags"`
	PostedDate   string   `json:"posted_date,omitempty"`
	IsActive     bool     `json:"is_active"`
}

// NormalizeJob converts a backend job into its working shape.
func NormalizeJob(data []byte) (domain.Job, error) {
	var r jobRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Job{}, malformed(err)
	}
	job := domain.Job{
		ID:           r.ID,
		Title:        r.Title,
		Department:   r.Department,
		Location:     r.Location,
		Type:         r.Type,
		Salary:       r.Salary,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Tags:         r.Tags,
		PostedDate:   dates.ToDisplayDate(r.PostedDate),
		IsActive:     flag(r.IsActive),
	}
	job.Normalize()
	return job, nil
}

// JobPayload builds the backend body for job.
func JobPayload(job domain.Job) interface{} {
	job.Normalize()
	p := jobPayload{
		ID:           job.ID,
		Title:        job.Title,
		Department:   job.Department,
		Location:     job.Location,
		Type:         job.Type,
		Salary:       job.Salary,
		Description:  job.Description,
		Requirements: job.Requirements,
		Benefits:     job.Benefits,
		Tags:         job.Tags,
		IsActive:     job.IsActive,
	}
	if job.PostedDate != "" {
		p.PostedDate = dates.ToBackendDate(job.PostedDate)
	}
	return p
}

type newsRecord struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Category      string      `json:"category"`
	PublishedDate string      `json:"published_date"`
	IsPublished   interface{} `json:"is_published"`
	Images        StringList  `json:"images"`
}

type newsPayload struct {
	ID            int64    `json:"id,omitempty"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	PublishedDate string   `json:"published_date"`
	IsPublished   bool     `json:"is_published"`
	Images        []string `json:"images"`
}

// NormalizeNews converts a backend news item. A missing publish date shows
// as today.
func NormalizeNews(data []byte) (domain.News, error) {
	var r newsRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.News{}, malformed(err)
	}
	published := dates.Today()
	if r.PublishedDate != "" {
		published = dates.ToDisplayDate(r.PublishedDate)
	}
	n := domain.News{
		ID:            r.ID,
		Title:         r.Title,
		Content:       r.Content,
		Category:      r.Category,
		PublishedDate: published,
		IsPublished:   flag(r.IsPublished),
		Images:        r.Images,
	}
	n.Normalize()
	return n, nil
}

func NewsPayload(n domain.News) interface{} {
	n.Normalize()
	return newsPayload{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		Category:      n.Category,
		PublishedDate: dates.ToBackendDate(n.PublishedDate),
		IsPublished:   n.IsPublished,
		Images:        n.Images,
	}
}

type caseRecord struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Industry  string      `json:"industry"`
	Challenge string      `json:"challenge"`
	Solution  string      `json:"solution"`
	Results   StringList  `json:"results"`
	IsActive  interface{} `json:"is_active"`
}

type casePayload struct {
	ID        int64    `json:"id,omitempty"`
	Title     string   `json:"title"`
	Industry  string   `json:"industry"`
	Challenge string   `json:"challenge"`
	Solution  string   `json:"solution"`
	Results   []string `json:"results"`
	IsActive  bool     `json:"is_active"`
}

func NormalizeCase(data []byte) (domain.Case, error) {
	var r caseRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Case{}, malformed(err)
	}
	c := domain.Case{
		ID:        r.ID,
		Title:     r.Title,
		Industry:  r.Industry,
		Challenge: r.Challenge,
		Solution:  r.Solution,
		Results:   r.Results,
		IsActive:  flag(r.IsActive),
	}
	c.Normalize()
	return c, nil
}

func CasePayload(c domain.Case) interface{} {
	c.Normalize()
	return casePayload{
		ID:        c.ID,
		Title:     c.Title,
		Industry:  c.Industry,
		Challenge: c.Challenge,
		Solution:  c.Solution,
		Results:   c.Results,
		IsActive:  c.IsActive,
	}
}

type techniqueRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Features    StringList  `json:"features"`
	IsActive    interface{} `json:"is_active"`
}

type techniquePayload struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsActive    bool     `json:"is_active"`
}

func NormalizeTechnique(data []byte) (domain.Technique, error) {
	var r techniqueRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Technique{}, malformed(err)
	}
	t := domain.Technique{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Features:    r.Features,
		IsActive:    flag(r.IsActive),
	}
	t.Normalize()
	return t, nil
}

func TechniquePayload(t domain.Technique) interface{} {
	t.Normalize()
	return techniquePayload{
		ID:          t.ID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		Features:    t.Features,
		IsActive:    t.IsActive,
	}
}

type productRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Features    StringList  `json:"features"`
	IsActive    interface{} `json:"is_active"`
}

type productPayload struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
	IsActive    bool     `json:"is_active"`
}

func NormalizeProduct(data []byte) (domain.Product, error) {
	var r productRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Product{}, malformed(err)
	}
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       cast.ToString(r.Price),
		Features:    r.Features,
		IsActive:    flag(r.IsActive),
	}
	p.Normalize()
	return p, nil
}

func ProductPayload(p domain.Product) interface{} {
	p.Normalize()
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Features:    p.Features,
		IsActive:    p.IsActive,
	}
}
