package domain

// News is a news article. PublishedDate is always a YYYY-MM-DD calendar date in
// this shape; the backend stores a timestamp.
type News struct {
	ID            int64    `json:"id" form:"id"`
	Title         string   `json:"title" form:"title" validate:"required,max=200"`
	Content       string   `json:"content" form:"content" validate:"required"`
	Category      string   `json:"category" form:"category" validate:"required,max=100"`
	PublishedDate string   `json:"publishedDate" form:"publishedDate"`
	IsPublished   bool     `json:"isPublished" form:"isPublished"`
	Images        []string `json:"images" form:"-"`
}

func (n *News) RecordID() int64 { return n.ID }

func (n *News) Label() string { return n.Title }

func (n *News) ListNames() []string { return []string{"images"} }

func (n *News) ListField(name string) (*[]string, int, bool) {
	if name == "images" {
		return &n.Images, NewsImageLimit, true
	}
	return nil, 0, false
}

func (n *News) Reset() {
	*n = News{Images: []string{}, IsPublished: true}
}

func (n *News) Normalize() {
	n.Images = emptyIfNil(n.Images)
}

func (n *News) Visible() bool { return n.IsPublished }

func (n *News) SetRecordID(id int64) { n.ID = id }
