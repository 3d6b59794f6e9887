package model

// ContentDocument is an immutable snapshot of a piece of content under
// analysis. Improvement passes never mutate a document in place; each pass
// produces a new one.
type ContentDocument struct {
	Text            string        `json:"text"`                       // Body text (markdown or plain)
	Title           string        `json:"title,omitempty"`            // Page/article title
	MetaDescription string        `json:"meta_description,omitempty"` // SEO meta description
	Local           *LocalContext `json:"local,omitempty"`            // Present only for local-intent content
}

// LocalContext carries the geographic targeting of local-intent content.
// GEO signals are only scored when this is supplied.
type LocalContext struct {
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	ServiceArea string `json:"service_area,omitempty"`
}

// WithText returns a copy of the document carrying new body text.
func (d ContentDocument) WithText(text string) ContentDocument {
	d.Text = text
	return d
}

// IsLocal reports whether the document targets a local search intent.
func (d ContentDocument) IsLocal() bool {
	return d.Local != nil && d.Local.City != ""
}
