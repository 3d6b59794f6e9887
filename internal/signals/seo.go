package signals

import "github.com/avoskres/aiso/internal/model"

// SEO scores structural search-engine signals: title and meta-description
// length, header hierarchy, links, and images. 100-point budget:
// title 20, meta 20, headers 30, links 15, images 15.
func SEO(doc model.ContentDocument) model.SignalReport {
	return evaluate("seo", seoRules, doc)
}

var seoRules = []Rule{
	{
		ID:  "title_length",
		Max: 20,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(doc.Title)
			return Measurement{Value: n, Evidence: map[string]any{"title_length": n}}
		},
		Points: func(m Measurement) int {
			if m.Value == 0 {
				return 0
			}
			return rangeTiered(m.Value, 30, 60, 15, 20, 10)
		},
	},
	{
		ID:  "meta_length",
		Max: 20,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(doc.MetaDescription)
			return Measurement{Value: n, Evidence: map[string]any{"meta_length": n}}
		},
		Points: func(m Measurement) int {
			if m.Value == 0 {
				return 0
			}
			return rangeTiered(m.Value, 120, 160, 40, 20, 10)
		},
	},
	{
		ID:  "header_hierarchy",
		Max: 30,
		Detect: func(doc model.ContentDocument) Measurement {
			counts := headingCounts(doc.Text)
			return Measurement{
				Value: counts[1] + counts[2] + counts[3],
				Evidence: map[string]any{
					"h1_count": counts[1],
					"h2_count": counts[2],
					"h3_count": counts[3],
				},
			}
		},
		Points: func(m Measurement) int {
			h1, _ := m.Evidence["h1_count"].(int)
			h2, _ := m.Evidence["h2_count"].(int)
			h3, _ := m.Evidence["h3_count"].(int)

			pts := 0
			if h1 >= 1 {
				pts += 10
			}
			pts += tiered(h2, 3, 1, 12, 6)
			pts += tiered(h3, 2, 1, 8, 4)
			return pts
		},
	},
	{
		ID:  "link_count",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := countLinks(doc.Text)
			return Measurement{Value: n, Evidence: map[string]any{"link_count": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 15, 8)
		},
	},
	{
		ID:  "image_count",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := countImages(doc.Text)
			return Measurement{Value: n, Evidence: map[string]any{"image_count": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 15, 8)
		},
	},
}
