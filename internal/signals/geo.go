package signals

import (
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// GEO scores local-search-intent signals. It only applies when the caller
// supplies a local context; callers must not invoke it otherwise. 100-point
// budget: location mentions 25, "near me" 10, service area 15,
// contact info 20, booking CTA 15, service categories 15.
func GEO(doc model.ContentDocument) model.SignalReport {
	return evaluate("geo", geoRules, doc)
}

var bookingTerms = []string{
	"book now", "schedule", "call today", "call us", "get a quote",
	"free estimate", "request an appointment", "book an appointment",
}

var serviceTerms = []string{
	"services", "repair", "installation", "maintenance", "cleaning",
	"inspection", "consultation", "treatment", "emergency",
}

var geoRules = []Rule{
	{
		ID:  "location_mentions",
		Max: 25,
		Detect: func(doc model.ContentDocument) Measurement {
			n := 0
			lower := strings.ToLower(doc.Text + " " + doc.Title)
			if doc.Local != nil {
				if doc.Local.City != "" {
					n += strings.Count(lower, strings.ToLower(doc.Local.City))
				}
				if doc.Local.State != "" {
					n += strings.Count(lower, strings.ToLower(doc.Local.State))
				}
			}
			return Measurement{Value: n, Evidence: map[string]any{"location_mentions": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 25, 13)
		},
	},
	{
		ID:  "near_me",
		Max: 10,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, []string{"near me", "nearby", "in your area", "local"})
			return Measurement{Value: n, Evidence: map[string]any{"near_me_phrases": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 10, 5)
		},
	},
	{
		ID:  "service_area",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, []string{"service area", "serving", "we serve", "areas we cover"})
			if doc.Local != nil && doc.Local.ServiceArea != "" {
				n += strings.Count(strings.ToLower(doc.Text), strings.ToLower(doc.Local.ServiceArea))
			}
			return Measurement{Value: n, Evidence: map[string]any{"service_area_mentions": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 15, 8)
		},
	},
	{
		ID:  "contact_info",
		Max: 20,
		Detect: func(doc model.ContentDocument) Measurement {
			hasPhone := phoneRe.MatchString(doc.Text)
			hasAddress := containsAny(doc.Text, []string{" street", " ave", " suite", " blvd", " road"}) > 0
			hasHours := containsAny(doc.Text, []string{"hours", "open ", "mon-fri", "monday"}) > 0

			strength := 0
			if hasPhone {
				strength += 2
			}
			if hasAddress {
				strength++
			}
			if hasHours {
				strength++
			}
			return Measurement{Value: strength, Evidence: map[string]any{
				"has_phone":   hasPhone,
				"has_address": hasAddress,
				"has_hours":   hasHours,
			}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 20, 10)
		},
	},
	{
		ID:  "booking_cta",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, bookingTerms)
			return Measurement{Value: n, Evidence: map[string]any{"booking_ctas": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 15, 8)
		},
	},
	{
		ID:  "service_categories",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, serviceTerms)
			return Measurement{Value: n, Evidence: map[string]any{"service_mentions": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 15, 8)
		},
	},
}
