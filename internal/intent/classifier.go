package intent

import (
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// Classifier infers a target reading-ease value from topic keywords and an
// audience description. Deterministic, no external calls.
type Classifier struct {
	technical    []string
	professional []string
	consumer     []string
	emotional    []string
	younger      []string
	older        []string
}

// NewClassifier creates a new intent classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		technical: []string{
			"api", "sdk", "kubernetes", "architecture", "algorithm", "protocol",
			"encryption", "database", "infrastructure", "devops", "compiler",
			"machine learning", "neural", "engineering", "programming", "developer",
		},
		professional: []string{
			"compliance", "regulatory", "litigation", "audit", "fiduciary",
			"underwriting", "procurement", "b2b", "enterprise", "stakeholder",
			"attorney", "physician", "clinician", "accountant", "executive",
		},
		consumer: []string{
			"tips", "guide", "how to", "best", "easy", "simple", "beginner",
			"home", "family", "budget", "diy", "everyday", "shopping", "recipe",
		},
		emotional: []string{
			"grief", "loss", "divorce", "diagnosis", "hospice", "funeral",
			"anxiety", "depression", "caregiver", "bereavement", "trauma",
		},
		younger: []string{
			"teen", "teenager", "student", "kids", "children", "young", "gen z",
			"college", "school",
		},
		older: []string{
			"senior", "seniors", "elderly", "retiree", "retirement", "older adult",
		},
	}
}

// Classify buckets the keywords and audience description and selects a target
// reading-ease value from a fixed lookup. Confidence is "high" when one
// bucket clearly dominates, "medium" otherwise.
func (c *Classifier) Classify(keywords []string, audience string) model.TargetIntent {
	corpus := strings.ToLower(strings.Join(keywords, " ") + " " + audience)

	technical := countMatches(corpus, c.technical)
	professional := countMatches(corpus, c.professional)
	consumer := countMatches(corpus, c.consumer)
	emotional := countMatches(corpus, c.emotional)
	younger := countMatches(corpus, c.younger)
	older := countMatches(corpus, c.older)

	type bucket struct {
		name  string
		count int
	}
	buckets := []bucket{
		{"technical", technical},
		{"professional", professional},
		{"consumer", consumer},
		{"emotional", emotional},
		{"younger", younger},
	}

	top, second := bucket{}, bucket{}
	for _, b := range buckets {
		if b.count > top.count {
			second = top
			top = b
		} else if b.count > second.count {
			second = b
		}
	}

	confidence := "medium"
	if top.count > 0 && top.count >= second.count*2 && top.count >= 2 {
		confidence = "high"
	}

	// Mixed technical + consumer audiences get a middle-ground target.
	if technical > 0 && consumer > 0 {
		return model.TargetIntent{
			TargetReadability: 60,
			Label:             "mixed",
			Reasoning:         "both technical and consumer signals present; aiming between the two",
			Confidence:        "medium",
		}
	}

	switch {
	case top.count == 0:
		return model.TargetIntent{
			TargetReadability: 55,
			Label:             "general",
			Reasoning:         "no audience signals matched; using the general-audience default",
			Confidence:        "medium",
		}
	case top.name == "emotional" && older > 0:
		return model.TargetIntent{
			TargetReadability: 58,
			Label:             "emotional-older-adults",
			Reasoning:         "sensitive topic for older adults; gentle but plain language",
			Confidence:        confidence,
		}
	case top.name == "emotional":
		return model.TargetIntent{
			TargetReadability: 58,
			Label:             "emotional",
			Reasoning:         "emotionally sensitive topic; plain, calm language",
			Confidence:        confidence,
		}
	case top.name == "technical":
		return model.TargetIntent{
			TargetReadability: 35,
			Label:             "technical",
			Reasoning:         "technical vocabulary dominates; expert readers expect dense prose",
			Confidence:        confidence,
		}
	case top.name == "professional":
		return model.TargetIntent{
			TargetReadability: 50,
			Label:             "professional",
			Reasoning:         "professional audience; formal but not academic",
			Confidence:        confidence,
		}
	case top.name == "younger":
		return model.TargetIntent{
			TargetReadability: 75,
			Label:             "younger",
			Reasoning:         "younger readers; very accessible language",
			Confidence:        confidence,
		}
	default:
		return model.TargetIntent{
			TargetReadability: 70,
			Label:             "consumer",
			Reasoning:         "general consumer audience; broadly accessible language",
			Confidence:        confidence,
		}
	}
}

func countMatches(corpus string, terms []string) int {
	count := 0
	for _, t := range terms {
		if strings.Contains(corpus, t) {
			count++
		}
	}
	return count
}
