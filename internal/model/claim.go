package model

// ClaimStatus is the verification outcome for a single claim.
type ClaimStatus string

const (
	ClaimVerified   ClaimStatus = "verified"   // 2+ corroborating sources
	ClaimUncertain  ClaimStatus = "uncertain"  // 1 source, or conflicting sources
	ClaimUnverified ClaimStatus = "unverified" // No supporting sources found
)

// Claim is a checkable factual assertion extracted from a document.
// Claims are created by extraction, resolved once by verification, and never
// mutated afterward; a new fact-check run produces a new claim set.
type Claim struct {
	Text       string      `json:"text"`
	Status     ClaimStatus `json:"status"`
	Confidence int         `json:"confidence"` // 0-100
	Sources    []Source    `json:"sources,omitempty"`
}

// Source is one piece of web evidence supporting (or failing to support) a claim.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// FactCheckResult rolls a verification run into a single confidence score.
type FactCheckResult struct {
	Confidence int     `json:"confidence"` // Mean of per-claim confidence; 100 when no claims
	Claims     []Claim `json:"claims"`

	Verified   int `json:"verified"`
	Uncertain  int `json:"uncertain"`
	Unverified int `json:"unverified"`
}

// CountByStatus tallies the status counts from the claim list.
func (r *FactCheckResult) CountByStatus() {
	r.Verified, r.Uncertain, r.Unverified = 0, 0, 0
	for _, c := range r.Claims {
		switch c.Status {
		case ClaimVerified:
			r.Verified++
		case ClaimUncertain:
			r.Uncertain++
		case ClaimUnverified:
			r.Unverified++
		}
	}
}
