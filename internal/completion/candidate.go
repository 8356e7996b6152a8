// Package completion holds completion candidates, the ranker that orders
// them and the providers that produce them.
package completion

// Type tells the renderer how to present a candidate.
type Type string

const (
	TypeDefault        Type = "default"
	TypeRecommendation Type = "recommendation"
)

// Candidate is one suggestion. Query is the text the value would replace;
// an empty Query means the candidate is shown unconditionally.
type Candidate struct {
	Type        Type   `json:"type"`
	Query       string `json:"query"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}
