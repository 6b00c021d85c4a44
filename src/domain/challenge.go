package domain

import (
	"time"
)

// ChallengeDescription is the marketing copy attached to every challenge page.
// The backend never supplies it.
const ChallengeDescription = "Join this Mind Challenge — test what you know, learn what you don’t, and climb the peak!"

// Challenge is a challenge record as read from the documents collection
type Challenge struct {
	Slug        string `json:"slug" gorm:"column:slug;primaryKey"`
	Title       string `json:"title" gorm:"column:title"`
	ImageURL    string `json:"image_url" gorm:"column:image_url"`
	Description string `json:"description" gorm:"-"`
}

// TableName maps Challenge onto the backend's documents table
func (Challenge) TableName() string {
	return "documents"
}

// WithDescription returns a copy of the challenge carrying the fixed description
func (c Challenge) WithDescription() Challenge {
	c.Description = ChallengeDescription
	return c
}

// StaticPath is a path parameter set for one pre-generated page
type StaticPath struct {
	Params map[string]string `json:"params"`
}

func NewStaticPath(slug string) StaticPath {
	return StaticPath{
		Params: map[string]string{"slug": slug},
	}
}

func (p StaticPath) Slug() string {
	return p.Params["slug"]
}

// RenderedPage is a generated HTML document and the time it was produced
type RenderedPage struct {
	Slug        string    `json:"slug"`
	HTML        []byte    `json:"html"`
	GeneratedAt time.Time `json:"generated_at"`
}

// IsStale reports whether the page is due for regeneration
func (p *RenderedPage) IsStale(now time.Time, interval time.Duration) bool {
	return now.Sub(p.GeneratedAt) >= interval
}
