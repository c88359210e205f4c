package domain

import "time"

const (
	MinRating = 1
	MaxRating = 10
)

// Review is a rating a user leaves for a bootcamp. One per user per bootcamp.
type Review struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Bootcamp  string    `json:"bootcamp"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`

	BootcampInfo *BootcampRef `json:"bootcamp_info,omitempty"`
}

func (r *Review) OwnerID() string {
	if r == nil {
		return ""
	}
	return r.User
}
