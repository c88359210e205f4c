package domain

import "time"

// Address is the location of a bootcamp.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Bootcamp is the primary directory entry. Courses and reviews hang off it.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       Address   `json:"address"`
	Careers       []string  `json:"careers"`
	AverageRating float64   `json:"average_rating,omitempty"`
	AverageCost   float64   `json:"average_cost,omitempty"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGI      bool      `json:"accept_gi"`
	User          string    `json:"user"`
	CreatedAt     time.Time `json:"created_at"`

	// Exclusive marks a bootcamp that counts against its owner's
	// one-bootcamp limit. Storage rejects a second exclusive bootcamp for
	// the same owner with ErrAlreadyPublished.
	Exclusive bool `json:"-"`
}

func (b *Bootcamp) OwnerID() string {
	if b == nil {
		return ""
	}
	return b.User
}

// Careers a bootcamp may advertise.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// BootcampRef is the short bootcamp view embedded in course and review reads.
type BootcampRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
