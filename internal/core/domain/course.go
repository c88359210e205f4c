package domain

import "time"

// MinimumSkill is the entry level a course expects.
type MinimumSkill string

const (
	SkillBeginner     MinimumSkill = "beginner"
	SkillIntermediate MinimumSkill = "intermediate"
	SkillAdvanced     MinimumSkill = "advanced"
)

// Course belongs to exactly one bootcamp and is owned by the user that added it.
type Course struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	Weeks                int          `json:"weeks"`
	Tuition              float64      `json:"tuition"`
	MinimumSkill         MinimumSkill `json:"minimum_skill"`
	ScholarshipAvailable bool         `json:"scholarship_available"`
	Bootcamp             string       `json:"bootcamp"`
	User                 string       `json:"user"`
	CreatedAt            time.Time    `json:"created_at"`

	BootcampInfo *BootcampRef `json:"bootcamp_info,omitempty"`
}

func (c *Course) OwnerID() string {
	if c == nil {
		return ""
	}
	return c.User
}
