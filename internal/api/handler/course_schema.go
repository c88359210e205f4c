package handler

import (
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type createCourseRequest struct {
	Title                string  `json:"title"                 validate:"required"`
	Description          string  `json:"description"           validate:"required"`
	Weeks                int     `json:"weeks"                 validate:"required,gt=0"`
	Tuition              float64 `json:"tuition"               validate:"min=0"`
	MinimumSkill         string  `json:"minimum_skill"         validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarship_available"`
}

func (r createCourseRequest) toInput() ports.CourseInput {
	return ports.CourseInput{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         domain.MinimumSkill(r.MinimumSkill),
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}

type updateCourseRequest struct {
	Title                *string  `json:"title"                 validate:"omitempty,min=1"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks"                 validate:"omitempty,gt=0"`
	Tuition              *float64 `json:"tuition"               validate:"omitempty,min=0"`
	MinimumSkill         *string  `json:"minimum_skill"         validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarship_available"`
}

func (r updateCourseRequest) toPatch() ports.CoursePatch {
	p := ports.CoursePatch{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
	if r.MinimumSkill != nil {
		skill := domain.MinimumSkill(*r.MinimumSkill)
		p.MinimumSkill = &skill
	}
	return p
}

type courseResponse struct {
	Success bool           `json:"success"`
	Data    *domain.Course `json:"data"`
}

type courseListResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Pagination ports.Pagination `json:"pagination"`
	Data       []*domain.Course `json:"data"`
}
