package handler

import (
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}

func (a addressRequest) toDomain() domain.Address {
	return domain.Address{Street: a.Street, City: a.City, State: a.State, Zipcode: a.Zipcode, Country: a.Country}
}

type createBootcampRequest struct {
	Name          string         `json:"name"           validate:"required,max=50"`
	Description   string         `json:"description"    validate:"required,max=500"`
	Website       string         `json:"website"        validate:"omitempty,url"`
	Phone         string         `json:"phone"          validate:"omitempty,max=20"`
	Email         string         `json:"email"          validate:"omitempty,email"`
	Address       addressRequest `json:"address"`
	Careers       []string       `json:"careers"        validate:"required,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       bool           `json:"housing"`
	JobAssistance bool           `json:"job_assistance"`
	JobGuarantee  bool           `json:"job_guarantee"`
	AcceptGI      bool           `json:"accept_gi"`
}

func (r createBootcampRequest) toInput() ports.BootcampInput {
	return ports.BootcampInput{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address.toDomain(),
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGI:      r.AcceptGI,
	}
}

// updateBootcampRequest has no owner field; ownership never changes through
// the API.
type updateBootcampRequest struct {
	Name          *string         `json:"name"           validate:"omitempty,min=1,max=50"`
	Description   *string         `json:"description"    validate:"omitempty,max=500"`
	Website       *string         `json:"website"        validate:"omitempty,url"`
	Phone         *string         `json:"phone"          validate:"omitempty,max=20"`
	Email         *string         `json:"email"          validate:"omitempty,email"`
	Address       *addressRequest `json:"address"`
	Careers       []string        `json:"careers"        validate:"omitempty,min=1,dive,oneof='Web Development' 'Mobile Development' 'UI/UX' 'Data Science' 'Business' 'Other'"`
	Housing       *bool           `json:"housing"`
	JobAssistance *bool           `json:"job_assistance"`
	JobGuarantee  *bool           `json:"job_guarantee"`
	AcceptGI      *bool           `json:"accept_gi"`
}

func (r updateBootcampRequest) toPatch() ports.BootcampPatch {
	p := ports.BootcampPatch{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGI:      r.AcceptGI,
	}
	if r.Address != nil {
		addr := r.Address.toDomain()
		p.Address = &addr
	}
	return p
}

type bootcampResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Bootcamp `json:"data"`
}

type bootcampListResponse struct {
	Success    bool               `json:"success"`
	Count      int                `json:"count"`
	Pagination ports.Pagination   `json:"pagination"`
	Data       []*domain.Bootcamp `json:"data"`
}

type deleteAllResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}
