package handler

import (
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type createReviewRequest struct {
	Title  string `json:"title"  validate:"required,max=100"`
	Text   string `json:"text"   validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
}

type updateReviewRequest struct {
	Title  *string `json:"title"  validate:"omitempty,min=1,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=10"`
}

func (r updateReviewRequest) toPatch() ports.ReviewPatch {
	return ports.ReviewPatch{Title: r.Title, Text: r.Text, Rating: r.Rating}
}

type reviewResponse struct {
	Success bool           `json:"success"`
	Data    *domain.Review `json:"data"`
}

type reviewListResponse struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Pagination ports.Pagination `json:"pagination"`
	Data       []*domain.Review `json:"data"`
}
