package http

import (
	"github.com/campusbook/room-booking-backend/internal/requester"
)

// RegisterRequesterRequest adds a requester to the registry.
type RegisterRequesterRequest struct {
	ID       int    `json:"id" binding:"min=0"`
	Category string `json:"category" binding:"required,oneof=student faculty staff partner admin"`
}

type RequesterResponse struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
}

func NewRequesterResponse(r *requester.Requester) RequesterResponse {
	return RequesterResponse{
		ID:       r.ID,
		Category: string(r.Category),
	}
}
