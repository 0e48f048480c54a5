package dto

import "github.com/Nwoyi/staffing-api/internal/domain"

// StaffCreateRequest payload for POST /staff.
type StaffCreateRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Department *string `json:"department"`
}

// StaffUpdateRequest payload for PUT /staff/:id. Absent fields stay unchanged.
type StaffUpdateRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// Patch converts the request into a domain patch.
func (r StaffUpdateRequest) Patch() domain.StaffPatch {
	patch := domain.StaffPatch{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Position:   r.Position,
		Department: r.Department,
	}
	if r.Status != nil {
		status := domain.StaffStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// Pagination describes the page window returned by GET /staff.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// StaffListResponse is the body of GET /staff.
type StaffListResponse struct {
	Data       []domain.StaffMember `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
