package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// StaffMember mirrors the API's staff record.
type StaffMember struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	Department *string   `json:"department"`
	Status     string    `json:"status"`
	HireDate   string    `json:"hireDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateStaffRequest is the body of CreateStaff.
type CreateStaffRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Department *string `json:"department,omitempty"`
}

// UpdateStaffRequest is the body of UpdateStaff. Nil fields are not sent.
type UpdateStaffRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// ListOptions selects the page returned by ListStaff. Zero values use the defaults.
type ListOptions struct {
	Page  int
	Limit int
}

// Pagination is the page metadata returned by ListStaff.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// StaffList is one page of staff members.
type StaffList struct {
	Data       []StaffMember `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return apiErr
}

// String returns a pointer to s, for building update requests.
func String(s string) *string {
	return &s
}
