package domain

import "time"

// StaffStatus enumerates the employment states of a staff member.
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
	StaffStatusOnLeave  StaffStatus = "on_leave"
)

// StaffStatuses lists every accepted status value.
var StaffStatuses = []StaffStatus{StaffStatusActive, StaffStatusInactive, StaffStatusOnLeave}

// Valid reports whether s is one of the known statuses.
func (s StaffStatus) Valid() bool {
	for _, known := range StaffStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// StaffMember models a single employee record.
type StaffMember struct {
	ID         string      `json:"id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Email      string      `json:"email"`
	Position   string      `json:"position"`
	Department *string     `json:"department"`
	Status     StaffStatus `json:"status"`
	HireDate   Date        `json:"hireDate"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// StaffPatch holds the fields supplied to a partial update. Nil fields are left untouched.
type StaffPatch struct {
	FirstName  *string      `json:"firstName,omitempty"`
	LastName   *string      `json:"lastName,omitempty"`
	Email      *string      `json:"email,omitempty"`
	Position   *string      `json:"position,omitempty"`
	Department *string      `json:"department,omitempty"`
	Status     *StaffStatus `json:"status,omitempty"`
}

// Fields returns the JSON names of the fields present in the patch.
func (p StaffPatch) Fields() []string {
	fields := make([]string, 0, 6)
	if p.FirstName != nil {
		fields = append(fields, "firstName")
	}
	if p.LastName != nil {
		fields = append(fields, "lastName")
	}
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if p.Position != nil {
		fields = append(fields, "position")
	}
	if p.Department != nil {
		fields = append(fields, "department")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	return fields
}

// Apply merges the patch into s and stamps UpdatedAt. The new UpdatedAt is always
// strictly after the previous one, even when the clock has not advanced.
func (s *StaffMember) Apply(p StaffPatch, at time.Time) {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Position != nil {
		s.Position = *p.Position
	}
	if p.Department != nil {
		dept := *p.Department
		s.Department = &dept
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	s.UpdatedAt = NextUpdatedAt(s.UpdatedAt, at)
}

// Clone returns a deep copy so callers never share the department pointer.
func (s StaffMember) Clone() StaffMember {
	if s.Department != nil {
		dept := *s.Department
		s.Department = &dept
	}
	return s
}

// NextUpdatedAt returns at, or one microsecond past prev when at does not advance it.
func NextUpdatedAt(prev, at time.Time) time.Time {
	if !at.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return at
}

// Timestamp normalizes t to the precision and zone every store can round-trip.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
