package domain

import "time"

// Role represents a principal's role in the system
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var roleRank = map[Role]int{
	RoleStudent:    1,
	RoleInstructor: 2,
	RoleAdmin:      3,
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether a principal holding r may perform an action that
// requires the given role. Roles are ordered student < instructor < admin.
func (r Role) Allows(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// Principal is an authenticated caller resolved from a credential token
type Principal struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RequiresRole is the authorization predicate consumed by route guards
func (p *Principal) RequiresRole(required Role) bool {
	if p == nil {
		return false
	}
	return p.Role.Allows(required)
}

// CourseStatus is the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusActive    CourseStatus = "active"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusInactive  CourseStatus = "inactive"
)

// Valid reports whether s is a known course status
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusActive, CourseStatusPublished, CourseStatusInactive:
		return true
	}
	return false
}

// Enrollable reports whether a course in this status accepts enrollments
func (s CourseStatus) Enrollable() bool {
	return s == CourseStatusActive || s == CourseStatusPublished
}

// Course is an enrollable offering with bounded capacity
type Course struct {
	ID            uint
	CategoryID    *uint
	Title         string
	Price         float64
	MaxSeats      int
	EnrolledCount int
	Status        CourseStatus
}

// CheckEnrollable returns nil when one more seat can be reserved.
// Status is checked before capacity.
func (c Course) CheckEnrollable() error {
	if !c.Status.Enrollable() {
		return ErrCourseNotEnrollable
	}
	if c.EnrolledCount >= c.MaxSeats {
		return ErrCourseFull
	}
	return nil
}

// SeatsLeft returns the number of seats still available
func (c Course) SeatsLeft() int {
	if c.EnrolledCount >= c.MaxSeats {
		return 0
	}
	return c.MaxSeats - c.EnrolledCount
}

// Purchaser holds the contact fields recorded with a purchase
type Purchaser struct {
	FullName string
	Email    string
	Phone    string
	Address  string
}

// PurchaseDetails is the caller-supplied part of an enrollment
type PurchaseDetails struct {
	Purchaser     Purchaser
	PaymentMethod string
	Comments      string
}

// PurchaseRecord is durable evidence of a successful enrollment
type PurchaseRecord struct {
	ID            uint
	Reference     string
	CourseID      uint
	UserID        uint
	Purchaser     Purchaser
	PaymentMethod string
	Comments      string
	Amount        float64
	CreatedAt     time.Time
}

// EnrollmentState tracks a single enrollment attempt
type EnrollmentState string

const (
	EnrollmentStarted         EnrollmentState = "started"
	EnrollmentCapacityChecked EnrollmentState = "capacity_checked"
	EnrollmentCommitted       EnrollmentState = "committed"
	EnrollmentAborted         EnrollmentState = "aborted"
)

// CapacityDrift describes a course whose seat counter disagrees with its purchases
type CapacityDrift struct {
	CourseID      uint
	EnrolledCount int
	MaxSeats      int
	PurchaseCount int
}
