package entity

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ChefProfile holds the fields shared by a chef and an application to become one.
type ChefProfile struct {
	SpecialtyCuisine   string
	YearsOfExperience  int
	CertificationName  string
	CertificationImage string
	PortfolioLink      string
	Biography          string
}

type Chef struct {
	ID       uint
	UserID   uint
	FullName string
	Username string
	ChefProfile
	Rating       float64
	TotalReviews int
	ApprovedDate time.Time
}

type ChefApplication struct {
	ID            uint
	UserID        uint
	ApplicantName string
	ChefProfile
	Status       ApplicationStatus
	AdminRemarks string
	DateApplied  time.Time
	DateReviewed *time.Time
}
