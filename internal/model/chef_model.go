package model

import "time"

type ChefModel struct {
	ID                 uint       `gorm:"primaryKey"`
	UserID             uint       `gorm:"not null;uniqueIndex:idx_chefs_user"`
	User               *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SpecialtyCuisine   string     `gorm:"type:varchar(100)"`
	YearsOfExperience  int        `gorm:"not null;default:0"`
	CertificationName  string     `gorm:"type:varchar(200)"`
	CertificationImage string     `gorm:"type:varchar(500)"`
	PortfolioLink      string     `gorm:"type:varchar(500)"`
	Biography          string     `gorm:"type:text"`
	Rating             float64    `gorm:"type:numeric(3,2);not null;default:0"`
	TotalReviews       int        `gorm:"not null;default:0"`
	ApprovedDate       time.Time  `gorm:"not null"`
}

func (ChefModel) TableName() string {
	return "chefs"
}

// ChefApplicationModel allows many applications per user over time but at
// most one Pending at once.
type ChefApplicationModel struct {
	ID                 uint       `gorm:"primaryKey"`
	UserID             uint       `gorm:"not null;index;uniqueIndex:idx_chef_applications_one_pending,where:status = 'Pending'"`
	User               *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SpecialtyCuisine   string     `gorm:"type:varchar(100);not null"`
	YearsOfExperience  int        `gorm:"not null;default:0"`
	CertificationName  string     `gorm:"type:varchar(200)"`
	CertificationImage string     `gorm:"type:varchar(500)"`
	PortfolioLink      string     `gorm:"type:varchar(500)"`
	Biography          string     `gorm:"type:text"`
	Status             string     `gorm:"type:varchar(20);not null;default:Pending;index"`
	AdminRemarks       string     `gorm:"type:text"`
	DateApplied        time.Time  `gorm:"not null"`
	DateReviewed       *time.Time
}

func (ChefApplicationModel) TableName() string {
	return "chef_applications"
}
