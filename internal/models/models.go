package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// ApiToken is the persisted bearer credential issued at login. Presenting the
// token on an API request authenticates as the owning user.
type ApiToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Token  string `gorm:"uniqueIndex;not null" json:"-"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	User   User   `json:"-"`
}

type JobPosting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title          string              `gorm:"not null" json:"title"`
	Location       *string             `json:"location"`
	EmploymentType string              `json:"employment_type"`
	Description    *string             `gorm:"type:text" json:"description"`
	SalaryMin      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"salary_min"`
	SalaryMax      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"salary_max"`
	Currency       string              `gorm:"size:10;default:'MYR'" json:"currency"`
	Status         string              `gorm:"default:'open'" json:"status"`
	PostedAt       DateTime            `json:"posted_at"`
	ExpiresAt      DateTime            `json:"expires_at"`
	// CreatedBy is set once at creation and never updated; only this user may
	// modify the posting afterwards.
	CreatedBy uint `json:"created_by"`
}

const (
	FullTime   = "Full-time"
	PartTime   = "Part-time"
	Contract   = "Contract"
	Internship = "Internship"
)

var EmploymentTypes = []string{FullTime, PartTime, Contract, Internship}

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

var Statuses = []string{StatusOpen, StatusClosed}
