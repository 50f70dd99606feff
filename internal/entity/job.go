package entity

import "github.com/immigrant-voices/backend/pkg/enum"

type ApplicationStatus string

var (
	ApplicationPending  = enum.New(ApplicationStatus("pending"))
	ApplicationAccepted = enum.New(ApplicationStatus("accepted"))
	ApplicationRejected = enum.New(ApplicationStatus("rejected"))
)

type Job struct {
	Base
	PostedBy     string
	PostedByUser User `gorm:"foreignKey:PostedBy"`

	Title       string
	Description string `gorm:"type:longtext"`
	Company     string
	Location    string `gorm:"index"`
	Category    string `gorm:"index"`
	Salary      string

	IsOpen bool `gorm:"default:true"`
}

type JobApplication struct {
	Base
	JobID string `gorm:"index;uniqueIndex:idx_job_applicant"`
	Job   Job    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`

	ApplicantID string `gorm:"uniqueIndex:idx_job_applicant"`
	Applicant   User   `gorm:"foreignKey:ApplicantID"`

	CoverLetter string `gorm:"type:text"`
	Status      ApplicationStatus
}
