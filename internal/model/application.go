package model

import (
	"time"
)

var (
	// ApplicationStatusPending indicates that the application is waiting for review
	ApplicationStatusPending = "pending"
	// ApplicationStatusShortlisted indicates that the applicant has been shortlisted for interview
	ApplicationStatusShortlisted = "shortlisted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// Application represents a single job-candidate submission from the public intake form
type Application struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppliedAt time.Time `gorm:"type:timestamp" json:"applied_at"`
	Status    string    `gorm:"type:text" json:"status"`

	ApplicantInfo `gorm:"embedded"`

	// JobCategoryID is taken from the form as-is, no FK constraint is declared
	// so a stale category id on an old form still produces a row
	JobCategoryID uint `gorm:"index" json:"job_category_id"`

	// Photo and CVFile hold object paths in the attachment bucket,
	// empty when the applicant omitted the upload
	Photo  string `gorm:"type:text" json:"photo"`
	CVFile string `gorm:"type:text" json:"cv_file"`
}

// ApplicantInfo groups the fields submitted by the applicant themselves
type ApplicantInfo struct {
	Name          string `gorm:"type:text" json:"name" form:"name"`
	DOB           string `gorm:"type:text" json:"dob" form:"-"`
	Gender        string `gorm:"type:text" json:"gender" form:"gender"`
	MaritalStatus string `gorm:"type:text" json:"marital_status" form:"marital_status"`
	FatherName    string `gorm:"type:text" json:"father_name" form:"father_name"`
	Address       string `gorm:"type:text" json:"address" form:"address"`
	Pincode       string `gorm:"type:text" json:"pincode" form:"pincode"`
	State         string `gorm:"type:text" json:"state" form:"state"`
	District      string `gorm:"type:text" json:"district" form:"district"`
	CountryCode   string `gorm:"type:text" json:"country_code" form:"country_code"`
	Mobile        string `gorm:"type:text" json:"mobile" form:"mobile"`
	Email         string `gorm:"type:text" json:"email" form:"email"`

	HasExperience    bool   `json:"has_experience" form:"has_experience"`
	YearsExperience  string `gorm:"type:text" json:"years_experience" form:"years_experience"`
	PreviousEmployer string `gorm:"type:text" json:"previous_employer" form:"previous_employer"`
	LastSalary       string `gorm:"type:text" json:"last_salary" form:"last_salary"`
	ExpectedSalary   string `gorm:"type:text" json:"expected_salary" form:"expected_salary"`
	ReasonForChange  string `gorm:"type:text" json:"reason_for_change" form:"reason_for_change"`
	ReasonForChoice  string `gorm:"type:text" json:"reason_for_choice" form:"reason_for_choice"`
	Qualification    string `gorm:"type:text" json:"qualification" form:"qualification"`
	Declaration      bool   `json:"declaration" form:"declaration"`
}
