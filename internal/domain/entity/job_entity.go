package entity

import "time"

type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobContract   JobType = "CONTRACT"
	JobInternship JobType = "INTERNSHIP"
	JobRemote     JobType = "REMOTE"
	JobHybrid     JobType = "HYBRID"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship, JobRemote, JobHybrid:
		return true
	}
	return false
}

// DefaultExperience is stored when an employer leaves experience blank.
const DefaultExperience = "Not specified"

// Job is a posting owned by exactly one employer.
type Job struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Company      string       `json:"company"`
	Salary       string       `json:"salary"`
	Location     string       `json:"location"`
	Type         JobType      `json:"type"`
	Category     string       `json:"category"`
	Experience   string       `json:"experience"`
	Requirements string       `json:"requirements"`
	Benefits     string       `json:"benefits,omitempty"`
	IsActive     bool         `json:"isActive"`
	EmployerID   string       `json:"employerId"`
	Employer     *UserSummary `json:"employer,omitempty"`
	Applications int          `json:"applicationCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// JobSummary is the short form embedded in applications and profiles.
type JobSummary struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Company  string       `json:"company"`
	Location string       `json:"location"`
	Type     JobType      `json:"type"`
	Employer *UserSummary `json:"employer,omitempty"`
}

func (j *Job) Summary() JobSummary {
	return JobSummary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location, Type: j.Type, Employer: j.Employer}
}
