package entity

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "APPLIED"
	StatusReviewed    ApplicationStatus = "REVIEWED"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusInterview   ApplicationStatus = "INTERVIEW"
	StatusHired       ApplicationStatus = "HIRED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

// ApplicationStatuses lists every status in workflow order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied, StatusReviewed, StatusShortlisted, StatusInterview, StatusHired, StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no forward transition leaves s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusHired || s == StatusRejected
}

// forward holds the single next step of the hiring chain.
var forward = map[ApplicationStatus]ApplicationStatus{
	StatusApplied:     StatusReviewed,
	StatusReviewed:    StatusShortlisted,
	StatusShortlisted: StatusInterview,
	StatusInterview:   StatusHired,
}

// CanTransition reports whether moving from s to next follows the workflow:
// one step forward along the chain, rejection from any non-terminal state,
// or rewriting the current value.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	return forward[s] == next
}

// DefaultCoverLetter is stored when a seeker applies without one.
func DefaultCoverLetter(title, company string) string {
	return fmt.Sprintf("I am interested in the %s position at %s.", title, company)
}

// Application is a seeker's submission for a job. (JobID, SeekerID) is unique.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	SeekerID    string            `json:"seekerId"`
	CoverLetter string            `json:"coverLetter"`
	Status      ApplicationStatus `json:"status"`
	Job         *JobSummary       `json:"job,omitempty"`
	Seeker      *UserSummary      `json:"seeker,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// StatusCount is one bucket of a group-by-status aggregate.
type StatusCount struct {
	Status ApplicationStatus `json:"status"`
	Count  int               `json:"count"`
}

// TypeCount is one bucket of a group-by-job-type aggregate.
type TypeCount struct {
	Type  JobType `json:"type"`
	Count int     `json:"count"`
}
