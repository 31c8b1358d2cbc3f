package domain

import "time"

// ProjectStatus represents the workflow state of a project.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "PENDING"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusCompleted  ProjectStatus = "COMPLETED"
)

// IsValid reports whether s is one of the known workflow states.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Project is a unit of work belonging to a client, and transitively to that
// client's owning user. Ownership is always resolved through the parent
// client; projects carry no owner field of their own.
type Project struct {
	ID           string        `json:"id"`
	ClientID     string        `json:"clientId"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       ProjectStatus `json:"status"`
	StartDate    *time.Time    `json:"startDate,omitempty"`
	DeliveryDate *time.Time    `json:"deliveryDate,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
