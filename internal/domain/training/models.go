package training

import "time"

const (
	StatusUpcoming  = "Upcoming"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"

	LevelBeginner = "Beginner"
)

// AssignedTraining is an admin-scheduled session pushed to one or more
// employees, distinct from the personal plans employees submit
// themselves.
type AssignedTraining struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Provider            string    `json:"provider"`
	StartDate           string    `json:"startDate"`
	EndDate             string    `json:"endDate"`
	MinimumParticipants int       `json:"minimumParticipants"`
	Status              string    `json:"status"`
	Level               string    `json:"level"`
	AssignedTo          []string  `json:"assignedTo"`
	CreatedBy           string    `json:"createdBy"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
