package employees

import "time"

type Employee struct {
	UID               string    `json:"uid"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	IDNumber          string    `json:"idNumber"`
	JobTitle          string    `json:"jobTitle"`
	Phone             string    `json:"phone"`
	Department        string    `json:"department"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	ProfileCompletion float64   `json:"profileCompletionStatus"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (e Employee) FullName() string {
	switch {
	case e.FirstName == "" && e.LastName == "":
		return e.Email
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}

// ProfileUpdate carries a merge update: nil fields are left untouched.
type ProfileUpdate struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	Email             *string `json:"email"`
	IDNumber          *string `json:"idNumber"`
	JobTitle          *string `json:"jobTitle"`
	Phone             *string `json:"phone"`
	Department        *string `json:"department"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

type Skill struct {
	ID           string    `json:"id"`
	EmployeeUID  string    `json:"employeeUid"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Proficiency  int       `json:"proficiency"`
	DateAcquired string    `json:"dateAcquired"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SkillUpdate struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Proficiency  *int    `json:"proficiency"`
	DateAcquired *string `json:"dateAcquired"`
}

type Qualification struct {
	ID           string    `json:"id"`
	EmployeeUID  string    `json:"employeeUid"`
	Name         string    `json:"name"`
	Institution  string    `json:"institution"`
	YearObtained string    `json:"yearObtained"`
	Type         string    `json:"type"`
	SerialNumber string    `json:"serialNumber"`
	DocumentURL  string    `json:"documentUrl"`
	IsVerified   bool      `json:"isVerified"`
	IsRejected   bool      `json:"isRejected"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type QualificationUpdate struct {
	Name         *string `json:"name"`
	Institution  *string `json:"institution"`
	YearObtained *string `json:"yearObtained"`
	Type         *string `json:"type"`
	SerialNumber *string `json:"serialNumber"`
	DocumentURL  *string `json:"documentUrl"`
}

const (
	TrainingStatusPlanned    = "planned"
	TrainingStatusInProgress = "in-progress"
	TrainingStatusRejected   = "rejected"
	TrainingStatusCompleted  = "completed"
)

type Training struct {
	ID          string    `json:"id"`
	EmployeeUID string    `json:"employeeUid"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Status      string    `json:"status"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TrainingUpdate struct {
	Name      *string `json:"name"`
	Provider  *string `json:"provider"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}
