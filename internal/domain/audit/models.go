package audit

import "time"

// Action names are part of the stored record and feed the dashboard's
// skill-growth series, so they are stable identifiers rather than
// display strings.
const (
	ActionEmployeeAdded   = "employeeAdded"
	ActionEmployeeDeleted = "employeeDeleted"
	ActionProfileUpdated  = "profileUpdated"

	ActionSkillAdded   = "skillAdded"
	ActionSkillUpdated = "skillUpdated"
	ActionSkillDeleted = "skillDeleted"

	ActionQualificationAdded    = "qualificationAdded"
	ActionQualificationUpdated  = "qualificationUpdated"
	ActionQualificationVerified = "qualificationVerified"
	ActionQualificationRejected = "qualificationRejected"
	ActionQualificationDeleted  = "qualificationDeleted"

	ActionTrainingAdded    = "trainingAdded"
	ActionTrainingUpdated  = "trainingUpdated"
	ActionTrainingDeleted  = "trainingDeleted"
	ActionTrainingApproved = "trainingApproved"
	ActionTrainingRejected = "trainingRejected"

	ActionTrainingAssigned          = "trainingAssigned"
	ActionTrainingAssignmentUpdated = "trainingAssignmentUpdated"
	ActionTrainingAssignmentDeleted = "trainingAssignmentDeleted"

	ActionReportGenerated = "reportGenerated"
	ActionReportDeleted   = "reportDeleted"

	ActionNotificationsReadAll = "notificationsReadAll"

	ActionWebLoginSuccess = "webLoginSuccess"
	ActionWebLoginFail    = "webLoginFail"

	ActionSupportMessageSent = "supportMessageSent"
)

// Actor identifies who performed an action, for attribution in audit
// entries.
type Actor struct {
	UID  string
	Name string
	Role string
}

type Entry struct {
	ID        string    `json:"id"`
	ActorUID  string    `json:"actorUid"`
	ActorName string    `json:"actorName"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subjectUid"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
