package employees

import "context"

type StoreAPI interface {
	InsertEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, uid string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error
	SetCompletion(ctx context.Context, uid string, score float64) error
	DeleteEmployeeCascade(ctx context.Context, uid string) error

	InsertSkill(ctx context.Context, s Skill) error
	GetSkill(ctx context.Context, uid, skillID string) (Skill, error)
	ListSkills(ctx context.Context, uid string) ([]Skill, error)
	ListAllSkills(ctx context.Context) ([]Skill, error)
	UpdateSkill(ctx context.Context, uid, skillID string, update SkillUpdate) error
	DeleteSkill(ctx context.Context, uid, skillID string) error

	InsertQualification(ctx context.Context, q Qualification) error
	GetQualification(ctx context.Context, uid, qualificationID string) (Qualification, error)
	ListQualifications(ctx context.Context, uid string) ([]Qualification, error)
	ListPendingQualifications(ctx context.Context) ([]Qualification, error)
	UpdateQualification(ctx context.Context, uid, qualificationID string, update QualificationUpdate) error
	SetQualificationFlags(ctx context.Context, uid, qualificationID string, verified, rejected bool) error
	DeleteQualification(ctx context.Context, uid, qualificationID string) error

	InsertTraining(ctx context.Context, t Training) error
	GetTraining(ctx context.Context, uid, trainingID string) (Training, error)
	ListTrainings(ctx context.Context, uid string) ([]Training, error)
	ListPendingTrainings(ctx context.Context) ([]Training, error)
	UpdateTraining(ctx context.Context, uid, trainingID string, update TrainingUpdate) error
	SetTrainingDecision(ctx context.Context, uid, trainingID string, approved bool, status string) error
	DeleteTraining(ctx context.Context, uid, trainingID string) error
}
