// Package employees is the portal's core: profiles with their skills,
// qualifications and personal training plans, plus the review
// workflows admins run over them. Every mutation lands in the audit
// log and most raise a notification for the other side of the
// workflow.
package employees

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/notifications"
	"skillsaudit/internal/platform/blobstore"
)

type Service struct {
	Store    StoreAPI
	Users    auth.StoreAPI
	Gateway  auth.Gateway
	Notifier *notifications.Service
	Audit    *audit.Service
	Blobs    blobstore.FileStorage
}

func NewService(store StoreAPI, users auth.StoreAPI, gateway auth.Gateway, notifier *notifications.Service, auditSvc *audit.Service, blobs blobstore.FileStorage) *Service {
	return &Service{Store: store, Users: users, Gateway: gateway, Notifier: notifier, Audit: auditSvc, Blobs: blobs}
}

type NewEmployee struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	IDNumber   string `json:"idNumber"`
	JobTitle   string `json:"jobTitle"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// Create onboards a new employee: a gateway account, a portal user
// with the employee role and an initial profile scored for
// completeness.
func (s *Service) Create(ctx context.Context, actor audit.Actor, input NewEmployee) (Employee, error) {
	uid, err := s.Gateway.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return Employee{}, err
	}

	now := time.Now().UTC()
	if err := s.Users.CreateUser(ctx, auth.User{
		UID:          uid,
		Email:        input.Email,
		Role:         auth.RoleEmployee,
		IsFirstLogin: true,
		CreatedAt:    now,
	}); err != nil {
		return Employee{}, err
	}

	employee := Employee{
		UID:        uid,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Email:      strings.TrimSpace(input.Email),
		IDNumber:   strings.TrimSpace(input.IDNumber),
		JobTitle:   strings.TrimSpace(input.JobTitle),
		Phone:      strings.TrimSpace(input.Phone),
		Department: strings.TrimSpace(input.Department),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	employee.ProfileCompletion = CompletionScore(employee)

	if err := s.Store.InsertEmployee(ctx, employee); err != nil {
		return Employee{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionEmployeeAdded, uid, employee.FullName())
	return employee, nil
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) Get(ctx context.Context, uid string) (Employee, error) {
	return s.Store.GetEmployee(ctx, uid)
}

// UpdateProfile merges the supplied fields and rescores completion
// from the merged result.
func (s *Service) UpdateProfile(ctx context.Context, actor audit.Actor, uid string, update ProfileUpdate) (Employee, error) {
	if err := s.Store.UpdateProfile(ctx, uid, update); err != nil {
		return Employee{}, err
	}

	employee, err := s.Store.GetEmployee(ctx, uid)
	if err != nil {
		return Employee{}, err
	}

	score := CompletionScore(employee)
	if score != employee.ProfileCompletion {
		if err := s.Store.SetCompletion(ctx, uid, score); err != nil {
			return Employee{}, err
		}
		employee.ProfileCompletion = score
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionProfileUpdated, uid, "")
	return employee, nil
}

// Delete removes an employee and everything hanging off the profile.
// Stored objects are cleaned up best effort; the rows are gone either
// way.
func (s *Service) Delete(ctx context.Context, actor audit.Actor, uid string) error {
	employee, err := s.Store.GetEmployee(ctx, uid)
	if err != nil {
		return err
	}
	qualifications, err := s.Store.ListQualifications(ctx, uid)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteEmployeeCascade(ctx, uid); err != nil {
		return err
	}

	s.removeObject(ctx, employee.ProfilePictureURL)
	for _, q := range qualifications {
		s.removeObject(ctx, q.DocumentURL)
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionEmployeeDeleted, uid, employee.FullName())
	return nil
}

func (s *Service) removeObject(ctx context.Context, rawURL string) {
	if rawURL == "" {
		return
	}
	key, err := blobstore.ObjectKeyFromURL(rawURL)
	if err != nil {
		slog.Warn("object cleanup skipped", "url", rawURL, "err", err)
		return
	}
	if err := s.Blobs.Delete(ctx, key); err != nil {
		slog.Warn("object cleanup failed", "key", key, "err", err)
	}
}

func (s *Service) employeeName(ctx context.Context, uid string) string {
	employee, err := s.Store.GetEmployee(ctx, uid)
	if err != nil {
		return uid
	}
	return employee.FullName()
}

// --- skills ---

func (s *Service) AddSkill(ctx context.Context, actor audit.Actor, uid string, skill Skill) (Skill, error) {
	now := time.Now().UTC()
	skill.ID = uuid.NewString()
	skill.EmployeeUID = uid
	skill.CreatedAt = now
	skill.UpdatedAt = now

	if err := s.Store.InsertSkill(ctx, skill); err != nil {
		return Skill{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionSkillAdded, uid, skill.Name)
	s.Notifier.NotifyAdmins(ctx, "New skill added",
		fmt.Sprintf("%s added the skill %q.", s.employeeName(ctx, uid), skill.Name))
	return skill, nil
}

func (s *Service) UpdateSkill(ctx context.Context, actor audit.Actor, uid, skillID string, update SkillUpdate) (Skill, error) {
	if err := s.Store.UpdateSkill(ctx, uid, skillID, update); err != nil {
		return Skill{}, err
	}
	skill, err := s.Store.GetSkill(ctx, uid, skillID)
	if err != nil {
		return Skill{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionSkillUpdated, uid, skill.Name)
	s.Notifier.NotifyAdmins(ctx, "Skill updated",
		fmt.Sprintf("%s updated the skill %q.", s.employeeName(ctx, uid), skill.Name))
	return skill, nil
}

func (s *Service) DeleteSkill(ctx context.Context, actor audit.Actor, uid, skillID string) error {
	skill, err := s.Store.GetSkill(ctx, uid, skillID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteSkill(ctx, uid, skillID); err != nil {
		return err
	}
	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionSkillDeleted, uid, skill.Name)
	return nil
}

func (s *Service) GetSkill(ctx context.Context, uid, skillID string) (Skill, error) {
	return s.Store.GetSkill(ctx, uid, skillID)
}

func (s *Service) ListSkills(ctx context.Context, uid string) ([]Skill, error) {
	return s.Store.ListSkills(ctx, uid)
}

// --- qualifications ---

// AddQualification stores a new submission in the pending state
// regardless of any flags in the payload.
func (s *Service) AddQualification(ctx context.Context, actor audit.Actor, uid string, q Qualification) (Qualification, error) {
	now := time.Now().UTC()
	q.ID = uuid.NewString()
	q.EmployeeUID = uid
	q.IsVerified = false
	q.IsRejected = false
	q.CreatedAt = now
	q.UpdatedAt = now

	if err := s.Store.InsertQualification(ctx, q); err != nil {
		return Qualification{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionQualificationAdded, uid, q.Name)
	s.Notifier.NotifyAdmins(ctx, "New qualification submitted",
		fmt.Sprintf("%s submitted the qualification %q for review.", s.employeeName(ctx, uid), q.Name))
	return q, nil
}

func (s *Service) UpdateQualification(ctx context.Context, actor audit.Actor, uid, qualificationID string, update QualificationUpdate) (Qualification, error) {
	if err := s.Store.UpdateQualification(ctx, uid, qualificationID, update); err != nil {
		return Qualification{}, err
	}
	q, err := s.Store.GetQualification(ctx, uid, qualificationID)
	if err != nil {
		return Qualification{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionQualificationUpdated, uid, q.Name)
	s.Notifier.NotifyAdmins(ctx, "Qualification updated",
		fmt.Sprintf("%s updated the qualification %q; it needs review again.", s.employeeName(ctx, uid), q.Name))
	return q, nil
}

// VerifyQualification marks a submission verified. Verifying an
// already verified qualification is a no-op with the same outcome.
func (s *Service) VerifyQualification(ctx context.Context, actor audit.Actor, uid, qualificationID string) (Qualification, error) {
	return s.decideQualification(ctx, actor, uid, qualificationID, true)
}

func (s *Service) RejectQualification(ctx context.Context, actor audit.Actor, uid, qualificationID string) (Qualification, error) {
	return s.decideQualification(ctx, actor, uid, qualificationID, false)
}

func (s *Service) decideQualification(ctx context.Context, actor audit.Actor, uid, qualificationID string, verified bool) (Qualification, error) {
	if err := s.Store.SetQualificationFlags(ctx, uid, qualificationID, verified, !verified); err != nil {
		return Qualification{}, err
	}
	q, err := s.Store.GetQualification(ctx, uid, qualificationID)
	if err != nil {
		return Qualification{}, err
	}

	if verified {
		s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionQualificationVerified, uid, q.Name)
		s.Notifier.NotifyUser(ctx, uid, "Qualification verified",
			fmt.Sprintf("Your qualification %q has been verified.", q.Name))
	} else {
		s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionQualificationRejected, uid, q.Name)
		s.Notifier.NotifyUser(ctx, uid, "Qualification rejected",
			fmt.Sprintf("Your qualification %q has been rejected.", q.Name))
	}
	return q, nil
}

func (s *Service) DeleteQualification(ctx context.Context, actor audit.Actor, uid, qualificationID string) error {
	q, err := s.Store.GetQualification(ctx, uid, qualificationID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteQualification(ctx, uid, qualificationID); err != nil {
		return err
	}
	s.removeObject(ctx, q.DocumentURL)
	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionQualificationDeleted, uid, q.Name)
	return nil
}

func (s *Service) GetQualification(ctx context.Context, uid, qualificationID string) (Qualification, error) {
	return s.Store.GetQualification(ctx, uid, qualificationID)
}

func (s *Service) ListQualifications(ctx context.Context, uid string) ([]Qualification, error) {
	return s.Store.ListQualifications(ctx, uid)
}

func (s *Service) ListPendingQualifications(ctx context.Context) ([]Qualification, error) {
	return s.Store.ListPendingQualifications(ctx)
}

// --- personal training plans ---

func (s *Service) AddTraining(ctx context.Context, actor audit.Actor, uid string, t Training) (Training, error) {
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.EmployeeUID = uid
	t.Status = TrainingStatusPlanned
	t.Approved = false
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.Store.InsertTraining(ctx, t); err != nil {
		return Training{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingAdded, uid, t.Name)
	s.Notifier.NotifyAdmins(ctx, "Training approval required",
		fmt.Sprintf("%s planned the training %q.", s.employeeName(ctx, uid), t.Name))
	return t, nil
}

func (s *Service) UpdateTraining(ctx context.Context, actor audit.Actor, uid, trainingID string, update TrainingUpdate) (Training, error) {
	if err := s.Store.UpdateTraining(ctx, uid, trainingID, update); err != nil {
		return Training{}, err
	}
	t, err := s.Store.GetTraining(ctx, uid, trainingID)
	if err != nil {
		return Training{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingUpdated, uid, t.Name)
	s.Notifier.NotifyAdmins(ctx, "Training update requires approval",
		fmt.Sprintf("%s updated the training %q; it needs review again.", s.employeeName(ctx, uid), t.Name))
	return t, nil
}

// ApproveTraining moves a plan into progress; repeat approvals land in
// the same state.
func (s *Service) ApproveTraining(ctx context.Context, actor audit.Actor, uid, trainingID string) (Training, error) {
	return s.decideTraining(ctx, actor, uid, trainingID, true)
}

func (s *Service) RejectTraining(ctx context.Context, actor audit.Actor, uid, trainingID string) (Training, error) {
	return s.decideTraining(ctx, actor, uid, trainingID, false)
}

func (s *Service) decideTraining(ctx context.Context, actor audit.Actor, uid, trainingID string, approved bool) (Training, error) {
	status := TrainingStatusRejected
	if approved {
		status = TrainingStatusInProgress
	}
	if err := s.Store.SetTrainingDecision(ctx, uid, trainingID, approved, status); err != nil {
		return Training{}, err
	}
	t, err := s.Store.GetTraining(ctx, uid, trainingID)
	if err != nil {
		return Training{}, err
	}

	if approved {
		s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingApproved, uid, t.Name)
		s.Notifier.NotifyUser(ctx, uid, "Training approved",
			fmt.Sprintf("Your training %q has been approved and is now in progress.", t.Name))
	} else {
		s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingRejected, uid, t.Name)
		s.Notifier.NotifyUser(ctx, uid, "Training rejected",
			fmt.Sprintf("Your training %q has been rejected.", t.Name))
	}
	return t, nil
}

func (s *Service) DeleteTraining(ctx context.Context, actor audit.Actor, uid, trainingID string) error {
	t, err := s.Store.GetTraining(ctx, uid, trainingID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteTraining(ctx, uid, trainingID); err != nil {
		return err
	}
	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingDeleted, uid, t.Name)
	return nil
}

func (s *Service) GetTraining(ctx context.Context, uid, trainingID string) (Training, error) {
	return s.Store.GetTraining(ctx, uid, trainingID)
}

func (s *Service) ListTrainings(ctx context.Context, uid string) ([]Training, error) {
	return s.Store.ListTrainings(ctx, uid)
}

func (s *Service) ListPendingTrainings(ctx context.Context) ([]Training, error) {
	return s.Store.ListPendingTrainings(ctx)
}
