// Package dashboard aggregates data from the other domains into the
// two landing pages: an organization-wide admin view and a personal
// employee view.
package dashboard

import (
	"context"
	"time"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/employees"
	"skillsaudit/internal/domain/reports"
	"skillsaudit/internal/domain/training"
)

// growthWindow bounds how far back the skill growth series looks.
const (
	growthWindow      = 365 * 24 * time.Hour
	growthSampleLimit = 365
	pendingPreview    = 3
	recentActivity    = 3
	recentAuditRows   = 5
)

type Service struct {
	Employees *employees.Service
	Training  *training.Service
	Reports   *reports.Service
	Audit     *audit.Service
}

func NewService(employeeSvc *employees.Service, trainingSvc *training.Service, reportSvc *reports.Service, auditSvc *audit.Service) *Service {
	return &Service{Employees: employeeSvc, Training: trainingSvc, Reports: reportSvc, Audit: auditSvc}
}

type AdminDashboard struct {
	EmployeeCount         int                       `json:"employeeCount"`
	SkillCount            int                       `json:"skillCount"`
	AssignedTrainingCount int                       `json:"assignedTrainingCount"`
	ReportCount           int                       `json:"reportCount"`
	PendingQualCount      int                       `json:"pendingQualificationCount"`
	PendingTrainingCount  int                       `json:"pendingTrainingCount"`
	SkillCategories       ChartData                 `json:"skillCategories"`
	SkillGrowth           ChartData                 `json:"skillGrowth"`
	PendingPreview        []employees.Qualification `json:"pendingQualifications"`
	RecentAudit           []audit.Entry             `json:"recentAudit"`
}

func (s *Service) Admin(ctx context.Context) (AdminDashboard, error) {
	staff, err := s.Employees.List(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	skills, err := s.Employees.Store.ListAllSkills(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	pendingQuals, err := s.Employees.ListPendingQualifications(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	pendingTrainings, err := s.Employees.ListPendingTrainings(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	assigned, err := s.Training.List(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	generated, err := s.Reports.List(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	now := time.Now().UTC()
	additions, err := s.Audit.SkillAdditionsSince(ctx, now.Add(-growthWindow), growthSampleLimit)
	if err != nil {
		return AdminDashboard{}, err
	}

	recent, err := s.Audit.Recent(ctx, recentAuditRows)
	if err != nil {
		return AdminDashboard{}, err
	}

	preview := pendingQuals
	if len(preview) > pendingPreview {
		preview = preview[:pendingPreview]
	}

	return AdminDashboard{
		EmployeeCount:         len(staff),
		SkillCount:            len(skills),
		AssignedTrainingCount: len(assigned),
		ReportCount:           len(generated),
		PendingQualCount:      len(pendingQuals),
		PendingTrainingCount:  len(pendingTrainings),
		SkillCategories:       CategoryBreakdown(skills),
		SkillGrowth:           GrowthSeries(additions, now),
		PendingPreview:        preview,
		RecentAudit:           recent,
	}, nil
}

type EmployeeDashboard struct {
	Profile          employees.Employee         `json:"profile"`
	SkillCount       int                        `json:"skillCount"`
	QualCount        int                        `json:"qualificationCount"`
	TrainingCount    int                        `json:"trainingCount"`
	UpcomingTraining *training.AssignedTraining `json:"upcomingTraining,omitempty"`
	RecentActivity   []audit.Entry              `json:"recentActivity"`
}

func (s *Service) Employee(ctx context.Context, uid string) (EmployeeDashboard, error) {
	profile, err := s.Employees.Get(ctx, uid)
	if err != nil {
		return EmployeeDashboard{}, err
	}

	skills, err := s.Employees.ListSkills(ctx, uid)
	if err != nil {
		return EmployeeDashboard{}, err
	}
	quals, err := s.Employees.ListQualifications(ctx, uid)
	if err != nil {
		return EmployeeDashboard{}, err
	}
	trainings, err := s.Employees.ListTrainings(ctx, uid)
	if err != nil {
		return EmployeeDashboard{}, err
	}

	board := EmployeeDashboard{
		Profile:       profile,
		SkillCount:    len(skills),
		QualCount:     len(quals),
		TrainingCount: len(trainings),
	}

	if next, ok, err := s.Training.NextUpcomingFor(ctx, uid); err != nil {
		return EmployeeDashboard{}, err
	} else if ok {
		board.UpcomingTraining = &next
	}

	activity, err := s.Audit.RecentByActor(ctx, uid, recentActivity)
	if err != nil {
		return EmployeeDashboard{}, err
	}
	board.RecentActivity = activity

	return board, nil
}
