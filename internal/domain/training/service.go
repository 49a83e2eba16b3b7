// Package training manages admin-assigned training sessions. Each
// assignment targets a set of employees, and every assignee is told
// when a session is scheduled or changed.
package training

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/notifications"
)

type Service struct {
	Store    StoreAPI
	Notifier *notifications.Service
	Audit    *audit.Service
}

func NewService(store StoreAPI, notifier *notifications.Service, auditSvc *audit.Service) *Service {
	return &Service{Store: store, Notifier: notifier, Audit: auditSvc}
}

type AssignmentInput struct {
	Title               string   `json:"title"`
	Provider            string   `json:"provider"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	MinimumParticipants int      `json:"minimumParticipants"`
	Status              string   `json:"status"`
	Level               string   `json:"level"`
	AssignedTo          []string `json:"assignedTo"`
}

// ValidateAssignment checks the rules shared by create and edit: a
// title, at least one assignee, parseable dates and an end no earlier
// than the start.
func ValidateAssignment(input AssignmentInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errors.New("title is required")
	}
	if len(cleanAssignees(input.AssignedTo)) == 0 {
		return errors.New("at least one assignee is required")
	}

	start, err := parseDay(input.StartDate)
	if err != nil {
		return fmt.Errorf("startDate: %w", err)
	}
	end, err := parseDay(input.EndDate)
	if err != nil {
		return fmt.Errorf("endDate: %w", err)
	}
	if end.Before(start) {
		return errors.New("endDate must be on or after startDate")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, input AssignmentInput) (AssignedTraining, error) {
	if err := ValidateAssignment(input); err != nil {
		return AssignedTraining{}, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = StatusUpcoming
	}
	level := strings.TrimSpace(input.Level)
	if level == "" {
		level = LevelBeginner
	}

	now := time.Now().UTC()
	t := AssignedTraining{
		ID:                  uuid.NewString(),
		Title:               strings.TrimSpace(input.Title),
		Provider:            strings.TrimSpace(input.Provider),
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		MinimumParticipants: input.MinimumParticipants,
		Status:              status,
		Level:               level,
		AssignedTo:          cleanAssignees(input.AssignedTo),
		CreatedBy:           actor.UID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.Store.Insert(ctx, t); err != nil {
		return AssignedTraining{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingAssigned, "", t.Title)
	for _, uid := range t.AssignedTo {
		s.Notifier.NotifyUser(ctx, uid, "Training assigned",
			fmt.Sprintf("You have been assigned the training %q starting %s.", t.Title, t.StartDate))
	}
	return t, nil
}

// Update replaces the assignment wholesale; edits re-validate against
// the same rules as creation.
func (s *Service) Update(ctx context.Context, actor audit.Actor, id string, input AssignmentInput) (AssignedTraining, error) {
	if err := ValidateAssignment(input); err != nil {
		return AssignedTraining{}, err
	}

	existing, err := s.Store.Get(ctx, id)
	if err != nil {
		return AssignedTraining{}, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = existing.Status
	}
	level := strings.TrimSpace(input.Level)
	if level == "" {
		level = existing.Level
	}

	updated := AssignedTraining{
		ID:                  existing.ID,
		Title:               strings.TrimSpace(input.Title),
		Provider:            strings.TrimSpace(input.Provider),
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		MinimumParticipants: input.MinimumParticipants,
		Status:              status,
		Level:               level,
		AssignedTo:          cleanAssignees(input.AssignedTo),
		CreatedBy:           existing.CreatedBy,
		CreatedAt:           existing.CreatedAt,
		UpdatedAt:           time.Now().UTC(),
	}

	if err := s.Store.Update(ctx, updated); err != nil {
		return AssignedTraining{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingAssignmentUpdated, "", updated.Title)
	for _, uid := range updated.AssignedTo {
		s.Notifier.NotifyUser(ctx, uid, "Assigned training updated",
			fmt.Sprintf("The training %q has been updated.", updated.Title))
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actor audit.Actor, id string) error {
	t, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionTrainingAssignmentDeleted, "", t.Title)
	return nil
}

func (s *Service) List(ctx context.Context) ([]AssignedTraining, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (AssignedTraining, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) ListForEmployee(ctx context.Context, uid string) ([]AssignedTraining, error) {
	return s.Store.ListForEmployee(ctx, uid)
}

// NextUpcomingFor picks the employee's soonest upcoming assignment, or
// ok=false when nothing is scheduled.
func (s *Service) NextUpcomingFor(ctx context.Context, uid string) (AssignedTraining, bool, error) {
	assigned, err := s.Store.ListForEmployee(ctx, uid)
	if err != nil {
		return AssignedTraining{}, false, err
	}

	var best AssignedTraining
	var bestStart time.Time
	found := false
	for _, t := range assigned {
		if t.Status != StatusUpcoming {
			continue
		}
		start, err := parseDay(t.StartDate)
		if err != nil {
			continue
		}
		if !found || start.Before(bestStart) {
			best = t
			bestStart = start
			found = true
		}
	}
	return best, found, nil
}

func cleanAssignees(uids []string) []string {
	seen := make(map[string]struct{}, len(uids))
	out := make([]string, 0, len(uids))
	for _, uid := range uids {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}
		out = append(out, uid)
	}
	return out
}

func parseDay(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
