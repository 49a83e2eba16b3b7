// Package reports renders PDF artifacts: organization-wide skills
// audit reports kept in the blob store, and on-demand employee CVs
// streamed straight to the requester.
package reports

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/employees"
	"skillsaudit/internal/platform/blobstore"
)

type Service struct {
	Store     StoreAPI
	Employees *employees.Service
	Blobs     blobstore.FileStorage
	Audit     *audit.Service
}

func NewService(store StoreAPI, employeeSvc *employees.Service, blobs blobstore.FileStorage, auditSvc *audit.Service) *Service {
	return &Service{Store: store, Employees: employeeSvc, Blobs: blobs, Audit: auditSvc}
}

// Generate renders a skills audit snapshot, stores the PDF and records
// the report so it shows up in the report archive.
func (s *Service) Generate(ctx context.Context, actor audit.Actor, title string, params Params) (Report, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(params.ReportType)
	}
	if title == "" {
		title = "Skills Audit Report"
	}

	staff, err := s.Employees.List(ctx)
	if err != nil {
		return Report{}, err
	}

	now := time.Now().UTC()
	content, err := renderAuditReport(title, params, staff, now)
	if err != nil {
		return Report{}, err
	}

	fileName := fmt.Sprintf("%s_%s.pdf", slug(title), now.Format("20060102_150405"))
	key := blobstore.ReportKey(actor.UID, fileName)
	if _, err := s.Blobs.Upload(ctx, bytes.NewReader(content), key, "application/pdf"); err != nil {
		return Report{}, err
	}

	downloadURL, err := s.Blobs.GetURL(ctx, key, 0)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		ID:                    uuid.NewString(),
		Title:                 title,
		ReportType:            params.ReportType,
		PositionOrRole:        params.PositionOrRole,
		DateRange:             params.DateRange,
		IncludeVisualizations: params.IncludeVisualizations,
		FileName:              fileName,
		DownloadURL:           downloadURL,
		ObjectKey:             key,
		GeneratedBy:           actor.UID,
		GeneratedAt:           now,
	}
	if err := s.Store.Insert(ctx, report); err != nil {
		return Report{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionReportGenerated, "", title)
	return report, nil
}

func (s *Service) List(ctx context.Context) ([]Report, error) {
	return s.Store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	return s.Store.Get(ctx, id)
}

// Delete removes the record and the stored PDF. A missing object does
// not block the delete.
func (s *Service) Delete(ctx context.Context, actor audit.Actor, id string) error {
	report, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.Blobs.Delete(ctx, report.ObjectKey)

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionReportDeleted, "", report.Title)
	return nil
}

// GenerateCV renders an employee's CV and returns the PDF bytes plus a
// suggested file name. The three record sets load concurrently.
func (s *Service) GenerateCV(ctx context.Context, uid string) ([]byte, string, error) {
	profile, err := s.Employees.Get(ctx, uid)
	if err != nil {
		return nil, "", err
	}

	var data cvData
	data.Profile = profile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Skills, err = s.Employees.ListSkills(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		data.Qualifications, err = s.Employees.ListQualifications(gctx, uid)
		return err
	})
	g.Go(func() error {
		var err error
		data.Trainings, err = s.Employees.ListTrainings(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	content, err := renderCV(data)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("CV_%s.pdf", slug(profile.FullName()))
	return content, fileName, nil
}

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

func slug(value string) string {
	cleaned := slugPattern.ReplaceAllString(value, "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "report"
	}
	return cleaned
}
