package reports

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/platform/querier"
)

var ErrNotFound = errors.New("report not found")

type StoreAPI interface {
	Insert(ctx context.Context, r Report) error
	Get(ctx context.Context, id string) (Report, error)
	List(ctx context.Context) ([]Report, error)
	Delete(ctx context.Context, id string) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, r Report) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO reports (id, title, report_type, position_or_role, date_range, include_visualizations, file_name, download_url, object_key, generated_by, generated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  `, r.ID, r.Title, r.ReportType, r.PositionOrRole, r.DateRange, r.IncludeVisualizations, r.FileName, r.DownloadURL, r.ObjectKey, r.GeneratedBy, r.GeneratedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (Report, error) {
	var r Report
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, report_type, position_or_role, date_range, include_visualizations, file_name, download_url, object_key, generated_by, generated_at
    FROM reports
    WHERE id = $1
  `, id).Scan(&r.ID, &r.Title, &r.ReportType, &r.PositionOrRole, &r.DateRange, &r.IncludeVisualizations, &r.FileName, &r.DownloadURL, &r.ObjectKey, &r.GeneratedBy, &r.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Report{}, ErrNotFound
	}
	if err != nil {
		return Report{}, err
	}
	return r, nil
}

func (s *Store) List(ctx context.Context) ([]Report, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, report_type, position_or_role, date_range, include_visualizations, file_name, download_url, object_key, generated_by, generated_at
    FROM reports
    ORDER BY generated_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Title, &r.ReportType, &r.PositionOrRole, &r.DateRange, &r.IncludeVisualizations, &r.FileName, &r.DownloadURL, &r.ObjectKey, &r.GeneratedBy, &r.GeneratedAt); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
