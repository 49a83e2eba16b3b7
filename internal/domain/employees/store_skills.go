package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertSkill(ctx context.Context, skill Skill) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO skills (id, employee_uid, name, category, proficiency, date_acquired, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, skill.ID, skill.EmployeeUID, skill.Name, skill.Category, skill.Proficiency, skill.DateAcquired, skill.CreatedAt, skill.UpdatedAt)
	return err
}

func (s *Store) GetSkill(ctx context.Context, uid, skillID string) (Skill, error) {
	var sk Skill
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_uid, name, category, proficiency, date_acquired, created_at, updated_at
    FROM skills
    WHERE employee_uid = $1 AND id = $2
  `, uid, skillID).Scan(&sk.ID, &sk.EmployeeUID, &sk.Name, &sk.Category, &sk.Proficiency, &sk.DateAcquired, &sk.CreatedAt, &sk.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Skill{}, ErrNotFound
	}
	if err != nil {
		return Skill{}, err
	}
	return sk, nil
}

func (s *Store) ListSkills(ctx context.Context, uid string) ([]Skill, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, category, proficiency, date_acquired, created_at, updated_at
    FROM skills
    WHERE employee_uid = $1
    ORDER BY proficiency DESC, name
  `, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows)
}

// ListAllSkills feeds the dashboard's category aggregation.
func (s *Store) ListAllSkills(ctx context.Context) ([]Skill, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, category, proficiency, date_acquired, created_at, updated_at
    FROM skills
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows)
}

func (s *Store) UpdateSkill(ctx context.Context, uid, skillID string, update SkillUpdate) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE skills
    SET name = COALESCE($3, name),
        category = COALESCE($4, category),
        proficiency = COALESCE($5, proficiency),
        date_acquired = COALESCE($6, date_acquired),
        updated_at = now()
    WHERE employee_uid = $1 AND id = $2
  `, uid, skillID, update.Name, update.Category, update.Proficiency, update.DateAcquired)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSkill(ctx context.Context, uid, skillID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM skills WHERE employee_uid = $1 AND id = $2`, uid, skillID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSkills(rows pgx.Rows) ([]Skill, error) {
	var list []Skill
	for rows.Next() {
		var sk Skill
		if err := rows.Scan(&sk.ID, &sk.EmployeeUID, &sk.Name, &sk.Category, &sk.Proficiency, &sk.DateAcquired, &sk.CreatedAt, &sk.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, sk)
	}
	return list, rows.Err()
}
