package repository

import (
	"context"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (r *Repository) GetAllVacations() ([]*domain.Vacation, error) {
	query := `
		SELECT id, person_id, start_date, end_date, note, created_at, version
		FROM vacations ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vacations := make([]*domain.Vacation, 0)
	for rows.Next() {
		vacation := &domain.Vacation{}
		dst := []any{&vacation.ID, &vacation.PersonID, &vacation.Start, &vacation.End, &vacation.Note, &vacation.CreatedAt, &vacation.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vacations = append(vacations, vacation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vacations, nil
}

func (r *Repository) GetVacationsByPersonID(personID int64) ([]*domain.Vacation, error) {
	query := `
		SELECT id, start_date, end_date, note, created_at, version
		FROM vacations WHERE person_id = $1 ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vacations := make([]*domain.Vacation, 0)
	for rows.Next() {
		vacation := &domain.Vacation{PersonID: personID}
		dst := []any{&vacation.ID, &vacation.Start, &vacation.End, &vacation.Note, &vacation.CreatedAt, &vacation.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vacations = append(vacations, vacation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vacations, nil
}

func (r *Repository) CreateVacation(vacation *domain.Vacation) error {
	query := `
		INSERT INTO vacations (person_id, start_date, end_date, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{vacation.PersonID, vacation.Start, vacation.End, vacation.Note}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vacation.ID, &vacation.CreatedAt, &vacation.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteVacation(id int64) error {
	query := `
		DELETE FROM vacations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
