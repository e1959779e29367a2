package repository

import (
	"context"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (r *Repository) GetPersonByID(id int64) (*domain.Person, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, grade, weekly_cap, is_admin, is_active, created_at, version
		FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	person := &domain.Person{
		ID: id,
	}

	dst := []any{&person.Username, &person.PasswordHash, &person.FullName, &person.Email, &person.Role, &person.Grade, &person.WeeklyCap, &person.IsAdmin, &person.IsActive, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return person, nil
}

func (r *Repository) GetPersonByUsername(username string) (*domain.Person, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, grade, weekly_cap, is_admin, is_active, created_at, version
		FROM people WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	person := &domain.Person{
		Username: username,
	}

	dst := []any{&person.ID, &person.PasswordHash, &person.FullName, &person.Email, &person.Role, &person.Grade, &person.WeeklyCap, &person.IsAdmin, &person.IsActive, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return person, nil
}

func (r *Repository) GetAllPeople() ([]*domain.Person, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, grade, weekly_cap, is_admin, is_active, created_at, version
		FROM people ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]*domain.Person, 0)
	for rows.Next() {
		person := &domain.Person{}
		dst := []any{&person.ID, &person.Username, &person.PasswordHash, &person.FullName, &person.Email, &person.Role, &person.Grade, &person.WeeklyCap, &person.IsAdmin, &person.IsActive, &person.CreatedAt, &person.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

func (r *Repository) CreatePerson(person *domain.Person) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO people (username, password_hash, full_name, email, role, grade, weekly_cap, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	args := []any{person.Username, person.PasswordHash, person.FullName, person.Email, person.Role, person.Grade, person.WeeklyCap, person.IsAdmin}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&person.ID, &person.IsActive, &person.CreatedAt, &person.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePerson(person *domain.Person) error {
	query := `
		UPDATE people
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			grade = $4,
			weekly_cap = $5,
			is_admin = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{person.PasswordHash, person.Email, person.Role, person.Grade, person.WeeklyCap, person.IsAdmin, person.IsActive, person.ID, person.Version}
	dst := []any{&person.Username, &person.FullName, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePerson(id int64) error {
	query := `
		DELETE FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM people WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
