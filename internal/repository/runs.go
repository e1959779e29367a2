package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// InsertGenerationRun salva l'esito di una generazione. Per ogni anno viene
// conservata solo l'ultima esecuzione: la precedente viene rimossa nella
// stessa transazione.
func (r *Repository) InsertGenerationRun(run *domain.GenerationRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM generation_runs WHERE year = $1`
	if _, err := tx.ExecContext(ctx, query, run.Year); err != nil {
		return err
	}

	assignmentsJSON, err := json.Marshal(run.Assignments)
	if err != nil {
		return err
	}
	logJSON, err := json.Marshal(run.Log)
	if err != nil {
		return err
	}

	query = `
		INSERT INTO generation_runs (year, seed, assignments, log)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{run.Year, run.Seed, assignmentsJSON, logJSON}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&run.ID, &run.CreatedAt, &run.Version); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetGenerationRunByYear(year int) (*domain.GenerationRun, error) {
	query := `
		SELECT id, seed, assignments, log, created_at, version
		FROM generation_runs WHERE year = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	run := &domain.GenerationRun{
		Year: year,
	}

	var assignmentsJSON, logJSON []byte
	dst := []any{&run.ID, &run.Seed, &assignmentsJSON, &logJSON, &run.CreatedAt, &run.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, year).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assignmentsJSON, &run.Assignments); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(logJSON, &run.Log); err != nil {
		return nil, err
	}

	return run, nil
}

func (r *Repository) GetAllGenerationRunYears() ([]int, error) {
	query := `
		SELECT year FROM generation_runs ORDER BY year DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}
