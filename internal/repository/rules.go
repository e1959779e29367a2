package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (r *Repository) GetAllForbiddenPairs() ([]*domain.ForbiddenPair, error) {
	query := `
		SELECT id, first_name, second_name, is_hard, version
		FROM forbidden_pairs ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([]*domain.ForbiddenPair, 0)
	for rows.Next() {
		pair := &domain.ForbiddenPair{}
		if err := rows.Scan(&pair.ID, &pair.First, &pair.Second, &pair.Hard, &pair.Version); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func (r *Repository) CreateForbiddenPair(pair *domain.ForbiddenPair) error {
	query := `
		INSERT INTO forbidden_pairs (first_name, second_name, is_hard)
		VALUES ($1, $2, $3)
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, pair.First, pair.Second, pair.Hard).Scan(&pair.ID, &pair.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteForbiddenPair(id int64) error {
	query := `
		DELETE FROM forbidden_pairs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) GetAllPreferredPairs() ([]*domain.PreferredPair, error) {
	query := `
		SELECT id, driver_name, crew_name, is_hard, version
		FROM preferred_pairs ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([]*domain.PreferredPair, 0)
	for rows.Next() {
		pair := &domain.PreferredPair{}
		if err := rows.Scan(&pair.ID, &pair.Driver, &pair.CrewMember, &pair.Hard, &pair.Version); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func (r *Repository) CreatePreferredPair(pair *domain.PreferredPair) error {
	query := `
		INSERT INTO preferred_pairs (driver_name, crew_name, is_hard)
		VALUES ($1, $2, $3)
		RETURNING id, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, pair.Driver, pair.CrewMember, pair.Hard).Scan(&pair.ID, &pair.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePreferredPair(id int64) error {
	query := `
		DELETE FROM preferred_pairs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// GetGenerationRules legge le regole salvate; quelle mai toccate
// dall'amministratore non hanno riga e restano al default.
func (r *Repository) GetGenerationRules() (map[domain.RuleKey]domain.RuleConfig, error) {
	query := `
		SELECT rule_key, mode, value FROM generation_rules
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	custom := make(map[domain.RuleKey]domain.RuleConfig)
	for rows.Next() {
		var key string
		var mode string
		var value sql.NullInt64
		if err := rows.Scan(&key, &mode, &value); err != nil {
			return nil, err
		}

		cfg := domain.RuleConfig{Mode: domain.ParseRuleMode(mode)}
		if value.Valid {
			v := int(value.Int64)
			cfg.Value = &v
		}
		custom[domain.RuleKey(key)] = cfg
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.MergeRulesWithDefaults(custom), nil
}

func (r *Repository) UpsertGenerationRule(key domain.RuleKey, cfg domain.RuleConfig) error {
	query := `
		INSERT INTO generation_rules (rule_key, mode, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (rule_key) DO UPDATE SET mode = EXCLUDED.mode, value = EXCLUDED.value
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var value sql.NullInt64
	if cfg.Value != nil {
		value = sql.NullInt64{Int64: int64(*cfg.Value), Valid: true}
	}

	_, err := r.dbpool.ExecContext(ctx, query, string(key), string(cfg.Mode), value)
	return err
}

// EnsureProgramSettings crea la riga unica delle impostazioni con i valori
// di fabbrica, se non esiste già.
func (r *Repository) EnsureProgramSettings() error {
	query := `
		INSERT INTO program_settings (id, rotation_driver, linked_driver, rotation_enabled, summer_excluded, min_seniors, active_weekdays, active_months)
		VALUES (1, '', '', false, '', 1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	weekdaysJSON, err := json.Marshal(domain.DefaultActiveWeekdays)
	if err != nil {
		return err
	}
	monthsJSON, err := json.Marshal([]int{})
	if err != nil {
		return err
	}

	_, err = r.dbpool.ExecContext(ctx, query, weekdaysJSON, monthsJSON)
	return err
}

// GetProgramSettings legge la riga unica delle impostazioni di distaccamento.
func (r *Repository) GetProgramSettings() (*domain.ProgramSettings, error) {
	query := `
		SELECT rotation_driver, linked_driver, rotation_enabled, summer_excluded, min_seniors, active_weekdays, active_months
		FROM program_settings WHERE id = 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.ProgramSettings{}
	var weekdaysJSON, monthsJSON []byte
	dst := []any{&settings.RotationDriver, &settings.LinkedDriver, &settings.RotationEnabled, &settings.SummerExcluded, &settings.MinSeniors, &weekdaysJSON, &monthsJSON}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(weekdaysJSON, &settings.ActiveWeekdays); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(monthsJSON, &settings.ActiveMonths); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpdateProgramSettings(settings *domain.ProgramSettings) error {
	query := `
		UPDATE program_settings
		SET
			rotation_driver = $1,
			linked_driver = $2,
			rotation_enabled = $3,
			summer_excluded = $4,
			min_seniors = $5,
			active_weekdays = $6,
			active_months = $7
		WHERE id = 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	weekdaysJSON, err := json.Marshal(settings.ActiveWeekdays)
	if err != nil {
		return err
	}
	monthsJSON, err := json.Marshal(settings.ActiveMonths)
	if err != nil {
		return err
	}

	args := []any{settings.RotationDriver, settings.LinkedDriver, settings.RotationEnabled, settings.SummerExcluded, settings.MinSeniors, weekdaysJSON, monthsJSON}
	_, err = r.dbpool.ExecContext(ctx, query, args...)
	return err
}
