package repository

import (
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// BuildGenerationConfig assembla la configurazione completa del generatore
// per l'anno indicato: roster attivo, coppie, ferie, regole e impostazioni
// di distaccamento. Le persone disattivate non entrano nel roster.
func (r *Repository) BuildGenerationConfig(year int) (*domain.GenerationConfig, error) {
	people, err := r.GetAllPeople()
	if err != nil {
		return nil, err
	}

	forbidden, err := r.GetAllForbiddenPairs()
	if err != nil {
		return nil, err
	}

	preferred, err := r.GetAllPreferredPairs()
	if err != nil {
		return nil, err
	}

	rules, err := r.GetGenerationRules()
	if err != nil {
		return nil, err
	}

	settings, err := r.GetProgramSettings()
	if err != nil {
		return nil, err
	}

	vacations, err := r.GetAllVacations()
	if err != nil {
		return nil, err
	}

	cfg := &domain.GenerationConfig{
		Year:             year,
		Grades:           make(map[string]domain.Grade),
		WeeklyCaps:       make(map[string]int),
		DefaultWeeklyCap: domain.DefaultWeeklyCap,
		RotationEnabled:  settings.RotationEnabled,
		RotationDriver:   settings.RotationDriver,
		LinkedDriver:     settings.LinkedDriver,
		SummerExcluded:   settings.SummerExcluded,
		MinSeniors:       settings.MinSeniors,
		Vacations:        make(map[string][]domain.Vacation),
		ActiveWeekdays:   settings.ActiveWeekdays,
		ActiveMonths:     settings.ActiveMonths,
		Rules:            rules,
	}

	nameByID := make(map[int64]string, len(people))
	for _, person := range people {
		if !person.IsActive {
			continue
		}
		nameByID[person.ID] = person.FullName

		if person.CanDrive() {
			cfg.Drivers = append(cfg.Drivers, person.FullName)
		}
		if person.CanCrew() {
			cfg.Crew = append(cfg.Crew, person.FullName)
		}
		cfg.Grades[person.FullName] = person.Grade
		if person.WeeklyCap != domain.DefaultWeeklyCap {
			cfg.WeeklyCaps[person.FullName] = person.WeeklyCap
		}
	}

	for _, pair := range forbidden {
		cfg.ForbiddenPairs = append(cfg.ForbiddenPairs, *pair)
	}
	for _, pair := range preferred {
		cfg.PreferredPairs = append(cfg.PreferredPairs, *pair)
	}

	for _, vacation := range vacations {
		name, ok := nameByID[vacation.PersonID]
		if !ok {
			// Ferie di una persona disattivata: non riguardano il roster.
			continue
		}
		cfg.Vacations[name] = append(cfg.Vacations[name], *vacation)
	}

	return cfg, nil
}
