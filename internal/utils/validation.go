package utils

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// ValidateGenerationConfig controlla la coerenza strutturale della
// configurazione prima di avviare il generatore: roster non vuoti, nomi
// delle coppie e delle impostazioni presenti nel roster, ferie con estremi
// ordinati. Il motore assume una configurazione già validata.
func ValidateGenerationConfig(cfg *domain.GenerationConfig) error {
	if len(cfg.Drivers) == 0 {
		return errors.New("nessun autista attivo in anagrafica")
	}
	if len(cfg.Crew) == 0 {
		return errors.New("nessun vigile attivo in anagrafica")
	}

	everyone := make([]string, 0, len(cfg.Drivers)+len(cfg.Crew))
	everyone = append(everyone, cfg.Drivers...)
	for _, name := range cfg.Crew {
		if !slices.Contains(everyone, name) {
			everyone = append(everyone, name)
		}
	}

	for _, pair := range cfg.ForbiddenPairs {
		if !slices.Contains(cfg.Crew, pair.First) {
			return fmt.Errorf("la coppia vietata cita %s che non è un vigile attivo", pair.First)
		}
		if !slices.Contains(cfg.Crew, pair.Second) {
			return fmt.Errorf("la coppia vietata cita %s che non è un vigile attivo", pair.Second)
		}
		if pair.First == pair.Second {
			return fmt.Errorf("la coppia vietata cita due volte %s", pair.First)
		}
	}

	for _, pair := range cfg.PreferredPairs {
		if !slices.Contains(cfg.Drivers, pair.Driver) {
			return fmt.Errorf("l'abbinamento autista-vigile cita %s che non è un autista attivo", pair.Driver)
		}
		if !slices.Contains(cfg.Crew, pair.CrewMember) {
			return fmt.Errorf("l'abbinamento autista-vigile cita %s che non è un vigile attivo", pair.CrewMember)
		}
	}

	if cfg.RotationEnabled {
		if !slices.Contains(cfg.Drivers, cfg.RotationDriver) {
			return fmt.Errorf("la rotazione dedicata cita %s che non è un autista attivo", cfg.RotationDriver)
		}
		if !slices.Contains(cfg.Drivers, cfg.LinkedDriver) {
			return fmt.Errorf("la rotazione dedicata cita %s che non è un autista attivo", cfg.LinkedDriver)
		}
		if cfg.RotationDriver == cfg.LinkedDriver {
			return errors.New("la rotazione dedicata richiede due autisti distinti")
		}
	}

	if cfg.SummerExcluded != "" && !slices.Contains(everyone, cfg.SummerExcluded) {
		return fmt.Errorf("l'esclusione estiva cita %s che non è in anagrafica", cfg.SummerExcluded)
	}

	if cfg.MinSeniors < 0 || cfg.MinSeniors > domain.CrewSize {
		return fmt.Errorf("minimo SENIOR fuori intervallo: %d", cfg.MinSeniors)
	}

	for name, vacations := range cfg.Vacations {
		if !slices.Contains(everyone, name) {
			return fmt.Errorf("le ferie citano %s che non è in anagrafica", name)
		}
		for _, vacation := range vacations {
			if vacation.End.Before(vacation.Start) {
				return fmt.Errorf("le ferie di %s terminano prima di iniziare", name)
			}
		}
	}

	for _, dow := range cfg.ActiveWeekdays {
		if dow < 0 || dow > 6 {
			return fmt.Errorf("giorno pianificato fuori intervallo: %d", dow)
		}
	}
	for _, month := range cfg.ActiveMonths {
		if month < 1 || month > 12 {
			return fmt.Errorf("mese pianificato fuori intervallo: %d", month)
		}
	}

	return nil
}
