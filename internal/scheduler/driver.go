package scheduler

import (
	"sort"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// selectDriver sceglie l'autista di una data. Ritorna false solo quando,
// applicati esclusioni, ferie e limite settimanale in modalità hard, non
// resta nessun candidato: il turno prosegue senza autista.
func (s *Scheduler) selectDriver(day time.Time, excluded map[string]bool) (string, bool) {
	month := int(day.Month())
	dow := weekdayIndex(day)
	week := weekKeyOf(day)

	var candidates []string
	atCap := make(map[string]bool)
	for _, name := range s.drivers {
		if excluded[name] {
			continue
		}
		if s.onVacation(name, day) {
			continue
		}
		capRaw := s.ruleWeeklyCap.Mode != domain.RuleModeOff && s.capReachedRaw(s.driverLoads, name, day)
		if s.ruleWeeklyCap.Mode == domain.RuleModeHard && capRaw {
			continue
		}
		atCap[name] = capRaw
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		s.logf(day, domain.LogCategoryDriver, "Nessun autista disponibile rispettando vincoli e limiti settimanali.")
		return "", false
	}

	// Preferisco chi non ha ancora guidato in questa combinazione mese/giorno:
	// se nessuno resta, il vincolo viene rilassato per tutti.
	var pool []string
	for _, name := range candidates {
		if s.driverLoads.MonthWeekday(name, month, dow) < 1 {
			pool = append(pool, name)
		}
	}
	if len(pool) == 0 {
		pool = candidates
		s.logf(day, domain.LogCategoryDriver, "Deroga: rilasso il vincolo un-turno-per mese/giorno sugli autisti per coprire il servizio.")
	}

	keys := make(map[string][]float64, len(pool))
	for _, name := range pool {
		capFlag := 0.0
		if atCap[name] {
			capFlag = 1.0
		}
		lastSame := 0.0
		if last, ok := s.driverLoads.LastWeekday(name); ok && last == dow {
			lastSame = 1.0
		}
		keys[name] = []float64{
			capFlag,
			float64(s.driverLoads.Week(name, week)),
			float64(s.driverLoads.Month(name, month)),
			float64(s.driverLoads.Annual(name)),
			float64(s.driverLoads.Weekday(name, dow)),
			lastSame,
			s.rng.Float64(),
		}
	}
	sort.Slice(pool, func(i, j int) bool {
		return lessScore(keys[pool[i]], keys[pool[j]])
	})

	chosen := pool[0]
	if s.ruleWeeklyCap.Mode == domain.RuleModeSoft && atCap[chosen] {
		s.logf(day, domain.LogCategoryDriver, "Deroga limite settimanale: assegno %s oltre il proprio limite.", chosen)
	}
	s.driverLoads.Record(chosen, day)
	return chosen, true
}

// lessScore confronta due punteggi in ordine lessicografico ascendente.
func lessScore(a, b []float64) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
