package scheduler

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// maxTeamCombinations limita l'enumerazione delle combinazioni di squadra su
// roster inattesi: oltre questa soglia le combinazioni restanti vengono
// ignorate e si sceglie fra quelle già valutate.
const maxTeamCombinations = 100000

type teamCandidate struct {
	score          []float64
	members        []string
	softViolations int
}

// selectCrew compone la squadra vigili di una data tramite ricerca
// combinatoria vincolata. size è normalmente 4, ridotto di uno quando la
// rotazione dedicata riserva il posto aggiuntivo del venerdì. Ritorna false
// quando nessuna combinazione soddisfa i vincoli duri.
func (s *Scheduler) selectCrew(day time.Time, size int, driver string, hasDriver bool, excluded map[string]bool) ([]string, bool) {
	if size <= 0 {
		return []string{}, true
	}

	month := int(day.Month())
	dow := weekdayIndex(day)
	week := weekKeyOf(day)
	summerBlocked := s.summerExcluded != "" && summerMonths[day.Month()]

	// Partiziono il pool: i candidati che violerebbero solo vincoli soft
	// restano come riserva e vengono ripescati in caso di organico corto.
	var base []string
	var fallback []string
	atCap := make(map[string]bool)
	inSummerBlock := make(map[string]bool)
	for _, name := range s.crew {
		if excluded[name] {
			continue
		}
		if s.onVacation(name, day) {
			continue
		}
		summer := summerBlocked && name == s.summerExcluded && s.ruleSummer.Mode != domain.RuleModeOff
		capRaw := s.ruleWeeklyCap.Mode != domain.RuleModeOff && s.capReachedRaw(s.crewLoads, name, day)
		if s.ruleSummer.Mode == domain.RuleModeHard && summer {
			continue
		}
		if s.ruleWeeklyCap.Mode == domain.RuleModeHard && capRaw {
			continue
		}
		atCap[name] = capRaw
		inSummerBlock[name] = summer
		if summer || capRaw {
			fallback = append(fallback, name)
		} else {
			base = append(base, name)
		}
	}

	available := base
	if len(available) < size && len(fallback) > 0 {
		var reasons []string
		for _, name := range fallback {
			if atCap[name] {
				reasons = append(reasons, "limite settimanale")
				break
			}
		}
		for _, name := range fallback {
			if inSummerBlock[name] {
				reasons = append(reasons, "regola estiva")
				break
			}
		}
		description := strings.Join(reasons, " e ")
		if description == "" {
			description = "vincoli soft"
		}
		s.logf(day, domain.LogCategoryCrew, "Deroga %s: includo %s fra i candidati.", description, strings.Join(fallback, ", "))
		available = append(available, fallback...)
	}

	if len(available) < size {
		s.logf(day, domain.LogCategoryCrew,
			"Candidati insufficienti (%d/%d) dopo aver applicato ferie, limiti e vincoli.", len(available), size)
		return nil, false
	}

	availableSet := make(map[string]bool, len(available))
	hasSenior := false
	for _, name := range available {
		availableSet[name] = true
		if s.grades[name] == domain.GradeSenior {
			hasSenior = true
		}
	}

	// Vincoli duri autista-vigile: chi è nel pool va incluso, chi manca
	// viene segnalato e il turno prosegue con la migliore alternativa.
	var mandatory []string
	for _, name := range s.preferredHard[driver] {
		if !hasDriver {
			break
		}
		if availableSet[name] {
			mandatory = append(mandatory, name)
		} else {
			s.logf(day, domain.LogCategoryCrew,
				"Vincolo duro autista-vigile non rispettato (manca %s). Proseguo scegliendo la migliore alternativa.", name)
		}
	}
	if len(mandatory) > size {
		s.logf(day, domain.LogCategoryCrew,
			"Vincoli duri autista-vigile eccedono la dimensione squadra: limito al numero di posti disponibili.")
		mandatory = mandatory[:size]
	}

	openSlots := size - len(mandatory)
	var rest []string
	for _, name := range available {
		if !slices.Contains(mandatory, name) {
			rest = append(rest, name)
		}
	}
	if openSlots > len(rest) {
		s.logf(day, domain.LogCategoryCrew,
			"Impossibile completare la squadra (%d posti da coprire, %d candidati idonei).", openSlots, len(rest))
		return nil, false
	}

	var solutions []teamCandidate
	seniorWaiverLogged := false

	evaluated := 0
	forEachCombination(rest, openSlots, func(extra []string) bool {
		evaluated++
		if evaluated > maxTeamCombinations {
			return false
		}

		team := make([]string, 0, size)
		team = append(team, mandatory...)
		team = append(team, extra...)

		if s.hasForbiddenHardPair(team) {
			return true
		}

		if s.minSeniors > 0 {
			seniorCount := 0
			for _, name := range team {
				if s.grades[name] == domain.GradeSenior {
					seniorCount++
				}
			}
			if !hasSenior && !seniorWaiverLogged {
				s.logf(day, domain.LogCategoryCrew, "Deroga esperienza: nessun vigile SENIOR disponibile fra i candidati di oggi.")
				seniorWaiverLogged = true
			}
			if hasSenior && seniorCount < s.minSeniors {
				switch s.ruleMinSenior.Mode {
				case domain.RuleModeHard:
					return true
				case domain.RuleModeSoft:
					if !seniorWaiverLogged {
						s.logf(day, domain.LogCategoryCrew,
							"Deroga esperienza: squadra con %d SENIOR (minimo %d).", seniorCount, s.minSeniors)
						seniorWaiverLogged = true
					}
				case domain.RuleModeOff:
					// regola disattivata: nessun filtro e nessuna deroga
				}
			}
		}

		solutions = append(solutions, s.scoreTeam(team, driver, hasDriver, month, dow, week))
		return true
	})

	if len(solutions) == 0 {
		s.logf(day, domain.LogCategoryCrew, "Nessuna combinazione di squadra soddisfa i vincoli duri e le deroghe gestibili.")
		return nil, false
	}

	sort.Slice(solutions, func(i, j int) bool {
		return lessScore(solutions[i].score, solutions[j].score)
	})
	best := solutions[0]

	if best.softViolations > 0 {
		s.logf(day, domain.LogCategoryCrew, "Deroga: utilizzo squadra con %d coppia/e sconsigliate.", best.softViolations)
	}
	if s.seenTeams[teamKey(best.members)] {
		s.logf(day, domain.LogCategoryCrew,
			"Squadra già vista (%s): la riutilizzo per mancanza di alternative migliori.", strings.Join(best.members, ", "))
	}
	if s.ruleWeeklyCap.Mode == domain.RuleModeSoft {
		for _, name := range best.members {
			if atCap[name] {
				s.logf(day, domain.LogCategoryCrew, "Deroga limite settimanale: associo %s oltre il proprio limite.", name)
			}
		}
	}
	if s.ruleSummer.Mode == domain.RuleModeSoft {
		for _, name := range best.members {
			if inSummerBlock[name] {
				s.logf(day, domain.LogCategoryCrew, "Deroga regola estiva: includo %s nonostante il vincolo.", name)
			}
		}
	}

	for _, name := range best.members {
		s.crewLoads.Record(name, day)
	}
	s.seenTeams[teamKey(best.members)] = true
	return best.members, true
}

// scoreTeam assegna il punteggio di equità della squadra: punteggi più bassi
// vincono. Le componenti, in ordine di priorità: coppie sconsigliate presenti,
// membri già usciti in questo mese/giorno, squadra già vista, carichi
// settimanale/mensile/annuale/per-giorno, ripetizioni del giorno precedente,
// preferenze soft dell'autista (negate) e spareggio casuale.
func (s *Scheduler) scoreTeam(team []string, driver string, hasDriver bool, month, dow int, week WeekKey) teamCandidate {
	softViolations := 0
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			if s.forbiddenSoft[makePairKey(team[i], team[j])] {
				softViolations++
			}
		}
	}

	monthDowRepeats := 0
	weekLoad, monthLoad, annualLoad, dowLoad := 0, 0, 0, 0
	recentRepeats := 0
	softPreferred := 0
	for _, name := range team {
		if s.crewLoads.MonthWeekday(name, month, dow) >= 1 {
			monthDowRepeats++
		}
		weekLoad += s.crewLoads.Week(name, week)
		monthLoad += s.crewLoads.Month(name, month)
		annualLoad += s.crewLoads.Annual(name)
		dowLoad += s.crewLoads.Weekday(name, dow)
		if last, ok := s.crewLoads.LastWeekday(name); ok && last == dow {
			recentRepeats++
		}
		if hasDriver && s.preferredSoft[driver][name] {
			softPreferred++
		}
	}

	seenFlag := 0.0
	if s.seenTeams[teamKey(team)] {
		seenFlag = 1.0
	}

	return teamCandidate{
		score: []float64{
			float64(softViolations),
			float64(monthDowRepeats),
			seenFlag,
			float64(weekLoad),
			float64(monthLoad),
			float64(annualLoad),
			float64(dowLoad),
			float64(recentRepeats),
			-float64(softPreferred),
			s.rng.Float64(),
		},
		members:        team,
		softViolations: softViolations,
	}
}

func (s *Scheduler) hasForbiddenHardPair(team []string) bool {
	for i := 0; i < len(team); i++ {
		for j := i + 1; j < len(team); j++ {
			if s.forbiddenHard[makePairKey(team[i], team[j])] {
				return true
			}
		}
	}
	return false
}

// teamKey identifica una composizione di squadra indipendentemente dall'ordine.
func teamKey(team []string) string {
	sorted := make([]string, len(team))
	copy(sorted, team)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// forEachCombination invoca visit su ogni combinazione di k elementi di pool,
// in ordine lessicografico sugli indici; si ferma quando visit ritorna false.
func forEachCombination(pool []string, k int, visit func([]string) bool) {
	if k == 0 {
		visit(nil)
		return
	}
	if k > len(pool) {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	combo := make([]string, k)
	for {
		for i, idx := range indices {
			combo[i] = pool[idx]
		}
		if !visit(combo) {
			return
		}

		// Avanzo gli indici in ordine lessicografico.
		i := k - 1
		for i >= 0 && indices[i] == i+len(pool)-k {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
