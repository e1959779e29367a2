package scheduler

import (
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// Scheduler è il motore di generazione dei turni: per ogni data attiva
// dell'anno sceglie un autista e fino a quattro vigili applicando i vincoli
// configurati, e registra ogni deroga nel registro decisioni. Non fa I/O e
// assume una configurazione strutturalmente valida.
type Scheduler struct {
	year int

	drivers []string
	crew    []string
	grades  map[string]domain.Grade

	forbiddenHard map[pairKey]bool
	forbiddenSoft map[pairKey]bool
	preferredHard map[string][]string
	preferredSoft map[string]map[string]bool

	weeklyCaps map[string]int
	defaultCap int

	ruleMinSenior domain.RuleConfig
	ruleWeeklyCap domain.RuleConfig
	ruleSummer    domain.RuleConfig
	ruleRotation  domain.RuleConfig

	rotationEnabled  bool
	rotationDriver   string
	linkedDriver     string
	rotationIsSenior bool
	summerExcluded   string
	minSeniors       int

	vacations map[string][]domain.Vacation
	dates     []time.Time

	driverLoads *LoadTracker
	crewLoads   *LoadTracker

	seenTeams       map[string]bool
	creditedDrivers map[time.Time]*string
	log             []domain.LogEntry
	rng             *rand.Rand
}

// pairKey identifica una coppia di nomi indipendentemente dall'ordine.
type pairKey struct {
	a string
	b string
}

func makePairKey(first, second string) pairKey {
	if second < first {
		first, second = second, first
	}
	return pairKey{a: first, b: second}
}

// New costruisce il motore per la configurazione indicata. Il generatore
// casuale è iniettato dal chiamante: a parità di seed e di configurazione
// due esecuzioni producono esattamente gli stessi turni e lo stesso registro.
func New(cfg *domain.GenerationConfig, rng *rand.Rand) *Scheduler {
	s := &Scheduler{
		year:            cfg.Year,
		drivers:         slices.Clone(cfg.Drivers),
		crew:            slices.Clone(cfg.Crew),
		grades:          make(map[string]domain.Grade, len(cfg.Crew)),
		forbiddenHard:   make(map[pairKey]bool),
		forbiddenSoft:   make(map[pairKey]bool),
		preferredHard:   make(map[string][]string),
		preferredSoft:   make(map[string]map[string]bool),
		weeklyCaps:      make(map[string]int, len(cfg.WeeklyCaps)),
		defaultCap:      cfg.DefaultWeeklyCap,
		vacations:       cfg.Vacations,
		driverLoads:     NewLoadTracker(),
		crewLoads:       NewLoadTracker(),
		seenTeams:       make(map[string]bool),
		creditedDrivers: make(map[time.Time]*string),
		rng:             rng,
	}

	slices.Sort(s.drivers)
	slices.Sort(s.crew)

	for _, name := range s.crew {
		grade := cfg.Grades[name]
		if grade != domain.GradeSenior {
			grade = domain.GradeJunior
		}
		s.grades[name] = grade
	}

	for _, pair := range cfg.ForbiddenPairs {
		key := makePairKey(pair.First, pair.Second)
		if pair.Hard {
			s.forbiddenHard[key] = true
		} else {
			s.forbiddenSoft[key] = true
		}
	}
	for _, pair := range cfg.PreferredPairs {
		if pair.Hard {
			s.preferredHard[pair.Driver] = append(s.preferredHard[pair.Driver], pair.CrewMember)
		} else {
			if s.preferredSoft[pair.Driver] == nil {
				s.preferredSoft[pair.Driver] = make(map[string]bool)
			}
			s.preferredSoft[pair.Driver][pair.CrewMember] = true
		}
	}
	for _, members := range s.preferredHard {
		slices.Sort(members)
	}

	for name, cap := range cfg.WeeklyCaps {
		s.weeklyCaps[name] = max(0, cap)
	}
	if s.defaultCap < 0 {
		s.defaultCap = 0
	}

	rules := domain.MergeRulesWithDefaults(cfg.Rules)
	s.ruleMinSenior = rules[domain.RuleMinSenior]
	s.ruleWeeklyCap = rules[domain.RuleWeeklyCap]
	s.ruleSummer = rules[domain.RuleSummerExclusion]
	s.ruleRotation = rules[domain.RuleSpecialRotation]

	s.rotationEnabled = cfg.RotationEnabled && s.ruleRotation.Mode != domain.RuleModeOff
	if s.rotationEnabled {
		s.rotationDriver = cfg.RotationDriver
		s.linkedDriver = cfg.LinkedDriver
	}
	if s.ruleSummer.Mode != domain.RuleModeOff {
		s.summerExcluded = cfg.SummerExcluded
	}

	s.minSeniors = cfg.MinSeniors
	if s.ruleMinSenior.Value != nil {
		s.minSeniors = *s.ruleMinSenior.Value
	}
	s.minSeniors = max(0, s.minSeniors)

	s.rotationIsSenior = s.rotationEnabled &&
		s.rotationDriver != "" &&
		slices.Contains(s.crew, s.rotationDriver) &&
		s.grades[s.rotationDriver] == domain.GradeSenior

	s.dates = ActiveDates(cfg.Year, cfg.ActiveWeekdays, cfg.ActiveMonths)

	for _, name := range s.drivers {
		s.driverLoads.Ensure(name)
	}
	for _, name := range s.crew {
		s.crewLoads.Ensure(name)
	}

	return s
}

// Dates ritorna le date attive pianificate per l'anno.
func (s *Scheduler) Dates() []time.Time {
	return slices.Clone(s.dates)
}

// DriverLoads e CrewLoads espongono i contatori accumulati, usati dai report.
func (s *Scheduler) DriverLoads() *LoadTracker { return s.driverLoads }
func (s *Scheduler) CrewLoads() *LoadTracker   { return s.crewLoads }

// Schedule produce l'assegnazione di ogni data attiva, in ordine cronologico,
// insieme al registro decisioni. Una data non copribile non interrompe mai la
// generazione: produce un'assegnazione con campi mancanti e una voce a registro.
func (s *Scheduler) Schedule() ([]domain.Assignment, []domain.LogEntry) {
	assignments := make(map[time.Time]domain.Assignment, len(s.dates))

	perWeek := make(map[WeekKey][]time.Time)
	for _, day := range s.dates {
		key := weekKeyOf(day)
		perWeek[key] = append(perWeek[key], day)
	}

	weeks := make([]WeekKey, 0, len(perWeek))
	for key := range perWeek {
		weeks = append(weeks, key)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Week < weeks[j].Week
	})

	for _, week := range weeks {
		byWeekday := make(map[int]time.Time, len(perWeek[week]))
		for _, day := range perWeek[week] {
			byWeekday[weekdayIndex(day)] = day
		}
		for _, dow := range weekdayOrder(byWeekday) {
			day := byWeekday[dow]
			assignments[day] = s.buildDay(day, assignments)
		}
	}

	ordered := make([]domain.Assignment, 0, len(assignments))
	for _, day := range s.dates {
		ordered = append(ordered, assignments[day])
	}
	return ordered, slices.Clone(s.log)
}

// weekdayOrder ordina i giorni di una settimana come li risolve il motore:
// prima il sabato, poi il venerdì (che dipende dall'esito del sabato), poi la
// domenica, infine gli altri giorni attivi in ordine crescente.
func weekdayOrder(days map[int]time.Time) []int {
	order := make([]int, 0, len(days))
	for _, dow := range []int{5, 4, 6} {
		if _, ok := days[dow]; ok {
			order = append(order, dow)
		}
	}
	rest := make([]int, 0, len(days))
	for dow := range days {
		if dow != 4 && dow != 5 && dow != 6 {
			rest = append(rest, dow)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}

// weekDriver trova l'autista accreditato del giorno target_dow nella stessa
// settimana ISO del giorno indicato, se già assegnato.
func (s *Scheduler) weekDriver(assignments map[time.Time]domain.Assignment, day time.Time, targetDow int) *string {
	week := weekKeyOf(day)
	for date, assignment := range assignments {
		if weekKeyOf(date) == week && weekdayIndex(date) == targetDow {
			if credited, ok := s.creditedDrivers[date]; ok {
				return credited
			}
			return assignment.Driver
		}
	}
	return nil
}

func (s *Scheduler) buildDay(day time.Time, assignments map[time.Time]domain.Assignment) domain.Assignment {
	saturdayDriver := s.weekDriver(assignments, day, 5)

	assignment, credited := s.buildDayWith(day, saturdayDriver, s.rotationEnabled)
	if s.rotationEnabled && assignment.Incomplete() {
		// La rotazione speciale ha lasciato il turno scoperto: un solo
		// secondo tentativo senza il vincolo, poi si accetta il risultato.
		s.logf(day, domain.LogCategoryDriver, "Deroga rotazione dedicata: ricompongo il turno senza il vincolo speciale.")
		assignment, credited = s.buildDayWith(day, saturdayDriver, false)
	}
	s.creditedDrivers[day] = credited
	return assignment
}

func (s *Scheduler) buildDayWith(day time.Time, saturdayDriver *string, applyRotation bool) (domain.Assignment, *string) {
	dow := weekdayIndex(day)

	driverExcluded := make(map[string]bool)
	if applyRotation && s.rotationDriver != "" && dow != 4 {
		driverExcluded[s.rotationDriver] = true
	}
	if applyRotation && dow == 4 && s.rotationDriver != "" && s.linkedDriver != "" &&
		saturdayDriver != nil && *saturdayDriver == s.linkedDriver {
		driverExcluded[s.rotationDriver] = true
		s.logf(day, domain.LogCategoryDriver,
			"Regola: sabato guida %s, quindi venerdì escludo %s.", s.linkedDriver, s.rotationDriver)
	}

	driver, hasDriver := s.selectDriver(day, driverExcluded)
	displayDriver := driver

	includeBonus := applyRotation && s.rotationIsSenior && dow == 4 && s.rotationDriver != "" &&
		(s.linkedDriver == "" || saturdayDriver == nil || *saturdayDriver != s.linkedDriver)

	if applyRotation && s.rotationIsSenior && dow == 5 && hasDriver &&
		driver == s.linkedDriver && s.rotationDriver != "" {
		displayDriver = s.rotationDriver
		s.logf(day, domain.LogCategoryDriver,
			"Rotazione dedicata: visualizzo %s al posto di %s (conteggio attribuito a %s).",
			s.rotationDriver, s.linkedDriver, s.linkedDriver)
	}

	crewTarget := domain.CrewSize
	if includeBonus {
		crewTarget--
	}

	crewExcluded := make(map[string]bool)
	if hasDriver {
		crewExcluded[driver] = true
	}
	if applyRotation && s.rotationDriver != "" {
		crewExcluded[s.rotationDriver] = true
	}

	team, ok := s.selectCrew(day, crewTarget, driver, hasDriver, crewExcluded)
	if !ok {
		s.logf(day, domain.LogCategoryCrew, "Turno scoperto: impossibile comporre una squadra valida.")
		return domain.Assignment{
			Date:           day,
			Driver:         namePtr(displayDriver, hasDriver),
			CreditedDriver: namePtr(driver, hasDriver),
		}, namePtr(driver, hasDriver)
	}

	// Il posto aggiuntivo non deve mai duplicare l'autista del giorno.
	if includeBonus && (!hasDriver || driver != s.rotationDriver) {
		team = s.addRotationBonus(day, team)
	}

	assignment := domain.Assignment{
		Date:           day,
		Driver:         namePtr(displayDriver, hasDriver),
		CreditedDriver: namePtr(driver, hasDriver),
	}
	for i := 0; i < len(team) && i < domain.CrewSize; i++ {
		member := team[i]
		assignment.Crew[i] = &member
	}
	return assignment, namePtr(driver, hasDriver)
}

// addRotationBonus aggiunge l'autista a rotazione come vigile SENIOR
// aggiuntivo del venerdì, se disponibile.
func (s *Scheduler) addRotationBonus(day time.Time, team []string) []string {
	if s.rotationDriver == "" || slices.Contains(team, s.rotationDriver) {
		return team
	}
	if s.onVacation(s.rotationDriver, day) {
		s.logf(day, domain.LogCategoryCrew, "%s è in ferie: venerdì senza vigile aggiuntivo.", s.rotationDriver)
		return team
	}
	if s.capBlocks(s.crewLoads, s.rotationDriver, day) {
		s.logf(day, domain.LogCategoryCrew,
			"%s ha già raggiunto il limite settimanale: nessun vigile SENIOR aggiuntivo.", s.rotationDriver)
		return team
	}

	team = append(team, s.rotationDriver)
	s.crewLoads.Record(s.rotationDriver, day)
	s.seenTeams[teamKey(team)] = true
	s.logf(day, domain.LogCategoryCrew, "Venerdì speciale: aggiungo %s come vigile SENIOR aggiuntivo.", s.rotationDriver)
	return team
}

// weeklyCapOf ritorna il limite settimanale della persona; 0 = nessun limite.
func (s *Scheduler) weeklyCapOf(name string) int {
	if cap, ok := s.weeklyCaps[name]; ok {
		return cap
	}
	return s.defaultCap
}

// capReachedRaw riporta se la persona ha già esaurito il proprio limite
// settimanale, senza considerare la modalità della regola.
func (s *Scheduler) capReachedRaw(loads *LoadTracker, name string, day time.Time) bool {
	cap := s.weeklyCapOf(name)
	if cap <= 0 {
		return false
	}
	return loads.Week(name, weekKeyOf(day)) >= cap
}

// capBlocks riporta se il limite settimanale impedisce davvero l'assegnazione:
// solo in modalità hard il limite raggiunto è bloccante.
func (s *Scheduler) capBlocks(loads *LoadTracker, name string, day time.Time) bool {
	if s.ruleWeeklyCap.Mode != domain.RuleModeHard {
		return false
	}
	return s.capReachedRaw(loads, name, day)
}

func (s *Scheduler) onVacation(name string, day time.Time) bool {
	for _, vacation := range s.vacations[name] {
		if vacation.Contains(day) {
			return true
		}
	}
	return false
}

func namePtr(name string, ok bool) *string {
	if !ok {
		return nil
	}
	return &name
}
