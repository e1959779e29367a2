package scheduler_test

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
)

func newConfig(year int) *domain.GenerationConfig {
	return &domain.GenerationConfig{
		Year:             year,
		Grades:           map[string]domain.Grade{},
		WeeklyCaps:       map[string]int{},
		DefaultWeeklyCap: 0,
		Vacations:        map[string][]domain.Vacation{},
		Rules:            map[domain.RuleKey]domain.RuleConfig{},
	}
}

func allRules(mode domain.RuleMode) map[domain.RuleKey]domain.RuleConfig {
	rules := make(map[domain.RuleKey]domain.RuleConfig)
	for _, def := range domain.RuleDefinitions {
		rules[def.Key] = domain.RuleConfig{Mode: mode}
	}
	return rules
}

func run(t *testing.T, cfg *domain.GenerationConfig, seed int64) ([]domain.Assignment, []domain.LogEntry) {
	t.Helper()
	s := scheduler.New(cfg, rand.New(rand.NewSource(seed)))
	assignments, log := s.Schedule()
	require.NotEmpty(t, assignments)
	return assignments, log
}

func crewNames(a domain.Assignment) []string {
	var names []string
	for _, member := range a.Crew {
		if member != nil {
			names = append(names, *member)
		}
	}
	return names
}

func logContaining(log []domain.LogEntry, fragment string) []domain.LogEntry {
	var matched []domain.LogEntry
	for _, entry := range log {
		if strings.Contains(entry.Message, fragment) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Scenario base: due autisti e quattro vigili junior, regole disattivate,
// solo il sabato attivo. Ogni sabato deve avere autista e squadra completa
// (gli unici quattro nomi disponibili) e la deroga "nessun SENIOR" deve
// comparire una volta per data.
func TestScheduleFullCrewWithoutSeniors(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo", "Ferrari"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)

	assignments, log := run(t, cfg, 1)

	for _, a := range assignments {
		require.NotNil(t, a.Driver)
		assert.ElementsMatch(t, []string{"Esposito", "Fontana", "Greco", "Ricci"}, crewNames(a))
	}
	assert.Len(t, logContaining(log, "nessun vigile SENIOR disponibile"), len(assignments))
}

// Una coppia vietata hard non deve mai comparire nella stessa squadra, anche
// quando i posti da coprire costringono a cercare la combinazione giusta.
func TestScheduleHardForbiddenPairNeverTogether(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci", "Moretti"}
	cfg.ForbiddenPairs = []domain.ForbiddenPair{{First: "Esposito", Second: "Fontana", Hard: true}}
	cfg.ActiveWeekdays = []int{5, 6}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleWeeklyCap] = domain.RuleConfig{Mode: domain.RuleModeOff}

	assignments, _ := run(t, cfg, 7)

	for _, a := range assignments {
		names := crewNames(a)
		require.Len(t, names, 4)
		both := 0
		for _, name := range names {
			if name == "Esposito" || name == "Fontana" {
				both++
			}
		}
		assert.Less(t, both, 2, "coppia vietata co-assegnata il %s", a.Date.Format("2006-01-02"))
	}
}

// Vincolo duro autista-vigile: il vigile legato compare in ogni squadra
// guidata da quell'autista, anche quando il bilanciamento dei carichi
// spingerebbe verso altre combinazioni.
func TestScheduleHardPreferredPairAlwaysIncluded(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Barbieri", "Esposito", "Fontana", "Greco", "Moretti", "Ricci"}
	cfg.PreferredPairs = []domain.PreferredPair{{Driver: "Rossi", CrewMember: "Moretti", Hard: true}}
	cfg.ActiveWeekdays = []int{5, 6}
	cfg.Rules = allRules(domain.RuleModeOff)

	assignments, _ := run(t, cfg, 13)

	for _, a := range assignments {
		require.NotNil(t, a.Driver)
		assert.Contains(t, crewNames(a), "Moretti", "vincolo duro ignorato il %s", a.Date.Format("2006-01-02"))
	}
}

// Cinque vincoli duri per lo stesso autista non entrano in quattro posti:
// la lista viene limitata alla dimensione squadra e la deroga va a registro.
func TestScheduleHardPreferredPairsTruncatedToCrewSize(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Moretti", "Ricci"}
	cfg.PreferredPairs = []domain.PreferredPair{
		{Driver: "Rossi", CrewMember: "Esposito", Hard: true},
		{Driver: "Rossi", CrewMember: "Fontana", Hard: true},
		{Driver: "Rossi", CrewMember: "Greco", Hard: true},
		{Driver: "Rossi", CrewMember: "Moretti", Hard: true},
		{Driver: "Rossi", CrewMember: "Ricci", Hard: true},
	}
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)

	assignments, log := run(t, cfg, 13)

	for _, a := range assignments {
		require.Len(t, crewNames(a), domain.CrewSize)
	}
	assert.Len(t, logContaining(log, "Vincoli duri autista-vigile eccedono"), len(assignments))
}

// Se il vigile legato da vincolo duro è in ferie, la squadra prosegue con la
// migliore alternativa e la mancanza viene segnalata a registro.
func TestScheduleHardPreferredPairMissingMemberLogged(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Moretti", "Ricci"}
	cfg.PreferredPairs = []domain.PreferredPair{{Driver: "Rossi", CrewMember: "Moretti", Hard: true}}
	cfg.Vacations = map[string][]domain.Vacation{
		"Moretti": {{Start: date(2025, 1, 1), End: date(2025, 1, 31)}},
	}
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)

	assignments, log := run(t, cfg, 13)

	for _, a := range assignments {
		assert.NotContains(t, crewNames(a), "Moretti")
		require.Len(t, crewNames(a), domain.CrewSize)
	}
	assert.Len(t, logContaining(log, "Vincolo duro autista-vigile non rispettato (manca Moretti)"), len(assignments))
}

// Minimo SENIOR hard: finché un SENIOR è fra i candidati ogni squadra ne
// contiene almeno uno, senza deroghe a registro.
func TestScheduleHardMinSeniorAlwaysSatisfied(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo"}
	cfg.Crew = []string{"Barbieri", "Esposito", "Fontana", "Greco", "Moretti", "Ricci"}
	cfg.Grades = map[string]domain.Grade{"Barbieri": domain.GradeSenior}
	cfg.MinSeniors = 1
	cfg.ActiveWeekdays = []int{5, 6}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleMinSenior] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 21)

	for _, a := range assignments {
		seniors := 0
		for _, name := range crewNames(a) {
			if cfg.Grades[name] == domain.GradeSenior {
				seniors++
			}
		}
		assert.GreaterOrEqual(t, seniors, 1, "nessun SENIOR in squadra il %s", a.Date.Format("2006-01-02"))
	}
	assert.Empty(t, logContaining(log, "Deroga esperienza"))
}

// Minimo SENIOR soft: quando i vincoli duri impediscono di schierare l'unico
// SENIOR, la squadra esce comunque e la deroga con il conteggio va a registro.
func TestScheduleSoftMinSeniorLogsWaiver(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo"}
	cfg.Crew = []string{"Barbieri", "Esposito", "Fontana", "Greco", "Ricci"}
	cfg.Grades = map[string]domain.Grade{"Barbieri": domain.GradeSenior}
	cfg.MinSeniors = 1
	cfg.ForbiddenPairs = []domain.ForbiddenPair{
		{First: "Barbieri", Second: "Esposito", Hard: true},
		{First: "Barbieri", Second: "Fontana", Hard: true},
		{First: "Barbieri", Second: "Greco", Hard: true},
		{First: "Barbieri", Second: "Ricci", Hard: true},
	}
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleMinSenior] = domain.RuleConfig{Mode: domain.RuleModeSoft}

	assignments, log := run(t, cfg, 21)

	for _, a := range assignments {
		assert.ElementsMatch(t, []string{"Esposito", "Fontana", "Greco", "Ricci"}, crewNames(a))
	}
	assert.Len(t, logContaining(log, "Deroga esperienza: squadra con 0 SENIOR (minimo 1)"), len(assignments))
}

// Limite settimanale soft: l'unico autista con limite 1 copre due date della
// stessa settimana ISO e la seconda produce la deroga a registro.
func TestScheduleSoftWeeklyCapOverride(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.WeeklyCaps = map[string]int{"Rossi": 1}
	cfg.ActiveWeekdays = []int{4, 5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleWeeklyCap] = domain.RuleConfig{Mode: domain.RuleModeSoft}

	assignments, log := run(t, cfg, 3)

	weeks := make(map[scheduler.WeekKey]int)
	for _, a := range assignments {
		require.NotNil(t, a.Driver)
		assert.Equal(t, "Rossi", *a.Driver)
		year, week := a.Date.ISOWeek()
		weeks[scheduler.WeekKey{Year: year, Week: week}]++
	}
	fullWeeks := 0
	for _, count := range weeks {
		if count == 2 {
			fullWeeks++
		}
	}
	require.Positive(t, fullWeeks)
	assert.Len(t, logContaining(log, "Deroga limite settimanale: assegno Rossi"), fullWeeks)
}

// Limite settimanale hard: la seconda data della settimana resta senza autista
// ma la generazione continua.
func TestScheduleHardWeeklyCapLeavesDayUncovered(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.WeeklyCaps = map[string]int{"Rossi": 1}
	cfg.ActiveWeekdays = []int{4, 5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleWeeklyCap] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 3)

	uncovered := 0
	for _, a := range assignments {
		if a.Driver == nil {
			uncovered++
		}
	}
	assert.Positive(t, uncovered)
	assert.NotEmpty(t, logContaining(log, "Nessun autista disponibile"))
}

// Limite settimanale 0 = nessun limite: comportamento storico da preservare.
func TestScheduleWeeklyCapZeroMeansUnlimited(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Rossi"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.WeeklyCaps = map[string]int{"Rossi": 0}
	cfg.ActiveWeekdays = []int{4, 5, 6}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleWeeklyCap] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 3)

	for _, a := range assignments {
		require.NotNil(t, a.Driver)
		assert.Equal(t, "Rossi", *a.Driver)
	}
	assert.Empty(t, logContaining(log, "Nessun autista disponibile"))
}

// Regola estiva disattivata: il vigile escluso d'estate resta assegnabile a
// luglio e agosto.
func TestScheduleSummerExclusionOffDoesNotFilter(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.SummerExcluded = "Esposito"
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{7, 8}
	cfg.Rules = allRules(domain.RuleModeOff)

	assignments, _ := run(t, cfg, 11)

	for _, a := range assignments {
		assert.Contains(t, crewNames(a), "Esposito")
	}
}

// Regola estiva hard: a luglio e agosto il vigile escluso non esce mai.
func TestScheduleSummerExclusionHardFilters(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Colombo"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci", "Moretti"}
	cfg.SummerExcluded = "Esposito"
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{7}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSummerExclusion] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, _ := run(t, cfg, 11)

	for _, a := range assignments {
		assert.NotContains(t, crewNames(a), "Esposito")
	}
}

// Rotazione dedicata: se il sabato guida l'autista collegato, il venerdì
// della stessa settimana l'autista a rotazione è escluso dalla guida.
func TestScheduleRotationExcludesFridayAfterLinkedSaturday(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Bianchi", "Ferrari"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Bianchi"
	cfg.LinkedDriver = "Ferrari"
	cfg.ActiveWeekdays = []int{4, 5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 5)

	weeksWithSaturday := make(map[scheduler.WeekKey]bool)
	for _, a := range assignments {
		if a.Date.Weekday() == time.Saturday {
			require.NotNil(t, a.Driver)
			// Bianchi guida solo il venerdì.
			assert.Equal(t, "Ferrari", *a.Driver)
			year, week := a.Date.ISOWeek()
			weeksWithSaturday[scheduler.WeekKey{Year: year, Week: week}] = true
		}
	}
	pairedFridays := 0
	for _, a := range assignments {
		year, week := a.Date.ISOWeek()
		if a.Date.Weekday() == time.Friday && weeksWithSaturday[scheduler.WeekKey{Year: year, Week: week}] {
			pairedFridays++
			require.NotNil(t, a.CreditedDriver)
			assert.NotEqual(t, "Bianchi", *a.CreditedDriver)
		}
	}
	require.Positive(t, pairedFridays)
	assert.Len(t, logContaining(log, "sabato guida Ferrari"), pairedFridays)
}

// Venerdì speciale: quando l'autista a rotazione è un vigile SENIOR, la
// squadra del venerdì guadagna il posto aggiuntivo per lui.
func TestScheduleRotationSeniorBonusSlot(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Ferrari"}
	cfg.Crew = []string{"Bianchi", "Esposito", "Fontana", "Greco"}
	cfg.Grades = map[string]domain.Grade{"Bianchi": domain.GradeSenior}
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Bianchi"
	cfg.MinSeniors = 0
	cfg.ActiveWeekdays = []int{4}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 9)

	for _, a := range assignments {
		assert.Contains(t, crewNames(a), "Bianchi")
	}
	assert.NotEmpty(t, logContaining(log, "Venerdì speciale"))
}

// Sostituzione del nome visualizzato: il sabato guidato dall'autista
// collegato espone il nome dell'autista a rotazione, ma il conteggio resta
// attribuito a chi guida davvero.
func TestScheduleRotationDisplaySubstitution(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Ferrari"}
	cfg.Crew = []string{"Bianchi", "Esposito", "Fontana", "Greco", "Ricci"}
	cfg.Grades = map[string]domain.Grade{"Bianchi": domain.GradeSenior}
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Bianchi"
	cfg.LinkedDriver = "Ferrari"
	cfg.ActiveWeekdays = []int{5}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 2)

	for _, a := range assignments {
		require.NotNil(t, a.Driver)
		require.NotNil(t, a.CreditedDriver)
		assert.Equal(t, "Bianchi", *a.Driver)
		assert.Equal(t, "Ferrari", *a.CreditedDriver)
	}
	assert.NotEmpty(t, logContaining(log, "conteggio attribuito a Ferrari"))
}

// Quando il vincolo di rotazione lascia il turno scoperto, il giorno viene
// ricomposto una sola volta senza il vincolo.
func TestScheduleRotationRetryWithoutRule(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Ferrari"}
	cfg.Crew = []string{"Bianchi", "Esposito", "Fontana", "Greco"}
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Bianchi"
	cfg.ActiveWeekdays = []int{4}
	cfg.ActiveMonths = []int{1}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 4)

	for _, a := range assignments {
		assert.False(t, a.Incomplete(), "turno scoperto il %s", a.Date.Format("2006-01-02"))
		assert.Contains(t, crewNames(a), "Bianchi")
	}
	assert.NotEmpty(t, logContaining(log, "Deroga rotazione dedicata"))
}

// Stessa configurazione e stesso seed producono esattamente gli stessi turni
// e lo stesso registro.
func TestScheduleDeterministicWithSameSeed(t *testing.T) {
	build := func() *domain.GenerationConfig {
		cfg := newConfig(2025)
		cfg.Drivers = []string{"Bianchi", "Colombo", "Ferrari", "Rossi"}
		cfg.Crew = []string{"Barbieri", "Esposito", "Fontana", "Greco", "Lombardi", "Moretti", "Ricci", "Romano"}
		cfg.Grades = map[string]domain.Grade{"Barbieri": domain.GradeSenior, "Greco": domain.GradeSenior}
		cfg.WeeklyCaps = map[string]int{"Esposito": 1, "Rossi": 2}
		cfg.ForbiddenPairs = []domain.ForbiddenPair{
			{First: "Esposito", Second: "Fontana", Hard: true},
			{First: "Ricci", Second: "Romano", Hard: false},
		}
		cfg.PreferredPairs = []domain.PreferredPair{{Driver: "Rossi", CrewMember: "Moretti", Hard: false}}
		cfg.SummerExcluded = "Lombardi"
		cfg.MinSeniors = 1
		cfg.Vacations = map[string][]domain.Vacation{
			"Greco": {{Start: date(2025, 3, 1), End: date(2025, 3, 31)}},
		}
		cfg.Rules = allRules(domain.RuleModeSoft)
		return cfg
	}

	first, firstLog := run(t, build(), 42)
	second, secondLog := run(t, build(), 42)

	require.Equal(t, first, second)
	require.Equal(t, renderLog(firstLog), renderLog(secondLog))
}

// Proprietà trasversali su un'esecuzione annuale completa: quattro posti
// vigile per data, nessun nome ripetuto fra autista e squadra, limite
// settimanale hard mai superato.
func TestScheduleInvariantsFullYear(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Bianchi", "Colombo", "Ferrari", "Rossi"}
	cfg.Crew = []string{"Barbieri", "Esposito", "Fontana", "Greco", "Lombardi", "Moretti", "Ricci", "Romano"}
	cfg.Grades = map[string]domain.Grade{"Barbieri": domain.GradeSenior, "Greco": domain.GradeSenior}
	cfg.WeeklyCaps = map[string]int{"Esposito": 1}
	cfg.MinSeniors = 1
	cfg.Rules = allRules(domain.RuleModeHard)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeOff}

	assignments, _ := run(t, cfg, 77)

	weekCount := make(map[scheduler.WeekKey]map[string]int)
	for _, a := range assignments {
		assert.Len(t, a.Crew, domain.CrewSize)

		seen := make(map[string]bool)
		if a.CreditedDriver != nil {
			seen[*a.CreditedDriver] = true
		}
		for _, name := range crewNames(a) {
			assert.False(t, seen[name], "%s compare due volte il %s", name, a.Date.Format("2006-01-02"))
			seen[name] = true
		}

		year, week := a.Date.ISOWeek()
		key := scheduler.WeekKey{Year: year, Week: week}
		if weekCount[key] == nil {
			weekCount[key] = make(map[string]int)
		}
		for name := range seen {
			weekCount[key][name]++
		}
	}

	for key, counts := range weekCount {
		assert.LessOrEqual(t, counts["Esposito"], 1, "limite superato nella settimana %v", key)
	}
}

// Il venerdì dipende dal sabato: all'interno della settimana le date devono
// essere risolte nell'ordine sabato, venerdì, domenica, altri giorni.
func TestScheduleWeekResolutionOrder(t *testing.T) {
	cfg := newConfig(2025)
	cfg.Drivers = []string{"Bianchi", "Ferrari"}
	cfg.Crew = []string{"Esposito", "Fontana", "Greco", "Ricci"}
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Bianchi"
	cfg.LinkedDriver = "Ferrari"
	cfg.ActiveWeekdays = []int{4, 5, 6}
	cfg.ActiveMonths = []int{2}
	cfg.Rules = allRules(domain.RuleModeOff)
	cfg.Rules[domain.RuleSpecialRotation] = domain.RuleConfig{Mode: domain.RuleModeHard}

	assignments, log := run(t, cfg, 6)

	// Con due soli autisti e la rotazione attiva, Ferrari guida ogni sabato e
	// ogni venerdì con un sabato nella stessa settimana registra l'esclusione:
	// questo accade solo se il sabato è già deciso quando si risolve il venerdì.
	weeksWithSaturday := make(map[scheduler.WeekKey]bool)
	for _, a := range assignments {
		if a.Date.Weekday() == time.Saturday {
			year, week := a.Date.ISOWeek()
			weeksWithSaturday[scheduler.WeekKey{Year: year, Week: week}] = true
		}
	}
	pairedFridays := 0
	for _, a := range assignments {
		year, week := a.Date.ISOWeek()
		if a.Date.Weekday() == time.Friday && weeksWithSaturday[scheduler.WeekKey{Year: year, Week: week}] {
			pairedFridays++
		}
	}
	require.Positive(t, pairedFridays)
	assert.Len(t, logContaining(log, "quindi venerdì escludo Bianchi"), pairedFridays)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func renderLog(log []domain.LogEntry) []string {
	lines := make([]string, len(log))
	for i := range log {
		lines[i] = log[i].Line()
	}
	return lines
}
