package scheduler

import "time"

// WeekKey identifica una settimana ISO (lunedì-domenica) ed è la chiave su
// cui si applica il limite settimanale di turni.
type WeekKey struct {
	Year int
	Week int
}

func weekKeyOf(day time.Time) WeekKey {
	year, week := day.ISOWeek()
	return WeekKey{Year: year, Week: week}
}

type personLoad struct {
	annual          int
	perMonth        [13]int // indice 1..12
	perMonthWeekday [13][7]int
	perWeekday      [7]int
	perWeek         map[WeekKey]int
	lastWeekday     int // -1 finché la persona non ha turni
}

// LoadTracker conta i turni assegnati a ogni persona su cinque granularità
// (annuale, per mese, per mese e giorno della settimana, per giorno della
// settimana, per settimana ISO) più l'ultimo giorno della settimana servito.
// Viene aggiornato solo quando un'assegnazione è confermata; i selettori lo
// leggono per ordinare i candidati per equità.
type LoadTracker struct {
	loads map[string]*personLoad
}

func NewLoadTracker() *LoadTracker {
	return &LoadTracker{loads: make(map[string]*personLoad)}
}

// Ensure inizializza i contatori della persona se non esistono. Idempotente.
func (t *LoadTracker) Ensure(name string) {
	t.load(name)
}

func (t *LoadTracker) load(name string) *personLoad {
	if l, ok := t.loads[name]; ok {
		return l
	}
	l := &personLoad{
		perWeek:     make(map[WeekKey]int),
		lastWeekday: -1,
	}
	t.loads[name] = l
	return l
}

// Record incrementa tutte le granularità per un turno nella data indicata.
func (t *LoadTracker) Record(name string, day time.Time) {
	l := t.load(name)
	month := int(day.Month())
	dow := weekdayIndex(day)

	l.annual++
	l.perMonth[month]++
	l.perMonthWeekday[month][dow]++
	l.perWeekday[dow]++
	l.perWeek[weekKeyOf(day)]++
	l.lastWeekday = dow
}

func (t *LoadTracker) Annual(name string) int {
	return t.load(name).annual
}

func (t *LoadTracker) Month(name string, month int) int {
	return t.load(name).perMonth[month]
}

func (t *LoadTracker) MonthWeekday(name string, month, weekday int) int {
	return t.load(name).perMonthWeekday[month][weekday]
}

func (t *LoadTracker) Weekday(name string, weekday int) int {
	return t.load(name).perWeekday[weekday]
}

func (t *LoadTracker) Week(name string, week WeekKey) int {
	return t.load(name).perWeek[week]
}

// LastWeekday ritorna l'ultimo giorno della settimana in cui la persona ha
// servito; ok è false se la persona non ha ancora turni.
func (t *LoadTracker) LastWeekday(name string) (int, bool) {
	l := t.load(name)
	if l.lastWeekday < 0 {
		return 0, false
	}
	return l.lastWeekday, true
}
