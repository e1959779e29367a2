package domain

import (
	"fmt"
	"time"
)

// CrewSize è il numero fisso di posti vigile per turno; i posti non coperti
// restano nil.
const CrewSize = 4

// DefaultActiveWeekdays sono i giorni pianificati quando la configurazione
// non ne indica nessuno: venerdì, sabato e domenica (0 = lunedì).
var DefaultActiveWeekdays = []int{4, 5, 6}

// DefaultWeeklyCap è il limite settimanale applicato a chi non ne ha uno
// proprio: un turno per settimana salvo diversa indicazione.
const DefaultWeeklyCap = 1

// GenerationConfig è la configurazione completamente risolta che il motore
// di generazione consuma. Viene assemblata dal repository e validata prima
// di entrare nel motore: il motore la assume strutturalmente valida.
type GenerationConfig struct {
	Year             int
	Drivers          []string
	Crew             []string
	Grades           map[string]Grade
	WeeklyCaps       map[string]int
	DefaultWeeklyCap int
	ForbiddenPairs   []ForbiddenPair
	PreferredPairs   []PreferredPair
	RotationEnabled  bool
	RotationDriver   string
	LinkedDriver     string
	SummerExcluded   string
	MinSeniors       int
	Vacations        map[string][]Vacation
	ActiveWeekdays   []int
	ActiveMonths     []int
	Rules            map[RuleKey]RuleConfig
}

// Assignment è il turno di una singola data. Driver è il nome mostrato sul
// calendario; CreditedDriver è la persona a cui il turno viene conteggiato.
// I due nomi divergono solo quando la rotazione speciale sostituisce il nome
// visualizzato.
type Assignment struct {
	Date           time.Time         `json:"date"`
	Driver         *string           `json:"driver"`
	CreditedDriver *string           `json:"creditedDriver"`
	Crew           [CrewSize]*string `json:"crew"`
}

// Incomplete riporta se il turno ha l'autista o almeno un posto vigile scoperto.
func (a *Assignment) Incomplete() bool {
	if a.Driver == nil {
		return true
	}
	for _, member := range a.Crew {
		if member == nil {
			return true
		}
	}
	return false
}

type LogCategory string

const (
	LogCategoryDriver LogCategory = "DRIVER"
	LogCategoryCrew   LogCategory = "CREW"
)

// LogEntry è una riga del registro decisioni: ogni deroga e ogni turno
// scoperto produce una voce.
type LogEntry struct {
	Date     time.Time   `json:"date"`
	Category LogCategory `json:"category"`
	Message  string      `json:"message"`
}

// Line formatta la voce nel formato storico del registro:
// [YYYY-MM-DD (Giorno)] [CATEGORIA] messaggio.
func (e *LogEntry) Line() string {
	return fmt.Sprintf("[%s (%s)] [%s] %s", e.Date.Format("2006-01-02"), e.Date.Format("Mon"), e.Category, e.Message)
}

// GenerationRun è l'esito persistito di una esecuzione del generatore.
type GenerationRun struct {
	ID          int64        `json:"id"`
	Year        int          `json:"year"`
	Seed        int64        `json:"seed"`
	Assignments []Assignment `json:"assignments"`
	Log         []LogEntry   `json:"log"`
	CreatedAt   time.Time    `json:"createdAt"`
	Version     int32        `json:"-"`
}

// ProgramSettings sono le impostazioni di distaccamento che completano la
// configurazione di generazione oltre al roster e alle coppie.
type ProgramSettings struct {
	RotationDriver  string `json:"rotationDriver"`
	LinkedDriver    string `json:"linkedDriver"`
	RotationEnabled bool   `json:"rotationEnabled"`
	SummerExcluded  string `json:"summerExcluded"`
	MinSeniors      int    `json:"minSeniors"`
	ActiveWeekdays  []int  `json:"activeWeekdays"`
	ActiveMonths    []int  `json:"activeMonths"`
}
