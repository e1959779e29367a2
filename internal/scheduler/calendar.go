package scheduler

import (
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// I mesi in cui vale l'esclusione estiva dedicata: luglio e agosto.
var summerMonths = map[time.Month]bool{
	time.July:   true,
	time.August: true,
}

// weekdayIndex converte time.Weekday nell'indice 0=lunedì..6=domenica usato
// dalla configurazione e dai contatori.
func weekdayIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

// ActiveDates espande un anno nella lista cronologica delle date da
// pianificare: tutte le date il cui giorno della settimana e il cui mese
// appartengono agli insiemi attivi. Un insieme di giorni vuoto ricade sul
// default storico (venerdì, sabato e domenica); un insieme di mesi vuoto
// equivale a tutti i mesi.
func ActiveDates(year int, weekdays []int, months []int) []time.Time {
	activeDays := make(map[int]bool)
	for _, d := range weekdays {
		if d >= 0 && d <= 6 {
			activeDays[d] = true
		}
	}
	if len(activeDays) == 0 {
		for _, d := range domain.DefaultActiveWeekdays {
			activeDays[d] = true
		}
	}

	activeMonths := make(map[int]bool)
	for _, m := range months {
		if m >= 1 && m <= 12 {
			activeMonths[m] = true
		}
	}
	if len(activeMonths) == 0 {
		for m := 1; m <= 12; m++ {
			activeMonths[m] = true
		}
	}

	var dates []time.Time
	for day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == year; day = day.AddDate(0, 0, 1) {
		if activeDays[weekdayIndex(day)] && activeMonths[int(day.Month())] {
			dates = append(dates, day)
		}
	}
	return dates
}
