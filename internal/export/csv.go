package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
)

// WriteShiftsCSV scrive la tabella turni dell'anno, una riga per data in
// ordine cronologico. La colonna Mese rende il file leggibile anche filtrato
// in un foglio di calcolo.
func WriteShiftsCSV(w io.Writer, assignments []domain.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Mese", "Data", "Giorno", "Autista", "Vigile1", "Vigile2", "Vigile3", "Vigile4"}); err != nil {
		return fmt.Errorf("scrittura intestazione turni: %w", err)
	}

	for _, assignment := range assignments {
		row := []string{
			monthNames[assignment.Date.Month()],
			assignment.Date.Format("2006-01-02"),
			weekdayNames[weekdayIndex(int(assignment.Date.Weekday()))],
			nameOrEmpty(assignment.Driver),
		}
		for _, member := range assignment.Crew {
			row = append(row, nameOrEmpty(member))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("scrittura riga turni: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteLoadReportCSV scrive il report dei carichi per persona: prima la
// sezione vigili, poi la sezione autisti, come nel report storico. Per ogni
// mese rilevante riporta il totale mensile e la distribuzione per giorno
// della settimana, più i totali annuali per giorno.
func WriteLoadReportCSV(w io.Writer, drivers, crew []string, driverLoads, crewLoads *scheduler.LoadTracker, months []int) error {
	cw := csv.NewWriter(w)
	relevant := reportMonths(months)

	header := []string{"Nome", "Turni totali"}
	for _, month := range relevant {
		header = append(header, monthNames[month])
		for dow := 0; dow < 7; dow++ {
			header = append(header, monthNames[month]+" "+weekdayNames[dow])
		}
	}
	header = append(header, weekdayFullNames[:]...)

	writeSection := func(title string, names []string, loads *scheduler.LoadTracker) error {
		if err := cw.Write([]string{title}); err != nil {
			return err
		}
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, name := range names {
			row := []string{name, strconv.Itoa(loads.Annual(name))}
			for _, month := range relevant {
				row = append(row, strconv.Itoa(loads.Month(name, month)))
				for dow := 0; dow < 7; dow++ {
					row = append(row, strconv.Itoa(loads.MonthWeekday(name, month, dow)))
				}
			}
			for dow := 0; dow < 7; dow++ {
				row = append(row, strconv.Itoa(loads.Weekday(name, dow)))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeSection("Vigili", crew, crewLoads); err != nil {
		return fmt.Errorf("scrittura report vigili: %w", err)
	}
	if err := writeSection("Autisti", drivers, driverLoads); err != nil {
		return fmt.Errorf("scrittura report autisti: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func reportMonths(months []int) []int {
	seen := make(map[int]bool, len(months))
	var relevant []int
	for _, month := range months {
		if month >= 1 && month <= 12 && !seen[month] {
			seen[month] = true
			relevant = append(relevant, month)
		}
	}
	if len(relevant) == 0 {
		for month := 1; month <= 12; month++ {
			relevant = append(relevant, month)
		}
		return relevant
	}
	sort.Ints(relevant)
	return relevant
}

func nameOrEmpty(name *string) string {
	if name == nil {
		return ""
	}
	return *name
}
