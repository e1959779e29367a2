package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

// WriteLog scrive il registro decisioni in testo semplice: un'intestazione
// con il riepilogo della configurazione, poi una riga per ogni deroga o
// turno scoperto.
func WriteLog(w io.Writer, cfg *domain.GenerationConfig, entries []domain.LogEntry) error {
	seniors := 0
	for _, name := range cfg.Crew {
		if cfg.Grades[name] == domain.GradeSenior {
			seniors++
		}
	}

	weekdays := activeWeekdays(cfg.ActiveWeekdays)
	dayLabels := make([]string, 0, len(weekdays))
	for _, dow := range weekdays {
		dayLabels = append(dayLabels, weekdayNames[dow])
	}

	lines := []string{
		fmt.Sprintf("VVF Weekend Scheduler – anno %d", cfg.Year),
		fmt.Sprintf("Autisti: %d (%s)", len(cfg.Drivers), strings.Join(cfg.Drivers, ", ")),
		fmt.Sprintf("Vigili : %d (%s)", len(cfg.Crew), strings.Join(cfg.Crew, ", ")),
		fmt.Sprintf("Vigili senior configurati: %d", seniors),
		fmt.Sprintf("Giorni pianificati: %d (%s)", len(weekdays), strings.Join(dayLabels, ", ")),
	}

	if months := activeMonths(cfg.ActiveMonths); len(months) > 0 && len(months) < 12 {
		labels := make([]string, 0, len(months))
		for _, month := range months {
			labels = append(labels, monthNames[month])
		}
		lines = append(lines, fmt.Sprintf("Mesi pianificati: %s", strings.Join(labels, ", ")))
	}

	lines = append(lines, "", "Registro decisioni/deroghe:")
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func activeWeekdays(weekdays []int) []int {
	seen := make(map[int]bool, len(weekdays))
	var valid []int
	for _, dow := range weekdays {
		if dow >= 0 && dow <= 6 && !seen[dow] {
			seen[dow] = true
			valid = append(valid, dow)
		}
	}
	if len(valid) == 0 {
		valid = append(valid, domain.DefaultActiveWeekdays...)
	}
	sort.Ints(valid)
	return valid
}

func activeMonths(months []int) []int {
	seen := make(map[int]bool, len(months))
	var valid []int
	for _, month := range months {
		if month >= 1 && month <= 12 && !seen[month] {
			seen[month] = true
			valid = append(valid, month)
		}
	}
	sort.Ints(valid)
	return valid
}
