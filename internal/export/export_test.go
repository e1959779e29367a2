package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/export"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
)

func name(s string) *string { return &s }

func sampleAssignments() []domain.Assignment {
	saturday := time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	return []domain.Assignment{
		{
			Date:           saturday,
			Driver:         name("Rossi"),
			CreditedDriver: name("Rossi"),
			Crew:           [domain.CrewSize]*string{name("Bianchi"), name("Verdi"), name("Neri"), name("Gallo")},
		},
		{
			Date:           sunday,
			Driver:         name("Ferrari"),
			CreditedDriver: name("Ferrari"),
			Crew:           [domain.CrewSize]*string{name("Bianchi"), name("Verdi"), nil, nil},
		},
	}
}

func TestWriteICSEmitsOneEventPerPerson(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteICS(&buf, sampleAssignments(), 2025))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\n"))
	assert.Contains(t, out, "X-WR-CALNAME:Turni VVF 2025")
	assert.Contains(t, out, "TZID:Europe/Rome")
	// 2 autisti + 6 posti vigile coperti.
	assert.Equal(t, 8, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 8, strings.Count(out, "END:VEVENT"))

	// Autista alle 11, vigili dalle 12 scaglionati per posto.
	assert.Contains(t, out, "DTSTART;TZID=Europe/Rome:20250104T110000")
	assert.Contains(t, out, "DTSTART;TZID=Europe/Rome:20250104T120000")
	assert.Contains(t, out, "DTSTART;TZID=Europe/Rome:20250104T150000")
	assert.Contains(t, out, "DTEND;TZID=Europe/Rome:20250104T160000")
	assert.NotContains(t, out, "DTSTART;TZID=Europe/Rome:20250105T140000")
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\n"))
}

func TestWriteShiftsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteShiftsCSV(&buf, sampleAssignments()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Mese", "Data", "Giorno", "Autista", "Vigile1", "Vigile2", "Vigile3", "Vigile4"}, records[0])
	assert.Equal(t, []string{"Gennaio", "2025-01-04", "Sab", "Rossi", "Bianchi", "Verdi", "Neri", "Gallo"}, records[1])
	assert.Equal(t, []string{"Gennaio", "2025-01-05", "Dom", "Ferrari", "Bianchi", "Verdi", "", ""}, records[2])
}

func TestWriteLoadReportCSV(t *testing.T) {
	loads := scheduler.NewLoadTracker()
	saturday := time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	loads.Record("Bianchi", saturday)
	loads.Record("Bianchi", sunday)
	loads.Record("Verdi", sunday)

	driverLoads := scheduler.NewLoadTracker()
	driverLoads.Record("Rossi", saturday)

	var buf bytes.Buffer
	require.NoError(t, export.WriteLoadReportCSV(&buf, []string{"Rossi"}, []string{"Bianchi", "Verdi"}, driverLoads, loads, []int{1}))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	// Sezione vigili, intestazione, due righe, poi sezione autisti,
	// intestazione, una riga.
	require.Len(t, records, 7)
	assert.Equal(t, []string{"Vigili"}, records[0])

	header := records[1]
	assert.Equal(t, "Nome", header[0])
	assert.Equal(t, "Turni totali", header[1])
	assert.Equal(t, "Gennaio", header[2])
	assert.Equal(t, "Gennaio Lun", header[3])
	assert.Equal(t, "Domenica", header[len(header)-1])
	// Nome + totale + (1 mese * 8 colonne) + 7 giorni annuali.
	assert.Len(t, header, 17)

	bianchi := records[2]
	assert.Equal(t, "Bianchi", bianchi[0])
	assert.Equal(t, "2", bianchi[1]) // turni totali
	assert.Equal(t, "2", bianchi[2]) // totale di gennaio
	assert.Equal(t, "1", bianchi[8]) // Gennaio Sab
	assert.Equal(t, "1", bianchi[9]) // Gennaio Dom

	assert.Equal(t, []string{"Autisti"}, records[4])
	rossi := records[6]
	assert.Equal(t, "Rossi", rossi[0])
	assert.Equal(t, "1", rossi[1])
}

func TestWriteLog(t *testing.T) {
	cfg := &domain.GenerationConfig{
		Year:    2025,
		Drivers: []string{"Rossi", "Ferrari"},
		Crew:    []string{"Bianchi", "Verdi", "Neri"},
		Grades: map[string]domain.Grade{
			"Bianchi": domain.GradeSenior,
			"Verdi":   domain.GradeJunior,
			"Neri":    domain.GradeJunior,
		},
		ActiveWeekdays: []int{4, 5, 6},
		ActiveMonths:   []int{1, 2},
	}
	entries := []domain.LogEntry{
		{
			Date:     time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC),
			Category: domain.LogCategoryCrew,
			Message:  "Deroga esperienza: squadra con 0 SENIOR (minimo 1).",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteLog(&buf, cfg, entries))
	out := buf.String()

	assert.Contains(t, out, "VVF Weekend Scheduler – anno 2025")
	assert.Contains(t, out, "Autisti: 2 (Rossi, Ferrari)")
	assert.Contains(t, out, "Vigili : 3 (Bianchi, Verdi, Neri)")
	assert.Contains(t, out, "Vigili senior configurati: 1")
	assert.Contains(t, out, "Giorni pianificati: 3 (Ven, Sab, Dom)")
	assert.Contains(t, out, "Mesi pianificati: Gennaio, Febbraio")
	assert.Contains(t, out, "Registro decisioni/deroghe:")
	assert.Contains(t, out, "[2025-01-04 (Sat)] [CREW] Deroga esperienza: squadra con 0 SENIOR (minimo 1).")
}

func TestWriteLogAllMonthsOmitsMonthLine(t *testing.T) {
	cfg := &domain.GenerationConfig{
		Year:    2025,
		Drivers: []string{"Rossi"},
		Crew:    []string{"Bianchi"},
		Grades:  map[string]domain.Grade{"Bianchi": domain.GradeSenior},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteLog(&buf, cfg, nil))
	out := buf.String()

	assert.NotContains(t, out, "Mesi pianificati")
	// Nessun giorno configurato: vale il default venerdì-domenica.
	assert.Contains(t, out, "Giorni pianificati: 3 (Ven, Sab, Dom)")
}
