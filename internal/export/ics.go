package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

const icsTimezoneID = "Europe/Rome"

// Blocco VTIMEZONE per l'ora italiana, incluso nel calendario perché molti
// client non risolvono il TZID da soli.
const icsVTimezone = `BEGIN:VTIMEZONE
TZID:Europe/Rome
X-LIC-LOCATION:Europe/Rome
BEGIN:DAYLIGHT
TZOFFSETFROM:+0100
TZOFFSETTO:+0200
TZNAME:CEST
DTSTART:19700329T020000
RRULE:FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU
END:DAYLIGHT
BEGIN:STANDARD
TZOFFSETFROM:+0200
TZOFFSETTO:+0100
TZNAME:CET
DTSTART:19701025T030000
RRULE:FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU
END:STANDARD
END:VTIMEZONE`

// WriteICS scrive il calendario dell'anno: un evento di un'ora per l'autista
// alle 11:00 e uno per ogni vigile a partire dalle 12:00, scaglionati per
// posto in squadra.
func WriteICS(w io.Writer, assignments []domain.Assignment, year int) error {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("PRODID:-//VVF Scheduler//IT\n")
	b.WriteString("VERSION:2.0\n")
	b.WriteString("CALSCALE:GREGORIAN\n")
	b.WriteString("METHOD:PUBLISH\n")
	fmt.Fprintf(&b, "X-WR-CALNAME:Turni VVF %d\n", year)
	fmt.Fprintf(&b, "X-WR-TIMEZONE:%s\n", icsTimezoneID)
	b.WriteString(icsVTimezone)
	b.WriteString("\n")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, assignment := range assignments {
		if assignment.Driver != nil {
			writeEvent(&b, *assignment.Driver, assignment.Date, 11, stamp)
		}
		for slot, member := range assignment.Crew {
			if member != nil {
				writeEvent(&b, *member, assignment.Date, 12+slot, stamp)
			}
		}
	}

	b.WriteString("END:VCALENDAR\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeEvent(b *strings.Builder, name string, day time.Time, startHour int, stamp string) {
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	b.WriteString("BEGIN:VEVENT\n")
	fmt.Fprintf(b, "UID:%s@vvf-scheduler\n", uuid.NewString())
	fmt.Fprintf(b, "DTSTAMP:%s\n", stamp)
	fmt.Fprintf(b, "DTSTART;TZID=%s:%s\n", icsTimezoneID, start.Format("20060102T150405"))
	fmt.Fprintf(b, "DTEND;TZID=%s:%s\n", icsTimezoneID, end.Format("20060102T150405"))
	fmt.Fprintf(b, "SUMMARY:%s\n", name)
	b.WriteString("END:VEVENT\n")
}
