package scheduler

import (
	"fmt"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (s *Scheduler) logf(day time.Time, category domain.LogCategory, format string, args ...any) {
	s.log = append(s.log, domain.LogEntry{
		Date:     day,
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}
