package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/export"
	"github.com/vvf-mortara/turni-manager/backend/internal/scheduler"
	"github.com/vvf-mortara/turni-manager/backend/internal/utils"
)

func (h *Handler) GetGenerationYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.repository.GetAllGenerationRunYears()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "anni generati recuperati", years)
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.errorResponse(w, r, "anno non valido")
		return
	}

	// Una sola generazione in corso per anno.
	lockKey := fmt.Sprintf("generation_lock_%d", year)
	locked, err := h.redisClient.SetNX(r.Context(), lockKey, 1, time.Duration(h.config.Generation.Timeout)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "una generazione per questo anno è già in corso")
		return
	}
	defer h.redisClient.Del(context.Background(), lockKey)

	var req struct {
		Seed *int64 `json:"seed"`
	}
	// Il corpo è facoltativo: senza seed la generazione non è riproducibile.
	_ = h.readJSON(r, &req)

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	cfg, err := h.repository.BuildGenerationConfig(year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateGenerationConfig(cfg); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// La ricerca combinatoria può superare il write timeout del server
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Now().Add(time.Duration(h.config.Generation.Timeout) * time.Second))

	s := scheduler.New(cfg, rand.New(rand.NewSource(seed)))
	assignments, log := s.Schedule()

	run := &domain.GenerationRun{
		Year:        year,
		Seed:        seed,
		Assignments: assignments,
		Log:         log,
	}

	if err := h.repository.InsertGenerationRun(run); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.notifyScheduleReady(r, run)

	h.successResponse(w, r, "turni generati", run)
}

// notifyScheduleReady avvisa via email l'amministratore che ha lanciato la
// generazione. Un errore qui non invalida la generazione: viene solo loggato.
func (h *Handler) notifyScheduleReady(r *http.Request, run *domain.GenerationRun) {
	subString, ok := r.Context().Value(SubCtxKey).(string)
	if !ok {
		return
	}
	sub, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		return
	}

	person, err := h.repository.GetPersonByID(sub)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	incomplete := 0
	for i := range run.Assignments {
		if run.Assignments[i].Incomplete() {
			incomplete++
		}
	}

	mailMessage := domain.MailMessage{
		Type: "schedule_ready",
		To:   person.Email,
		Data: domain.ScheduleReadyMailData{
			FullName:       person.FullName,
			Year:           run.Year,
			TotalDays:      len(run.Assignments),
			IncompleteDays: incomplete,
			LogLines:       len(run.Log),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.logInternalServerError(r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*domain.GenerationRun)
	h.successResponse(w, r, "turni recuperati", run)
}

func (h *Handler) DownloadICS(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*domain.GenerationRun)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=turni_%d.ics", run.Year))

	if err := export.WriteICS(w, run.Assignments, run.Year); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) DownloadShiftsCSV(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*domain.GenerationRun)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=turni_%d.csv", run.Year))

	if err := export.WriteShiftsCSV(w, run.Assignments); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) DownloadLoadReport(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*domain.GenerationRun)

	cfg, err := h.repository.BuildGenerationConfig(run.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// Ricostruisce i contatori dall'esito salvato: al conteggio autisti va
	// l'autista accreditato, non quello visualizzato.
	driverLoads := scheduler.NewLoadTracker()
	crewLoads := scheduler.NewLoadTracker()
	for i := range run.Assignments {
		assignment := &run.Assignments[i]
		if assignment.CreditedDriver != nil {
			driverLoads.Record(*assignment.CreditedDriver, assignment.Date)
		}
		for _, member := range assignment.Crew {
			if member != nil {
				crewLoads.Record(*member, assignment.Date)
			}
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%d.csv", run.Year))

	if err := export.WriteLoadReportCSV(w, cfg.Drivers, cfg.Crew, driverLoads, crewLoads, cfg.ActiveMonths); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) DownloadLog(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(RunCtx).(*domain.GenerationRun)

	cfg, err := h.repository.BuildGenerationConfig(run.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	cfg.Year = run.Year

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=log_%d.txt", run.Year))

	if err := export.WriteLog(w, cfg, run.Log); err != nil {
		h.logInternalServerError(r, err)
	}
}
