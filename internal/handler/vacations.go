package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (h *Handler) GetAllVacations(w http.ResponseWriter, r *http.Request) {
	vacations, err := h.repository.GetAllVacations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ferie recuperate", vacations)
}

func (h *Handler) GetPersonVacations(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonInfoCtx).(*domain.Person)

	vacations, err := h.repository.GetVacationsByPersonID(person.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ferie recuperate", vacations)
}

func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID int64  `json:"personID" validate:"required"`
		Start    string `json:"start" validate:"required"`
		End      string `json:"end" validate:"required"`
		Note     string `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		h.errorResponse(w, r, "data di inizio non valida")
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		h.errorResponse(w, r, "data di fine non valida")
		return
	}
	if end.Before(start) {
		h.errorResponse(w, r, "le ferie terminano prima di iniziare")
		return
	}

	// Verifica che la persona esista
	if _, err := h.repository.GetPersonByID(req.PersonID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "persona non trovata")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	vacation := &domain.Vacation{
		PersonID: req.PersonID,
		Start:    start,
		End:      end,
		Note:     req.Note,
	}

	if err := h.repository.CreateVacation(vacation); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "vacations_person_id_fkey":
			h.errorResponse(w, r, "persona non trovata")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "ferie registrate", vacation)
}

func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteVacation(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ferie eliminate", nil)
}
