package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
)

func (h *Handler) GetRuleDefinitions(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "definizioni delle regole recuperate", domain.RuleDefinitions)
}

func (h *Handler) GetGenerationRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repository.GetGenerationRules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "regole di generazione recuperate", rules)
}

func (h *Handler) UpdateGenerationRule(w http.ResponseWriter, r *http.Request) {
	key := domain.RuleKey(chi.URLParam(r, "key"))
	def, ok := domain.RuleDefinitionByKey(key)
	if !ok {
		h.errorResponse(w, r, "regola sconosciuta")
		return
	}

	var req struct {
		Mode  string `json:"mode" validate:"required,oneof=hard soft off"`
		Value *int   `json:"value"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	cfg := domain.RuleConfig{Mode: domain.ParseRuleMode(req.Mode)}
	if def.HasValue {
		value := def.DefaultValue
		if req.Value != nil {
			value = *req.Value
		}
		if value < def.MinValue || value > def.MaxValue {
			h.errorResponse(w, r, "valore della regola fuori intervallo")
			return
		}
		cfg.Value = &value
	}

	if err := h.repository.UpsertGenerationRule(key, cfg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "regola aggiornata", cfg)
}

func (h *Handler) GetAllForbiddenPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.repository.GetAllForbiddenPairs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coppie vietate recuperate", pairs)
}

func (h *Handler) CreateForbiddenPair(w http.ResponseWriter, r *http.Request) {
	var req struct {
		First  string `json:"first" validate:"required"`
		Second string `json:"second" validate:"required"`
		Hard   bool   `json:"hard"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.First == req.Second {
		h.errorResponse(w, r, "la coppia deve citare due persone distinte")
		return
	}

	pair := &domain.ForbiddenPair{
		First:  req.First,
		Second: req.Second,
		Hard:   req.Hard,
	}

	if err := h.repository.CreateForbiddenPair(pair); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "forbidden_pairs_names_key":
			h.badRequest(w, r, errors.New("coppia già presente"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "coppia vietata creata", pair)
}

func (h *Handler) DeleteForbiddenPair(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeleteForbiddenPair(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coppia vietata eliminata", nil)
}

func (h *Handler) GetAllPreferredPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.repository.GetAllPreferredPairs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "abbinamenti autista-vigile recuperati", pairs)
}

func (h *Handler) CreatePreferredPair(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Driver     string `json:"driver" validate:"required"`
		CrewMember string `json:"crewMember" validate:"required"`
		Hard       bool   `json:"hard"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pair := &domain.PreferredPair{
		Driver:     req.Driver,
		CrewMember: req.CrewMember,
		Hard:       req.Hard,
	}

	if err := h.repository.CreatePreferredPair(pair); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "preferred_pairs_names_key":
			h.badRequest(w, r, errors.New("abbinamento già presente"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "abbinamento autista-vigile creato", pair)
}

func (h *Handler) DeletePreferredPair(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.repository.DeletePreferredPair(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "abbinamento autista-vigile eliminato", nil)
}

func (h *Handler) GetProgramSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetProgramSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "impostazioni recuperate", settings)
}

func (h *Handler) UpdateProgramSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetProgramSettings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		RotationDriver  *string `json:"rotationDriver"`
		LinkedDriver    *string `json:"linkedDriver"`
		RotationEnabled *bool   `json:"rotationEnabled"`
		SummerExcluded  *string `json:"summerExcluded"`
		MinSeniors      *int    `json:"minSeniors" validate:"omitempty,min=0,max=4"`
		ActiveWeekdays  *[]int  `json:"activeWeekdays" validate:"omitempty,dive,min=0,max=6"`
		ActiveMonths    *[]int  `json:"activeMonths" validate:"omitempty,dive,min=1,max=12"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.RotationDriver != nil {
		settings.RotationDriver = *req.RotationDriver
	}
	if req.LinkedDriver != nil {
		settings.LinkedDriver = *req.LinkedDriver
	}
	if req.RotationEnabled != nil {
		settings.RotationEnabled = *req.RotationEnabled
	}
	if req.SummerExcluded != nil {
		settings.SummerExcluded = *req.SummerExcluded
	}
	if req.MinSeniors != nil {
		settings.MinSeniors = *req.MinSeniors
	}
	if req.ActiveWeekdays != nil {
		settings.ActiveWeekdays = *req.ActiveWeekdays
	}
	if req.ActiveMonths != nil {
		settings.ActiveMonths = *req.ActiveMonths
	}

	if err := h.repository.UpdateProgramSettings(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "impostazioni aggiornate", settings)
}
