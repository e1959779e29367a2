package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.repository.GetAllPeople()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "anagrafica recuperata", people)
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username" validate:"required"`
		FullName  string `json:"fullName" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role" validate:"required,oneof=AUTISTA VIGILE AUTISTA+VIGILE"`
		Grade     string `json:"grade" validate:"required,oneof=JUNIOR SENIOR"`
		WeeklyCap *int   `json:"weeklyCap" validate:"omitempty,min=0"`
		IsAdmin   bool   `json:"isAdmin"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// Genera una password casuale per il nuovo account
	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	person := &domain.Person{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         domain.Role(req.Role),
		Grade:        domain.Grade(req.Grade),
		WeeklyCap:    domain.DefaultWeeklyCap,
		IsAdmin:      req.IsAdmin,
	}
	if req.WeeklyCap != nil {
		person.WeeklyCap = *req.WeeklyCap
	}

	if err := h.repository.CreatePerson(person); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "people_username_key":
				h.badRequest(w, r, errors.New("username già esistente"))
			case pgErr.ConstraintName == "people_email_key":
				h.badRequest(w, r, errors.New("email già esistente"))
			case pgErr.ConstraintName == "people_full_name_key":
				h.badRequest(w, r, errors.New("nome già presente in anagrafica"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// Prepara l'email di benvenuto con le credenziali
	mailMessage := domain.MailMessage{
		Type: "create_user",
		To:   person.Email,
		Data: domain.CreateUserMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// Pubblica l'email sulla coda
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
			Body:        emailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "persona creata", person)
}

func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonInfoCtx).(*domain.Person)
	h.successResponse(w, r, "persona recuperata", person)
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     *string `json:"email" validate:"omitempty,email"`
		Role      *string `json:"role" validate:"omitempty,oneof=AUTISTA VIGILE AUTISTA+VIGILE"`
		Grade     *string `json:"grade" validate:"omitempty,oneof=JUNIOR SENIOR"`
		WeeklyCap *int    `json:"weeklyCap" validate:"omitempty,min=0"`
		IsAdmin   *bool   `json:"isAdmin"`
		IsActive  *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	person := r.Context().Value(PersonInfoCtx).(*domain.Person)

	if req.Email != nil {
		person.Email = *req.Email
	}
	if req.Role != nil {
		person.Role = domain.Role(*req.Role)
	}
	if req.Grade != nil {
		person.Grade = domain.Grade(*req.Grade)
	}
	if req.WeeklyCap != nil {
		person.WeeklyCap = *req.WeeklyCap
	}
	if req.IsAdmin != nil {
		person.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := h.repository.UpdatePerson(person); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "people_email_key":
				h.badRequest(w, r, errors.New("email già esistente"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "aggiornamento non riuscito, riprovare")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "persona aggiornata", person)
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonInfoCtx).(*domain.Person)

	if err := h.repository.DeletePerson(person.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "persona eliminata", nil)
}

func (h *Handler) UpdatePersonPassword(w http.ResponseWriter, r *http.Request) {
	person := r.Context().Value(PersonInfoCtx).(*domain.Person)

	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	person.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdatePerson(person); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "password modificata", nil)
}
