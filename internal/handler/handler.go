package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/it"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	it_translations "github.com/go-playground/validator/v10/translations/it"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/vvf-mortara/turni-manager/backend/internal/config"
	"github.com/vvf-mortara/turni-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	it := it.New()
	uni := ut.New(it, it)
	trans, _ := uni.GetTranslator("it")
	if err := it_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Autenticazione
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Tutte le rotte seguenti richiedono il login
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/people", func(r chi.Router) {
			r.With(h.requireAdmin).Post("/", h.CreatePerson)
			r.Get("/", h.GetAllPeople) // tutto il distaccamento vede l'anagrafica
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.personInfo)
				r.Get("/", h.GetPerson)
				r.With(h.preventOperateInitialAdmin).With(h.requireAdmin).Patch("/", h.UpdatePerson)
				r.With(h.preventOperateInitialAdmin).With(h.requireAdmin).Delete("/", h.DeletePerson)
				r.With(h.requireAdmin).Patch("/password", h.UpdatePersonPassword)
				r.Get("/vacations", h.GetPersonVacations)
			})
		})

		r.Route("/vacations", func(r chi.Router) {
			r.Get("/", h.GetAllVacations)
			r.With(h.requireAdmin).Post("/", h.CreateVacation)
			r.With(h.requireAdmin).Delete("/{id}", h.DeleteVacation)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/definitions", h.GetRuleDefinitions)
			r.Get("/", h.GetGenerationRules)
			r.With(h.requireAdmin).Patch("/{key}", h.UpdateGenerationRule)
		})

		r.Route("/pairs", func(r chi.Router) {
			r.Route("/forbidden", func(r chi.Router) {
				r.Get("/", h.GetAllForbiddenPairs)
				r.With(h.requireAdmin).Post("/", h.CreateForbiddenPair)
				r.With(h.requireAdmin).Delete("/{id}", h.DeleteForbiddenPair)
			})
			r.Route("/preferred", func(r chi.Router) {
				r.Get("/", h.GetAllPreferredPairs)
				r.With(h.requireAdmin).Post("/", h.CreatePreferredPair)
				r.With(h.requireAdmin).Delete("/{id}", h.DeletePreferredPair)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetProgramSettings)
			r.With(h.requireAdmin).Patch("/", h.UpdateProgramSettings)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/years", h.GetGenerationYears)
			r.Route("/{year}", func(r chi.Router) {
				r.With(h.requireAdmin).Post("/generate", h.GenerateSchedule)
				r.Group(func(r chi.Router) {
					r.Use(h.generationRun)
					r.Get("/", h.GetSchedule)
					r.Get("/calendar.ics", h.DownloadICS)
					r.Get("/shifts.csv", h.DownloadShiftsCSV)
					r.Get("/report.csv", h.DownloadLoadReport)
					r.Get("/log.txt", h.DownloadLog)
				})
			})
		})
	})
}
