package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/vvf-mortara/turni-manager/backend/internal/config"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/handler"
	"github.com/vvf-mortara/turni-manager/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Configurazione
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossibile caricare la configurazione", "error", err)
		return
	}

	/**********************************************
	 * Connessione al database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("impossibile creare il pool di connessioni", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open crea solo il pool, la connessione avviene al primo uso:
	// serve un ping esplicito
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossibile connettersi al database", "error", err)
		return
	}

	/**********************************************
	 * Repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * Amministratore iniziale e impostazioni di fabbrica
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("impossibile generare l'hash della password dell'amministratore iniziale", "error", err)
		return
	}
	initialAdmin := &domain.Person{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: string(passwordHash),
		FullName:     cfg.InitialAdmin.FullName,
		Email:        cfg.InitialAdmin.Email,
		Role:         domain.RoleAutistaVigile,
		Grade:        domain.GradeSenior,
		WeeklyCap:    domain.DefaultWeeklyCap,
		IsAdmin:      true,
	}
	if err := repo.CreatePerson(initialAdmin); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "people_username_key":
				// L'amministratore iniziale esiste già, nulla da fare
			default:
				logger.Error("impossibile creare l'amministratore iniziale", "error", err)
				return
			}
		default:
			logger.Error("impossibile creare l'amministratore iniziale", "error", err)
			return
		}
	}

	if err := repo.EnsureProgramSettings(); err != nil {
		logger.Error("impossibile inizializzare le impostazioni", "error", err)
		return
	}

	/**********************************************
	 * Connessione a rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("impossibile connettersi a rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("impossibile aprire il canale", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("impossibile dichiarare la coda", "error", err)
		return
	}

	/**********************************************
	 * Connessione a redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * Handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, ch, rdb)
	if err != nil {
		logger.Error("impossibile creare l'handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * Server HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("avvio del server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("impossibile avviare il server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("arresto del server...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("arresto del server non riuscito", slog.String("error", err.Error()))
	}
	logger.Info("server arrestato")
}
