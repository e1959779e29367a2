package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/config"
	"github.com/vvf-mortara/turni-manager/backend/internal/repository"
	"github.com/vvf-mortara/turni-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int
	var rosterPath string

	flag.IntVar(&op, "op", 0, "operazione da eseguire (1: persone casuali, 2: ferie di prova, 3: anagrafica da CSV)")
	flag.IntVar(&n, "n", 5, "numero di record da inserire")
	flag.IntVar(&year, "year", time.Now().Year()+1, "anno per le ferie di prova")
	flag.StringVar(&rosterPath, "roster", "./internal/seed/data/roster.csv", "percorso del CSV con l'anagrafica")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Configurazione
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossibile caricare la configurazione", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Pool di connessioni
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

	// sql.Open crea solo il pool: serve un ping esplicito
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossibile connettersi al database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("operazione non indicata")
	case 1:
		if n <= 0 {
			slog.Error("indicare un numero di persone valido")
		} else {
			seed.SeedRandomPeople(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
		}
	case 2:
		seed.SeedRandomVacations(repo, year, rand.Intn)
	case 3:
		seed.SeedRoster(repo, rosterPath, cfg.Seed.User.Password)
	default:
		slog.Error("operazione non valida")
	}
}
