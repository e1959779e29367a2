package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/repository"
	"github.com/vvf-mortara/turni-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// SeedRoster importa l'anagrafica reale del distaccamento da un CSV con le
// colonne Nome, Username, Email, Ruolo, Grado e LimiteSettimanale. Le persone
// già presenti vengono saltate.
func SeedRoster(r *repository.Repository, path string, password string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("apertura del file non riuscita", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("lettura dell'intestazione non riuscita", "error", err)
		return
	}

	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{"Nome", "Username", "Email", "Ruolo", "Grado"} {
		if _, ok := index[required]; !ok {
			slog.Error("colonna mancante nel CSV", "colonna", required)
			return
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("hash della password non riuscito", "error", err)
		return
	}

	inserted := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("lettura del file non riuscita", "error", err)
			return
		}

		username := strings.TrimSpace(row[index["Username"]])
		if username == "" {
			slog.Error("riga senza username", "row", row)
			continue
		}

		if _, err := r.GetPersonByUsername(username); err == nil {
			// Già in anagrafica
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("lettura della persona non riuscita", "error", err)
			continue
		}

		person := &domain.Person{
			Username:     username,
			PasswordHash: string(passwordHash),
			FullName:     strings.TrimSpace(row[index["Nome"]]),
			Email:        strings.TrimSpace(row[index["Email"]]),
			Role:         domain.Role(strings.TrimSpace(row[index["Ruolo"]])),
			Grade:        domain.Grade(strings.TrimSpace(row[index["Grado"]])),
			WeeklyCap:    domain.DefaultWeeklyCap,
		}

		if i, ok := index["LimiteSettimanale"]; ok && strings.TrimSpace(row[i]) != "" {
			weeklyCap, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil || weeklyCap < 0 {
				slog.Error("limite settimanale non valido", "valore", row[i], "persona", person.FullName)
				continue
			}
			person.WeeklyCap = weeklyCap
		}

		if err := r.CreatePerson(person); err != nil {
			slog.Error("inserimento della persona non riuscito", "error", err, "persona", person.FullName)
			continue
		}

		inserted++
	}

	slog.Info("anagrafica importata", "inserite", inserted)
}

// SeedRandomPeople inserisce n persone casuali, utile per provare il
// generatore senza l'anagrafica reale.
func SeedRandomPeople(r *repository.Repository, n int, password string, emailDomain string) {
	inserted := 0
	for i := 0; i < n; i++ {
		person, err := utils.GenerateRandomPerson(password, emailDomain)
		if err != nil {
			slog.Error("generazione della persona non riuscita", "error", err)
			continue
		}

		if err := r.CreatePerson(person); err != nil {
			slog.Error("inserimento della persona non riuscito", "error", err)
			continue
		}

		inserted++
	}

	slog.Info("persone casuali inserite", "count", inserted)
}

// SeedRandomVacations assegna a ogni persona attiva un periodo di ferie
// casuale di 1-2 settimane nell'anno indicato.
func SeedRandomVacations(r *repository.Repository, year int, rng func(int) int) {
	people, err := r.GetAllPeople()
	if err != nil {
		slog.Error("lettura dell'anagrafica non riuscita", "error", err)
		return
	}

	inserted := 0
	for _, person := range people {
		if !person.IsActive {
			continue
		}

		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng(350))
		vacation := &domain.Vacation{
			PersonID: person.ID,
			Start:    start,
			End:      start.AddDate(0, 0, 7+rng(7)),
			Note:     "ferie di prova",
		}

		if err := r.CreateVacation(vacation); err != nil {
			slog.Error("inserimento delle ferie non riuscito", "error", err, "persona", person.FullName)
			continue
		}

		inserted++
	}

	slog.Info("ferie di prova inserite", "count", inserted)
}
