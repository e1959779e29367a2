package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/vvf-mortara/turni-manager/backend/internal/utils"
)

func validConfig() *domain.GenerationConfig {
	return &domain.GenerationConfig{
		Year:    2025,
		Drivers: []string{"Rossi", "Ferrari"},
		Crew:    []string{"Bianchi", "Verdi", "Neri", "Gallo"},
		Grades: map[string]domain.Grade{
			"Bianchi": domain.GradeSenior,
			"Verdi":   domain.GradeJunior,
			"Neri":    domain.GradeJunior,
			"Gallo":   domain.GradeJunior,
		},
		MinSeniors: 1,
		Vacations:  map[string][]domain.Vacation{},
	}
}

func TestValidateGenerationConfigAccepts(t *testing.T) {
	require.NoError(t, utils.ValidateGenerationConfig(validConfig()))
}

func TestValidateGenerationConfigEmptyRosters(t *testing.T) {
	cfg := validConfig()
	cfg.Drivers = nil
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "nessun autista")

	cfg = validConfig()
	cfg.Crew = nil
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "nessun vigile")
}

func TestValidateGenerationConfigDanglingPairNames(t *testing.T) {
	cfg := validConfig()
	cfg.ForbiddenPairs = []domain.ForbiddenPair{{First: "Bianchi", Second: "Sconosciuto"}}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "Sconosciuto")

	cfg = validConfig()
	cfg.PreferredPairs = []domain.PreferredPair{{Driver: "Sconosciuto", CrewMember: "Bianchi"}}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "Sconosciuto")
}

func TestValidateGenerationConfigForbiddenPairSamePerson(t *testing.T) {
	cfg := validConfig()
	cfg.ForbiddenPairs = []domain.ForbiddenPair{{First: "Bianchi", Second: "Bianchi"}}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "due volte")
}

func TestValidateGenerationConfigRotation(t *testing.T) {
	cfg := validConfig()
	cfg.RotationEnabled = true
	cfg.RotationDriver = "Rossi"
	cfg.LinkedDriver = "Ferrari"
	require.NoError(t, utils.ValidateGenerationConfig(cfg))

	cfg.LinkedDriver = "Rossi"
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "distinti")

	cfg.LinkedDriver = "Sconosciuto"
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "Sconosciuto")
}

func TestValidateGenerationConfigVacationBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Vacations = map[string][]domain.Vacation{
		"Bianchi": {{
			Start: time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "terminano prima")
}

func TestValidateGenerationConfigRanges(t *testing.T) {
	cfg := validConfig()
	cfg.MinSeniors = 5
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "minimo SENIOR")

	cfg = validConfig()
	cfg.ActiveWeekdays = []int{7}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "giorno pianificato")

	cfg = validConfig()
	cfg.ActiveMonths = []int{0}
	assert.ErrorContains(t, utils.ValidateGenerationConfig(cfg), "mese pianificato")
}

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := utils.GenerateUsernameFromFullName("Marco Rossi")
	assert.Regexp(t, `^m\.rossi\d{1,3}$`, username)
}

func TestGenerateRandomPasswordLength(t *testing.T) {
	assert.Len(t, utils.GenerateRandomPassword(12), 12)
}

func TestGenerateRandomOTPFormat(t *testing.T) {
	assert.Regexp(t, `^\d{6}$`, utils.GenerateRandomOTP())
}
