package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Marco", "Luca", "Andrea", "Francesco", "Giuseppe", "Paolo", "Davide", "Stefano",
	"Alessandro", "Matteo", "Giovanni", "Roberto", "Simone", "Federico", "Enrico",
	"Anna", "Giulia", "Chiara", "Sara", "Elena", "Francesca", "Martina", "Laura",
}
var commonSurnames = []string{
	"Rossi", "Ferrari", "Bianchi", "Colombo", "Ricci", "Marino", "Greco", "Gallo",
	"Conti", "Esposito", "Romano", "Bruno", "Moretti", "Fontana", "Barbieri",
	"Mariani", "Rinaldi", "Caputo", "Ferraro", "Santoro",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var roles = []domain.Role{
	domain.RoleAutista,
	domain.RoleVigile,
	domain.RoleAutistaVigile,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var grades = []domain.Grade{
	domain.GradeJunior,
	domain.GradeSenior,
}

func GenerateRandomGrade() domain.Grade {
	return grades[rand.Intn(len(grades))]
}

var digits = "0123456789"

// GenerateUsernameFromFullName costruisce uno username tipo "m.rossi42" dal
// nome completo.
func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	if len(parts) > 1 {
		username = parts[0][:1] + "." + parts[len(parts)-1]
	} else if len(parts) == 1 {
		username = parts[0]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomPerson(password string, emailDomainName string) (*domain.Person, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        strings.ReplaceAll(username, ".", "") + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Grade:        GenerateRandomGrade(),
		WeeklyCap:    domain.DefaultWeeklyCap,
	}

	return person, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
