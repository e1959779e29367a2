package domain

import "time"

type Role string

const (
	RoleAutista       Role = "AUTISTA"
	RoleVigile        Role = "VIGILE"
	RoleAutistaVigile Role = "AUTISTA+VIGILE"
)

type Grade string

const (
	GradeJunior Grade = "JUNIOR"
	GradeSenior Grade = "SENIOR"
)

type Person struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Grade        Grade     `json:"grade"`
	WeeklyCap    int       `json:"weeklyCap"` // 0 = nessun limite settimanale
	IsAdmin      bool      `json:"isAdmin"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

func (p *Person) CanDrive() bool {
	return p.Role == RoleAutista || p.Role == RoleAutistaVigile
}

func (p *Person) CanCrew() bool {
	return p.Role == RoleVigile || p.Role == RoleAutistaVigile
}

// Vacation è un intervallo di ferie, estremi inclusi.
type Vacation struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"personID"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Contains riporta se il giorno indicato cade nell'intervallo di ferie.
func (v *Vacation) Contains(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(v.Start.Truncate(24*time.Hour)) && !d.After(v.End.Truncate(24*time.Hour))
}
