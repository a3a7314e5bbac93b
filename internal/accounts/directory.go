// Package accounts holds the portal accounts users sign in with.
package accounts

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rehabflow/care-scheduler/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Directory struct {
	byEmail map[string]models.User
	byID    map[string]models.User
}

// Seed is an account with its plaintext password, hashed on load.
type Seed struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

func NewDirectory(seeds []Seed, cost int) (*Directory, error) {
	d := &Directory{
		byEmail: make(map[string]models.User, len(seeds)),
		byID:    make(map[string]models.User, len(seeds)),
	}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, err
		}
		email := normalize(s.Email)
		u := models.User{
			ID:           s.ID,
			Name:         s.Name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         s.Role,
		}
		d.byEmail[email] = u
		d.byID[u.ID] = u
	}
	return d, nil
}

// DemoSeeds are the fixed accounts of the demo portals.
func DemoSeeds() []Seed {
	return []Seed{
		{ID: "c-1", Name: "Dr. Amara Ellis", Email: "clinician@demo.health", Password: "clinician123", Role: models.RoleClinician},
		{ID: "p-1", Name: "Jordan Reyes", Email: "patient@demo.health", Password: "patient123", Role: models.RolePatient},
		{ID: "a-1", Name: "Portal Admin", Email: "admin@demo.health", Password: "admin123", Role: models.RoleAdmin},
	}
}

func (d *Directory) Authenticate(email, password string) (*models.User, error) {
	u, ok := d.byEmail[normalize(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (d *Directory) ByID(id string) (*models.User, bool) {
	u, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &u, true
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
