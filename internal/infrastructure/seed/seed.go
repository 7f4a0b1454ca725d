// Package seed loads the static store and user registry.
//
// A seed file is YAML:
//
//	stores:
//	  - id: centro
//	    name: Café Centro
//	users:
//	  - id: centro-staff
//	    storeId: centro
//	    username: staff
//	    password: change-me
//	    role: staff
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// UserSeed is a user as written in the seed file. Password is plaintext and
// is hashed by Build.
type UserSeed struct {
	ID       string `yaml:"id"`
	StoreID  string `yaml:"storeId"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Seed struct {
	Stores []domain.Store `yaml:"stores"`
	Users  []UserSeed     `yaml:"users"`
}

// Hasher turns a plaintext password into a stored credential.
type Hasher interface {
	Hash(password string) (string, error)
}

// Default is the demo registry used when no seed file is configured. The
// two stores share usernames on purpose: identities are store-scoped.
func Default() *Seed {
	return &Seed{
		Stores: []domain.Store{
			{ID: "centro", Name: "Café Centro"},
			{ID: "norte", Name: "Café Norte"},
		},
		Users: []UserSeed{
			{ID: "centro-staff", StoreID: "centro", Username: "staff", Password: "centro-staff-pass", Role: domain.RoleStaff},
			{ID: "centro-manager", StoreID: "centro", Username: "manager", Password: "centro-manager-pass", Role: domain.RoleManager},
			{ID: "norte-staff", StoreID: "norte", Username: "staff", Password: "norte-staff-pass", Role: domain.RoleStaff},
			{ID: "norte-manager", StoreID: "norte", Username: "manager", Password: "norte-manager-pass", Role: domain.RoleManager},
		},
	}
}

// Parse decodes and validates a YAML seed.
func Parse(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed: empty document")
		}
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads path, or returns Default when path is empty.
func LoadFile(path string) (*Seed, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks referential integrity: unique store and user IDs, users
// pointing at known stores, valid roles and usernames unique per store.
func (s *Seed) Validate() error {
	if len(s.Stores) == 0 {
		return errors.New("seed: at least one store is required")
	}

	stores := make(map[string]struct{}, len(s.Stores))
	for _, st := range s.Stores {
		if st.ID == "" {
			return errors.New("seed: store with empty id")
		}
		if _, dup := stores[st.ID]; dup {
			return fmt.Errorf("seed: duplicate store id %q", st.ID)
		}
		stores[st.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(s.Users))
	logins := make(map[[2]string]struct{}, len(s.Users))
	for _, u := range s.Users {
		switch {
		case u.ID == "" || u.Username == "" || u.Password == "":
			return fmt.Errorf("seed: user %q: id, username and password are required", u.ID)
		case !domain.ValidRole(u.Role):
			return fmt.Errorf("seed: user %q: invalid role %q", u.ID, u.Role)
		}
		if _, ok := stores[u.StoreID]; !ok {
			return fmt.Errorf("seed: user %q: unknown store %q", u.ID, u.StoreID)
		}
		if _, dup := ids[u.ID]; dup {
			return fmt.Errorf("seed: duplicate user id %q", u.ID)
		}
		ids[u.ID] = struct{}{}
		login := [2]string{u.StoreID, u.Username}
		if _, dup := logins[login]; dup {
			return fmt.Errorf("seed: duplicate username %q in store %q", u.Username, u.StoreID)
		}
		logins[login] = struct{}{}
	}
	return nil
}

// Build hashes every password and returns the registry contents.
func (s *Seed) Build(h Hasher) ([]domain.Store, []domain.User, error) {
	users := make([]domain.User, 0, len(s.Users))
	for _, u := range s.Users {
		hash, err := h.Hash(u.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("seed: hash password for %q: %w", u.ID, err)
		}
		users = append(users, domain.User{
			ID:           u.ID,
			StoreID:      u.StoreID,
			Username:     u.Username,
			PasswordHash: hash,
			Role:         u.Role,
		})
	}
	stores := make([]domain.Store, len(s.Stores))
	copy(stores, s.Stores)
	return stores, users, nil
}
