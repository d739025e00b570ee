// Package user implements the authentication gate: an immutable credential
// registry loaded once at startup from a YAML file. Users are not created or
// destroyed at runtime.
package user

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Credential is one username/password-hash pair from the users file.
// Entries may carry a plaintext password instead of a hash; those are
// hashed with bcrypt at load time and never kept in plaintext.
type Credential struct {
	ID           int    `yaml:"id"`
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	Password     string `yaml:"password"`
}

// CheckPassword compares the stored hash against the given password.
func (c Credential) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// Registry is an immutable username-keyed lookup table of credentials.
type Registry struct {
	users map[string]Credential
}

type usersFile struct {
	Users []Credential `yaml:"users"`
}

// LoadRegistry reads the YAML users file at path and builds the registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}
	return NewRegistry(data)
}

// NewRegistry builds a registry from raw YAML users data.
func NewRegistry(data []byte) (*Registry, error) {
	var file usersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing users file: %w", err)
	}

	users := make(map[string]Credential, len(file.Users))
	for _, cred := range file.Users {
		if cred.Username == "" {
			return nil, fmt.Errorf("user entry %d has no username", cred.ID)
		}
		if _, exists := users[cred.Username]; exists {
			return nil, fmt.Errorf("duplicate username %q", cred.Username)
		}
		if cred.PasswordHash == "" {
			if cred.Password == "" {
				return nil, fmt.Errorf("user %q has neither password_hash nor password", cred.Username)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hashing password for %q: %w", cred.Username, err)
			}
			cred.PasswordHash = string(hash)
		}
		cred.Password = ""
		users[cred.Username] = cred
	}

	return &Registry{users: users}, nil
}

// Len returns the number of registered users.
func (r *Registry) Len() int { return len(r.users) }

// Authenticate checks the username/password pair against the registry.
// Unknown users and wrong passwords both return ErrInvalidCredentials so
// the response does not reveal which usernames exist.
func (r *Registry) Authenticate(username, password string) (Credential, error) {
	cred, ok := r.users[username]
	if !ok {
		return Credential{}, ErrInvalidCredentials
	}
	if err := cred.CheckPassword(password); err != nil {
		return Credential{}, err
	}
	return cred, nil
}
