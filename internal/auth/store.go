// Package auth provides a file-backed credential store for the HTTP server.
// Passwords are stored as bcrypt hashes.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// User is one stored credential record.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type credentialsFile struct {
	Users []User `json:"users"`
}

// Store manages user credentials in a JSON file.
type Store struct {
	mu   sync.RWMutex
	path string
}

// NewStore opens a credential store at path, creating an empty file when
// none exists.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&credentialsFile{Users: []User{}}); err != nil {
			return nil, fmt.Errorf("failed to initialize credential store: %w", err)
		}
	}
	return s, nil
}

// Check verifies a username and password pair.
func (s *Store) Check(username, password string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, err := s.load()
	if err != nil {
		return false, err
	}
	for _, u := range creds.Users {
		if u.Username != username {
			continue
		}
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
		return err == nil, nil
	}
	return false, nil
}

// Register adds a new user. Registration fails when the username is taken.
func (s *Store) Register(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range creds.Users {
		if u.Username == username {
			return fmt.Errorf("username %q already exists", username)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	creds.Users = append(creds.Users, User{Username: username, PasswordHash: string(hash)})
	return s.save(creds)
}

// Usernames lists the registered usernames.
func (s *Store) Usernames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(creds.Users))
	for _, u := range creds.Users {
		names = append(names, u.Username)
	}
	return names, nil
}

func (s *Store) load() (*credentialsFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return &creds, nil
}

func (s *Store) save(creds *credentialsFile) error {
	data, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
