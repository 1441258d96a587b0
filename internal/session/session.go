// ABOUTME: Session record and persistent token store for the StayHub client
// ABOUTME: Stores the session as JSON in the XDG config directory

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Role identifies what a session is allowed to do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Session is the only state the client persists. The record is
// all-or-nothing: either every field belongs to the same login, or the
// session is absent. Partial records are an error, never a valid state.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
}

// Complete reports whether all four fields are present and consistent.
func (s *Session) Complete() bool {
	return s != nil &&
		s.AccessToken != "" &&
		s.RefreshToken != "" &&
		s.Username != "" &&
		s.Role.Valid()
}

// ErrNoSession is returned by writes that require an existing session.
var ErrNoSession = errors.New("no active session")

// Store is the session repository injected into everything that needs
// the session, so no component reads ambient global state.
type Store interface {
	// Get returns the current session, or nil when logged out.
	Get() (*Session, error)
	// Set replaces the whole record. The session must be complete.
	Set(*Session) error
	// UpdateAccessToken swaps only the access token, keeping the
	// refresh token, username and role of the current login.
	UpdateAccessToken(token string) error
	// Clear removes the record. Idempotent.
	Clear() error
}

// FileStore persists the session under the config directory.
// Tokens are stored as plain opaque strings; see the README for the
// accepted risk around plaintext token storage.
type FileStore struct {
	configDir string
}

// NewFileStore creates a store rooted at the given config directory.
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the config directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stayhub")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stayhub")
}

func (fs *FileStore) sessionFile() string {
	return filepath.Join(fs.configDir, "session.json")
}

// Path returns the location of the session file, for display purposes.
func (fs *FileStore) Path() string {
	return fs.sessionFile()
}

// Get reads the session from disk. A missing file means logged out.
// A corrupt or partial record is wiped and treated as logged out,
// so token residue never survives as half a session.
func (fs *FileStore) Get() (*Session, error) {
	data, err := os.ReadFile(fs.sessionFile())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		if cerr := fs.Clear(); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}
	if !sess.Complete() {
		if cerr := fs.Clear(); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}
	return &sess, nil
}

// Set writes a complete session record.
func (fs *FileStore) Set(sess *Session) error {
	if !sess.Complete() {
		return fmt.Errorf("refusing to store partial session")
	}
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.sessionFile(), data, 0600)
}

// UpdateAccessToken replaces only the access token of the current login.
func (fs *FileStore) UpdateAccessToken(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store empty access token")
	}
	sess, err := fs.Get()
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNoSession
	}
	sess.AccessToken = token
	return fs.Set(sess)
}

// Clear removes the session file. Clearing an absent session is fine.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
