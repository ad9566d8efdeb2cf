// Package session owns the terminal's authentication state and its durable
// mirror. The mirror is two files in the state dir, a JSON-serialized user
// record and a plain bearer token string; restoring them at startup lets a
// register survive a restart without re-login. All transitions keep the
// in-memory state, the files and the record client's default auth header in
// step.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/recordclient"
)

const (
	userFile  = "user.json"
	tokenFile = "access_token"

	// Only admins may operate the back-office terminal; a successful login
	// with any other role is rejected client-side.
	requiredRole = "admin"
)

var (
	ErrNotAuthorized      = errors.New("account role is not permitted to use this terminal")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
}

// State invariant: IsLoggedIn == (User != nil && AccessToken != "").
type State struct {
	IsLoading   bool
	IsLoggedIn  bool
	User        *User
	AccessToken string
}

// Store is an explicitly owned session instance, constructed once at
// application start and passed to whoever needs the auth state.
type Store struct {
	client   *recordclient.Client
	stateDir string

	mu    sync.Mutex
	state State
}

func NewStore(client *recordclient.Client, stateDir string) *Store {
	return &Store{
		client:   client,
		stateDir: stateDir,
	}
}

// Restore reads the durable mirror. Missing or empty values mean logged
// out; the outbound auth header is cleared so a half-written mirror cannot
// leak a stale token into requests.
func (s *Store) Restore() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	userData, userErr := os.ReadFile(filepath.Join(s.stateDir, userFile))
	tokenData, tokenErr := os.ReadFile(filepath.Join(s.stateDir, tokenFile))

	token := string(tokenData)
	var user User
	if userErr != nil || tokenErr != nil || token == "" || json.Unmarshal(userData, &user) != nil {
		logger.Debug("No stored session found, starting logged out")
		s.client.ClearAuthToken()
		s.state = State{}
		return s.state
	}

	s.client.SetAuthToken(token)
	s.state = State{
		IsLoggedIn:  true,
		User:        &user,
		AccessToken: token,
	}

	logger.Info("Session restored from durable storage", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return s.state
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   User `json:"user"`
	Tokens struct {
		AccessToken string `json:"accessToken"`
	} `json:"tokens"`
}

// Login authenticates against the API. Even when the network call
// succeeds, the returned user must carry the admin role; otherwise the
// login fails with ErrNotAuthorized and nothing is persisted.
func (s *Store) Login(ctx context.Context, email, password string) (State, error) {
	s.mu.Lock()
	s.state.IsLoading = true
	s.mu.Unlock()

	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	var resp loginResponse
	err := s.client.Create(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return s.reject(classifyLoginError(err))
	}

	if resp.User.Role != requiredRole {
		logger.Warn("Login rejected: insufficient role", map[string]interface{}{
			"email": email,
			"role":  resp.User.Role,
		})
		return s.reject(ErrNotAuthorized)
	}

	if resp.Tokens.AccessToken == "" {
		return s.reject(fmt.Errorf("login response carried no access token"))
	}

	if err := s.persist(&resp.User, resp.Tokens.AccessToken); err != nil {
		logger.Error("Failed to persist session", err, map[string]interface{}{
			"user_id": resp.User.ID,
		})
		return s.reject(err)
	}

	s.client.SetAuthToken(resp.Tokens.AccessToken)

	s.mu.Lock()
	defer s.mu.Unlock()
	user := resp.User
	s.state = State{
		IsLoggedIn:  true,
		User:        &user,
		AccessToken: resp.Tokens.AccessToken,
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return s.state, nil
}

// Logout clears durable storage, the outbound auth header and the
// in-memory state. It always succeeds.
func (s *Store) Logout() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	os.Remove(filepath.Join(s.stateDir, userFile))
	os.Remove(filepath.Join(s.stateDir, tokenFile))
	s.client.ClearAuthToken()
	s.state = State{}

	logger.Info("Logged out")
	return s.state
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) reject(err error) (State, error) {
	s.client.ClearAuthToken()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.state, err
}

func (s *Store) persist(user *User, token string) error {
	if err := os.MkdirAll(s.stateDir, 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.stateDir, userFile), userData, 0o600); err != nil {
		return fmt.Errorf("failed to write user file: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.stateDir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func classifyLoginError(err error) error {
	var apiErr *recordclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
		return ErrInvalidCredentials
	}
	return err
}
