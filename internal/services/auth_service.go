package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ngcommerce/internal/models"
	"ngcommerce/internal/storage"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService manages the active session's user/token pair, mirrored to
// durable storage. The storefront accepts exactly one demo credential; the
// issued token is a signed JWT that the rest of the core treats as an opaque
// authorization credential.
type AuthService struct {
	store      *storage.Adapter
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid

	demoEmail    string
	demoPassHash []byte
	demoUser     models.User

	mu    sync.RWMutex
	user  *models.User
	token string
}

// NewAuthService creates an AuthService for the given demo credential and
// restores any session persisted by a previous run.
func NewAuthService(store *storage.Adapter, jwtSecret, demoEmail, demoPassword, demoUserName string) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		// Only reachable when the configured password exceeds bcrypt's
		// length limit; login will then reject everything.
		log.Printf("failed to hash demo password: %v", err)
	}

	s := &AuthService{
		store:        store,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   24 * time.Hour, // Token valid for 24 hours
		demoEmail:    demoEmail,
		demoPassHash: hash,
		demoUser: models.User{
			ID:    "user-1",
			Email: demoEmail,
			Name:  demoUserName,
		},
	}
	s.restore()
	return s
}

// restore rehydrates the persisted session. A missing or corrupt user or
// token leaves the session logged out with both keys removed.
func (s *AuthService) restore() {
	var user models.User
	var token string
	if s.store.Load(storage.UserKey, &user) && s.store.Load(storage.TokenKey, &token) && token != "" {
		s.user = &user
		s.token = token
		return
	}
	s.store.Remove(storage.UserKey)
	s.store.Remove(storage.TokenKey)
}

// Login authenticates the demo credential, establishes the session, and
// mirrors user and token to durable storage. Any other email/password pair
// fails with ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	// Same error for unknown email and wrong password, so callers cannot
	// tell which part was wrong.
	if email != s.demoEmail {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.demoPassHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user := s.demoUser

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.token = tokenString
	s.mu.Unlock()

	s.store.Save(storage.UserKey, user)
	s.store.Save(storage.TokenKey, tokenString)

	return &user, tokenString, nil
}

// Logout clears the session and deletes both persisted keys. Logging out
// while logged out is a no-op.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.store.Remove(storage.UserKey)
	s.store.Remove(storage.TokenKey)
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the session token, or the empty string when logged out.
func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a session token is present.
func (s *AuthService) IsAuthenticated() bool {
	return s.Token() != ""
}

// ValidateToken parses and validates a JWT issued by Login, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
