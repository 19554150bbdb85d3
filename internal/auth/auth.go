package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/metrics"
)

type Claims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is a signed-in user and the token that proves it.
type Session struct {
	Token     string       `json:"-"`
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin()
}

type EventType string

const (
	SignedIn  EventType = "signed_in"
	SignedOut EventType = "signed_out"
)

// Event is delivered to subscribers whenever the session changes.
type Event struct {
	Type EventType
	User *domain.User
	At   time.Time
}

type Service struct {
	users  domain.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewService(users domain.UserRepository, secret string, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		subs:   make(map[int]func(Event)),
	}
}

// SignUp creates an account and signs it in. The very first account
// becomes the admin; everyone after that is a plain user.
func (s *Service) SignUp(ctx context.Context, creds domain.Credentials) (*Session, error) {
	if err := creds.Validate(); err != nil {
		metrics.AuthAttempts.WithLabelValues("signup", "failure").Inc()
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           domain.NewID(),
		Email:        creds.Email,
		PasswordHash: string(hash),
		FullName:     creds.FullName,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Register(ctx, user); err != nil {
		metrics.AuthAttempts.WithLabelValues("signup", "failure").Inc()
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("signup", "success").Inc()
	return s.start(user)
}

func (s *Service) SignIn(ctx context.Context, creds domain.Credentials) (*Session, error) {
	email := domain.NormalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		metrics.AuthAttempts.WithLabelValues("signin", "failure").Inc()
		return nil, domain.NewValidationError("email", "Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("signin", "failure").Inc()
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		metrics.AuthAttempts.WithLabelValues("signin", "failure").Inc()
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	metrics.AuthAttempts.WithLabelValues("signin", "success").Inc()
	return s.start(user)
}

// Session resolves a token to its session. The user is reloaded so a
// deleted account or a changed role takes effect immediately.
func (s *Service) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if method, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected HMAC algorithm: %v", method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return &Session{Token: token, User: user, ExpiresAt: expires}, nil
}

// SignOut ends a session. Tokens are stateless, so this only tells
// subscribers; the caller clears the cookie.
func (s *Service) SignOut(ctx context.Context, session *Session) {
	if session == nil {
		return
	}
	s.publish(Event{Type: SignedOut, User: session.User, At: s.now()})
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) publish(ev Event) {
	s.mu.RLock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Service) start(user *domain.User) (*Session, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.publish(Event{Type: SignedIn, User: user, At: now})
	return &Session{Token: token, User: user, ExpiresAt: expires}, nil
}
