package app

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"coachnutri/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10
	tokenTTL   = 24 * time.Hour
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService handles registration, password login, SSO provisioning and
// bearer-token issuance.
type AuthService struct {
	users     domain.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", invalidRequest("Email requis")
	}
	if !emailPattern.MatchString(trimmed) {
		return "", invalidRequest("Email invalide")
	}
	return trimmed, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return invalidRequest("Mot de passe trop court (8 caractères minimum)")
	}
	if len(password) > 72 {
		return invalidRequest("Mot de passe trop long (72 caractères maximum)")
	}
	return nil
}

func validateName(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*name)
	if len([]rune(trimmed)) < 2 {
		return nil, invalidRequest("Nom trop court")
	}
	if len([]rune(trimmed)) > 80 {
		return nil, invalidRequest("Nom trop long")
	}
	return &trimmed, nil
}

// Register creates a user with a bcrypt password hash and returns it along
// with a fresh bearer token.
func (s *AuthService) Register(ctx context.Context, email, password string, name *string) (*domain.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}
	name, err = validateName(name)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	displayName := email[:strings.Index(email, "@")]
	if name != nil {
		displayName = *name
	}

	user, err := s.users.CreateUser(ctx, domain.NewUser{
		Email:        email,
		Name:         name,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.TokenForUser(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the password and returns the user with a fresh bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.TokenForUser(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithSSO provisions the user on first sight and returns a bearer
// token. SSO users carry no local password.
func (s *AuthService) LoginWithSSO(ctx context.Context, email, name, avatarURL string) (*domain.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		var namePtr *string
		displayName := email[:strings.Index(email, "@")]
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			namePtr = &trimmed
			displayName = trimmed
		}
		created := domain.NewUser{
			Email:       email,
			Name:        namePtr,
			DisplayName: displayName,
		}
		if avatarURL != "" {
			created.AvatarURL = &avatarURL
		}
		user, err = s.users.CreateUser(ctx, created)
		if err != nil {
			return nil, "", err
		}
	}

	token, err := s.TokenForUser(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// TokenForUser signs a 24h HS256 bearer token for the user.
func (s *AuthService) TokenForUser(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates a bearer token and resolves its user.
func (s *AuthService) ParseToken(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
