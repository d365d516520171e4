// File: internal/services/auth_service.go
package services

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"

    "github.com/medichat/go-medichat/internal/domain"
    userrepo "github.com/medichat/go-medichat/internal/repository/user"
)

var (
    // ErrEmailTaken means the registration email is already in use.
    ErrEmailTaken = errors.New("an account with this email already exists")
    // ErrInvalidInput means the caller supplied unusable credentials.
    ErrInvalidInput = errors.New("invalid input")
)

// AuthService is the identity provider: it registers accounts, authenticates
// logins, and resolves JWT cookies into the stable email identity every chat
// and history operation is keyed by.
type AuthService struct {
    userRepo     userrepo.UserRepository
    jwtSecretKey string
    logger       Logger
}

func NewAuthService(userRepo userrepo.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
    if logger == nil {
        logger = &NoOpLogger{}
    }
    return &AuthService{
        userRepo:     userRepo,
        jwtSecretKey: jwtSecretKey,
        logger:       logger,
    }
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    if !strings.Contains(email, "@") {
        return nil, fmt.Errorf("%w: a valid email address is required", ErrInvalidInput)
    }

    existing, err := s.userRepo.FindByEmail(ctx, email)
    if err == nil && existing != nil {
        s.logger.Warn("registration failed - email already exists", "email", maskIdentity(email))
        return nil, ErrEmailTaken
    }

    user := &domain.User{Email: email, Name: name}
    if err := user.HashPassword(password); err != nil {
        return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
    }

    created, err := s.userRepo.Create(ctx, user)
    if err != nil {
        s.logger.Error("user creation failed", "error", err, "email", maskIdentity(email))
        return nil, fmt.Errorf("failed to create user: %w", err)
    }

    s.logger.Info("user registered", "user_id", created.ID, "email", maskIdentity(email))
    return created, nil
}

// Login authenticates a user and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    if email == "" || password == "" {
        return nil, "", errors.New("email and password are required")
    }

    user, err := s.userRepo.FindByEmail(ctx, email)
    if err != nil {
        s.logger.Warn("login failed - user not found", "email", maskIdentity(email))
        return nil, "", errors.New("invalid credentials")
    }

    if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
        s.logger.Warn("login failed - invalid password", "email", maskIdentity(email), "user_id", user.ID)
        return nil, "", errors.New("invalid credentials")
    }

    token, err := s.generateJWTToken(user)
    if err != nil {
        s.logger.Error("JWT token generation failed", "error", err, "user_id", user.ID)
        return nil, "", fmt.Errorf("failed to generate token: %w", err)
    }

    s.logger.Info("login successful", "user_id", user.ID, "email", maskIdentity(email))
    return user, token, nil
}

// ValidateJWTToken validates a token and returns the identity it carries.
func (s *AuthService) ValidateJWTToken(tokenString string) (string, error) {
    if tokenString == "" {
        return "", errors.New("empty token")
    }

    token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
        if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
        }
        return []byte(s.jwtSecretKey), nil
    })
    if err != nil {
        s.logger.Warn("JWT token validation failed", "error", err)
        return "", fmt.Errorf("invalid token: %w", err)
    }

    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok || !token.Valid {
        return "", errors.New("invalid token")
    }

    email, ok := claims["email"].(string)
    if !ok || email == "" {
        s.logger.Warn("JWT token missing email claim")
        return "", errors.New("invalid token claims")
    }
    return email, nil
}

func (s *AuthService) generateJWTToken(user *domain.User) (string, error) {
    claims := jwt.MapClaims{
        "sub":   user.ID,
        "email": user.Email,
        "iat":   time.Now().Unix(),
        "exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
    }

    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(s.jwtSecretKey))
}

// maskIdentity keeps full identities out of log lines.
func maskIdentity(email string) string {
    at := strings.IndexByte(email, '@')
    if at <= 1 {
        return "****"
    }
    return email[:1] + "****" + email[at:]
}
