package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// SessionClaims is the session token payload carried in the auth cookie.
type SessionClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates session tokens against the users table.
type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
	}
}

// TTL returns the session lifetime, used to set the cookie expiry.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a user account. The very first account becomes admin
// regardless of the requested role; after that, the role defaults to user and
// anything else requires an admin caller (enforced by the handler).
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, types.BadRequest("name and email are required")
	}
	if len(in.Password) < 8 {
		return nil, types.BadRequest("password must be at least 8 characters")
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, types.BadRequest("unknown role: " + role)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, types.Internal("failed to count users")
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.Internal("failed to hash password")
	}

	user := models.User{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          role,
		NotifyByEmail: true,
		Locale:        "pt-BR",
		Active:        true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.Conflict("email already registered")
		}
		return nil, types.Internal("failed to create user")
	}
	return &user, nil
}

// Login verifies credentials and returns the user plus a signed session token.
// Unknown email, wrong password and deactivated accounts all read the same to
// the caller.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", types.Unauthenticated("invalid credentials")
		}
		return nil, "", types.Internal("failed to look up user")
	}
	if !user.Active {
		return nil, "", types.Unauthenticated("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", types.Unauthenticated("invalid credentials")
	}

	token, err := s.mintToken(&user)
	if err != nil {
		return nil, "", types.Internal("failed to sign session token")
	}
	return &user, token, nil
}

func (s *AuthService) mintToken(user *models.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
	if err != nil || !token.Valid {
		return nil, types.Unauthenticated("invalid or expired session")
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, types.Unauthenticated("invalid session claims")
	}
	return claims, nil
}

// CurrentUser loads the account behind a validated session. A deactivated
// account invalidates its outstanding sessions immediately.
func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.Unauthenticated("session user no longer exists")
		}
		return nil, types.Internal("failed to load session user")
	}
	if !user.Active {
		return nil, types.Unauthenticated("account is deactivated")
	}
	return &user, nil
}
