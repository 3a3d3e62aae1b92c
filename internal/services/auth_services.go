package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 6
	MaxPasswordLen = 50
	bcryptCost     = 10

	msgInvalidCredentials = "credentials are not valid"
)

// UserStore is the credential store the auth service reads and writes.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer
	Emails EmailValidator
	Log    logging.Logger
}

func NewAuthService(u UserStore, t TokenIssuer, log logging.Logger) *AuthService {
	return &AuthService{Users: u, Tokens: t, Emails: NewLocalValidator(), Log: log.With("component", "auth")}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User  *model.User
	Token string
}

func validatePassword(pw string) error {
	if len(pw) < MinPasswordLen || len(pw) > MaxPasswordLen {
		return apperr.BadRequest(fmt.Sprintf("password must be between %d and %d characters", MinPasswordLen, MaxPasswordLen))
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return apperr.BadRequest("password must have an uppercase letter, a lowercase letter and a number")
	}
	return nil
}

// Register creates a user with the default role and returns it with a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := model.NormalizeEmail(in.Email)
	if err := s.Emails.Validate(ctx, email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, apperr.BadRequest("fullName is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Roles:        []string{model.RoleUser},
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		return nil, dbError(ctx, s.Log, err)
	}
	u.PasswordHash = ""

	return s.withToken(u)
}

// Login checks email + password. Unknown email and wrong password fail the
// same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, dbError(ctx, s.Log, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	u.PasswordHash = ""

	return s.withToken(u)
}

// Resolve loads the identity named by a verified token. It hits the store on
// every call.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*model.User, error) {
	if !model.IsUUID(userID) {
		return nil, apperr.Unauthorized("token or user not found")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized("token or user not found")
		}
		return nil, dbError(ctx, s.Log, err)
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized("user inactive")
	}
	return u, nil
}

// CheckStatus renews the token of an already authenticated user.
func (s *AuthService) CheckStatus(u *model.User) (*AuthResult, error) {
	return s.withToken(u)
}

func (s *AuthService) withToken(u *model.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return &AuthResult{User: u, Token: token}, nil
}
