package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials возвращается при неверном пароле.
var ErrInvalidCredentials = errors.New("account: invalid credentials")

type Service interface {
	Register(ctx context.Context, email, password string) (Identity, error)
	Login(ctx context.Context, email, password string) (Identity, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (Identity, error) {
	if password == "" {
		return Identity{}, errors.New("account: password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return Identity{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
	}

	_, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn().Str("email", email).Msg("service: registration with existing email")
			return Identity{}, ErrEmailExists
		}

		log.Error().Err(err).Msg("service: failed to create user in repository")
		return Identity{}, fmt.Errorf("service: failed to register user: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Msg("service: user registered")

	return identityOf(email), nil
}

func (s *service) Login(ctx context.Context, email, password string) (Identity, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("email", email).Msg("service: login for unknown email")
			return Identity{}, ErrNotFound
		}

		log.Error().Err(err).Msg("service: failed to fetch user by email")
		return Identity{}, fmt.Errorf("service: failed to login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("service: wrong password")
		return Identity{}, ErrInvalidCredentials
	}

	log.Info().Int64("user_id", user.ID).Msg("service: user logged in")

	return identityOf(user.Email), nil
}

// identityOf строит отображаемое имя из локальной части email.
func identityOf(email string) Identity {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return Identity{Name: name, Email: email}
}
