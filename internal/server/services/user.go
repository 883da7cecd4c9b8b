// Package services contains the server-side business logic. This file
// implements UserService: registration, login, and resolving the
// authenticated user from a bearer token.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gastor/internal/common"
	"gastor/internal/dbx"
	"gastor/internal/logging"
	"gastor/internal/server/auth"
	"gastor/internal/server/config"
	"gastor/internal/server/models"
	"gastor/internal/server/repositories/repomanager"
)

// UserService is the user directory plus the identity gate: every
// ownership-scoped operation obtains its owner id through CurrentUser.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		logger:        l.With("module", "users"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a user. Email and display name are lowercased before
// storage; the duplicate-email check runs in the same transaction as the
// insert so a concurrent registration cannot slip between check and write.
func (s *UserService) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(email),
		DisplayName:  strings.ToLower(displayName),
		PasswordHash: hash,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.FindByEmail(ctx, user.Email); err == nil {
			return common.ErrorEmailTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		_, err := repo.Create(ctx, user)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login accepts either the email or the display name as identifier, verifies
// the password, and mints a bearer token whose subject is the user's email.
// Every failure collapses to ErrorUnauthorized; neither the identifier nor
// the password is ever logged.
func (s *UserService) Login(ctx context.Context, identifier, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmailOrName(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.IssueToken(user.Email, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// CurrentUser resolves a bearer token to the user record. Token problems and
// a valid token whose subject no longer exists produce the same external
// error so callers cannot tell the two apart; the precise token failure is
// only logged.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	subject, err := auth.SubjectFromToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
