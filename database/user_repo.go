package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const userTable = "users"

var userColumns = []string{
	"id", "email", "username", "password_hash", "verification_token", "verified",
	"created_at", "updated_at",
}

var userUpdateColumns = map[string]string{
	"username":     "username",
	"passwordHash": "password_hash",
}

// UserRepo stores admin console accounts. Password hashing happens before
// the repository is called.
type UserRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewUserRepo(engine Engine) *UserRepo {
	return &UserRepo{
		engine: engine,
		logger: log.With().Str("repo", "userRepo").Logger(),
	}
}

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.VerificationToken, &u.Verified,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findBy(ctx, r.engine, "id", id)
}

// FindByEmail looks a user up by email, ignoring case.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findBy(ctx, r.engine, "email", normalizeEmail(email))
}

func (r *UserRepo) findBy(ctx context.Context, engine Engine, column, value string) (*models.User, error) {
	stmt, args := SelectQuery{
		Table:   userTable,
		Columns: userColumns,
		Where:   []Predicate{Equals(column, value)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "user", stmt, args, scanUser)
}

// Add creates an unverified account. The email is stored lowercased.
func (r *UserRepo) Add(ctx context.Context, user models.User) (*models.User, error) {
	user.Email = normalizeEmail(user.Email)
	if err := requireText("email", user.Email); err != nil {
		return nil, err
	}
	if err := requireText("username", user.Username); err != nil {
		return nil, err
	}
	if err := requireText("passwordHash", user.PasswordHash); err != nil {
		return nil, err
	}

	ts := now()
	user.ID = uuid.NewString()
	fields := []Field{
		{Name: "id", Value: user.ID},
		{Name: "email", Value: user.Email},
		{Name: "username", Value: user.Username},
		{Name: "password_hash", Value: user.PasswordHash},
		{Name: "verification_token", Value: user.VerificationToken},
		{Name: "verified", Kind: KindBool, Value: user.Verified},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "user", userTable, fields, func(conn Engine) (*models.User, error) {
		return r.findBy(ctx, conn, "id", user.ID)
	})
	if err != nil {
		return nil, uniqueViolation(err, "user", "email")
	}
	r.logger.Info().Str("userId", created.ID).Msg("user created")
	return created, nil
}

// Update writes the set fields of patch. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *UserRepo) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Username.Set {
		if err := requireText("username", patch.Username.Value); err != nil {
			return nil, err
		}
	}
	if patch.PasswordHash.Set {
		if err := requireText("passwordHash", patch.PasswordHash.Value); err != nil {
			return nil, err
		}
	}

	var fields []Field
	fields = appendField(fields, "username", KindValue, patch.Username)
	fields = appendField(fields, "passwordHash", KindValue, patch.PasswordHash)

	return updateAndReload(ctx, r.engine, "user", userTable, userUpdateColumns, fields, id, func(conn Engine) (*models.User, error) {
		return r.findBy(ctx, conn, "id", id)
	})
}

// Verify marks the account holding token as verified and clears the token.
func (r *UserRepo) Verify(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errs.NewInvalidTokenError()
	}

	var verified *models.User
	err := r.engine.WithConnection(ctx, func(conn Engine) error {
		user, err := r.findBy(ctx, conn, "verification_token", token)
		if err != nil {
			if errs.IsNotFound(err) {
				return errs.NewInvalidTokenError()
			}
			return err
		}

		d := conn.Dialect()
		stmt := "UPDATE " + userTable + " SET verified = " + d.Placeholder(1) +
			", verification_token = NULL, updated_at = " + d.Placeholder(2) +
			" WHERE id = " + d.Placeholder(3)
		if _, err := conn.Run(ctx, stmt, d.Bool(true), now(), user.ID); err != nil {
			return err
		}
		verified, err = r.findBy(ctx, conn, "id", user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("userId", verified.ID).Msg("user verified")
	return verified, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteByID(ctx, r.engine, userTable, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return deleted, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
