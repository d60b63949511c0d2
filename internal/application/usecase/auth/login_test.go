package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-builder/internal/domain/user"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type memUserRepo struct {
	users map[string]*user.User
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", id.String())
}

func newLogin(t *testing.T) (*LoginUseCase, *user.User, *auth.JWTService) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	owner := &user.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	repo := &memUserRepo{users: map[string]*user.User{owner.Email: owner}}
	return NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger()), owner, jwtSvc
}

func TestLogin_Success(t *testing.T) {
	uc, owner, jwtSvc := newLogin(t)

	out, err := uc.Execute(context.Background(), LoginInput{Email: " Owner@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, claims.OwnerID)
	assert.Equal(t, owner.Email, claims.Email)
}

func TestLogin_Rejections(t *testing.T) {
	uc, _, _ := newLogin(t)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "owner@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	_, err = uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized), "unknown emails look like bad passwords")

	_, err = uc.Execute(context.Background(), LoginInput{Email: "", Password: ""})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}
