package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/davelara/shopper-cart/internal/user/domain"
	"github.com/davelara/shopper-cart/internal/user/repository"
	"github.com/davelara/shopper-cart/internal/user/repository/mocks"
)

const testSecret = "unit-test-secret"

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates user with hashed password", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, testSecret)

		mockRepo.On("GetUserByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound).Once()
		var created *domain.User
		mockRepo.On("CreateUser", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).Return(nil).Once()

		user, err := svc.Register(ctx, domain.RegisterRequest{Email: "New@Example.com", Password: "hunter22"})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.NotNil(t, created)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects duplicate email", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, testSecret)

		existing := &domain.User{ID: "u1", Email: "taken@example.com"}
		mockRepo.On("GetUserByEmail", ctx, "taken@example.com").Return(existing, nil).Once()

		_, err := svc.Register(ctx, domain.RegisterRequest{Email: "taken@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	stored := &domain.User{ID: "u1", Email: "user@example.com", PasswordHash: string(hash), IsAdmin: true}

	t.Run("Returns a signed token carrying the user claims", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, testSecret)

		u := *stored
		mockRepo.On("GetUserByEmail", ctx, "user@example.com").Return(&u, nil).Once()

		resp, err := svc.Login(ctx, domain.LoginRequest{Email: "user@example.com", Password: "correct-horse"})

		assert.NoError(t, err)
		assert.Empty(t, resp.User.PasswordHash)
		assert.NotEmpty(t, resp.Token)

		parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, "u1", claims["user_id"])
		assert.Equal(t, "user@example.com", claims["email"])
		assert.Equal(t, true, claims["is_admin"])
	})

	t.Run("Wrong password yields invalid credentials", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, testSecret)

		u := *stored
		mockRepo.On("GetUserByEmail", ctx, "user@example.com").Return(&u, nil).Once()

		_, err := svc.Login(ctx, domain.LoginRequest{Email: "user@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email yields the same invalid credentials error", func(t *testing.T) {
		mockRepo := new(mocks.MockUserRepository)
		svc := NewUserService(mockRepo, testSecret)

		mockRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()

		_, err := svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
