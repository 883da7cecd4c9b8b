package users_test

import (
	"context"
	"errors"
	"testing"

	"gastor/internal/common"
	"gastor/internal/server/models"
	"gastor/internal/server/repositories/repomanager"
	"gastor/internal/server/repositories/users"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UsersRepoSuite struct {
	suite.Suite
	manager *repomanager.SQLRepositoryManager
	repo    users.Repository
}

func (s *UsersRepoSuite) SetupTest() {
	manager, err := repomanager.New(":memory:")
	require.NoError(s.T(), err, "failed to create test database")
	s.manager = manager
	s.repo = users.NewSQLRepository(manager.Conn())
}

func (s *UsersRepoSuite) TearDownTest() {
	if s.manager != nil {
		s.manager.Close()
	}
}

func (s *UsersRepoSuite) mustCreate(email, name string) *models.User {
	u, err := s.repo.Create(context.Background(), &models.User{
		Email:        email,
		DisplayName:  name,
		PasswordHash: "$argon2id$stub",
	})
	require.NoError(s.T(), err)
	require.NotZero(s.T(), u.ID)
	return u
}

func (s *UsersRepoSuite) TestFindByEmail_CaseInsensitive() {
	created := s.mustCreate("foo@bar.com", "foo")

	got, err := s.repo.FindByEmail(context.Background(), "FOO@Bar.COM")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("foo@bar.com", got.Email)
}

func (s *UsersRepoSuite) TestFindByEmail_Missing() {
	_, err := s.repo.FindByEmail(context.Background(), "ghost@example.com")
	s.Require().ErrorIs(err, common.ErrorNotFound)
}

func (s *UsersRepoSuite) TestFindByEmailOrName_MatchesEither() {
	created := s.mustCreate("alice@example.com", "alice")

	byEmail, err := s.repo.FindByEmailOrName(context.Background(), "Alice@Example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, byEmail.ID)

	byName, err := s.repo.FindByEmailOrName(context.Background(), "ALICE")
	s.Require().NoError(err)
	s.Equal(created.ID, byName.ID)
}

func (s *UsersRepoSuite) TestFindByEmailOrName_AmbiguousPicksLowestID() {
	first := s.mustCreate("team@example.com", "someone")
	s.mustCreate("other@example.com", "team@example.com")

	got, err := s.repo.FindByEmailOrName(context.Background(), "team@example.com")
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)
}

func (s *UsersRepoSuite) TestCreate_DuplicateEmail() {
	s.mustCreate("dup@example.com", "one")

	_, err := s.repo.Create(context.Background(), &models.User{
		Email:        "dup@example.com",
		DisplayName:  "two",
		PasswordHash: "h",
	})
	s.Require().Error(err)
	s.True(errors.Is(err, common.ErrorEmailTaken), "got %v", err)
}

func TestUsersRepoSuite(t *testing.T) {
	suite.Run(t, new(UsersRepoSuite))
}
