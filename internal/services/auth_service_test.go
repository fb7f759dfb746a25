package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	suite.service = NewAuthService(repository.NewUserRepository(suite.db), []byte("test-secret"), time.Hour)
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestSignup_Success tests user registration with the role default
func (suite *AuthServiceTestSuite) TestSignup_Success() {
	user, err := suite.service.Signup(SignupInput{
		Username: "alice",
		Password: "password123",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", user.Username)
	assert.Equal(suite.T(), models.RoleUser, user.Role)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
}

// TestSignup_AdminRole tests registering an admin
func (suite *AuthServiceTestSuite) TestSignup_AdminRole() {
	user, err := suite.service.Signup(SignupInput{
		Username: "root",
		Password: "password123",
		Role:     models.RoleAdmin,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleAdmin, user.Role)
}

// TestSignup_InvalidRole tests that unknown roles are rejected
func (suite *AuthServiceTestSuite) TestSignup_InvalidRole() {
	_, err := suite.service.Signup(SignupInput{
		Username: "alice",
		Password: "password123",
		Role:     models.Role("SUPERUSER"),
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidRole)
}

// TestSignup_ShortPassword tests the minimum password length
func (suite *AuthServiceTestSuite) TestSignup_ShortPassword() {
	_, err := suite.service.Signup(SignupInput{
		Username: "alice",
		Password: "short",
	})

	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

// TestSignup_DuplicateUsername tests the uniqueness check
func (suite *AuthServiceTestSuite) TestSignup_DuplicateUsername() {
	_, err := suite.service.Signup(SignupInput{Username: "alice", Password: "password123"})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(SignupInput{Username: "alice", Password: "password456"})

	assert.ErrorIs(suite.T(), err, ErrUsernameTaken)
}

// TestLogin_Success tests credential verification and token issuance
func (suite *AuthServiceTestSuite) TestLogin_Success() {
	_, err := suite.service.Signup(SignupInput{Username: "alice", Password: "password123"})
	suite.Require().NoError(err)

	user, token, err := suite.service.Login(LoginInput{
		Username: "alice",
		Password: "password123",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", user.Username)
	assert.NotEmpty(suite.T(), token)

	claims := jwt.MapClaims{}
	parsed, err := jwt.NewParser().ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), parsed.Valid)
	assert.Equal(suite.T(), "alice", claims["sub"])
	assert.Equal(suite.T(), "USER", claims["role"])
}

// TestLogin_WrongPassword tests rejection of bad credentials
func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	_, err := suite.service.Signup(SignupInput{Username: "alice", Password: "password123"})
	suite.Require().NoError(err)

	_, _, err = suite.service.Login(LoginInput{
		Username: "alice",
		Password: "wrongpassword",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestLogin_UnknownUser tests that unknown users get the same error as a
// wrong password
func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	_, _, err := suite.service.Login(LoginInput{
		Username: "ghost",
		Password: "password123",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

// TestGetUser_NotFound tests lookup of a missing user
func (suite *AuthServiceTestSuite) TestGetUser_NotFound() {
	_, err := suite.service.GetUser("ghost")

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

// TestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
