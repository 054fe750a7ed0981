// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inccombinator/platform-backend/internal/config"
	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.User{}))
	suite.db = db

	utils.SetJWTSecret("test-secret")
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  24,
			RefreshTokenTTL: 168,
		},
	}
	suite.service = NewAuthService(db, cfg)
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "StrongPass123",
		Role:     "startup",
	}
}

func (suite *AuthServiceTestSuite) TestRegisterAndLogin() {
	resp, err := suite.service.Register(validRegisterRequest())
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(models.UserRoleStartup, resp.User.Role)

	login, err := suite.service.Login(&LoginRequest{
		Email:    "ada@example.com",
		Password: "StrongPass123",
	})
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, login.User.ID)
	suite.NotNil(login.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.service.Register(validRegisterRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Register(validRegisterRequest())
	suite.Require().Error(err)
	suite.Contains(err.Error(), "already exists")
}

func (suite *AuthServiceTestSuite) TestRegisterWeakPassword() {
	req := validRegisterRequest()
	req.Password = "weak"

	_, err := suite.service.Register(req)
	suite.Require().Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.service.Register(validRegisterRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "ada@example.com",
		Password: "WrongPass123",
	})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "invalid credentials")
}

func (suite *AuthServiceTestSuite) TestLoginSuspendedAccount() {
	resp, err := suite.service.Register(validRegisterRequest())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.UserStatusSuspended).Error)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "ada@example.com",
		Password: "StrongPass123",
	})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "suspended")
}

func (suite *AuthServiceTestSuite) TestRefreshToken() {
	resp, err := suite.service.Register(validRegisterRequest())
	suite.Require().NoError(err)

	refreshed, err := suite.service.RefreshToken(resp.RefreshToken)
	suite.Require().NoError(err)
	suite.Equal(resp.User.ID, refreshed.User.ID)
	suite.NotEmpty(refreshed.AccessToken)

	_, err = suite.service.RefreshToken("not-a-token")
	suite.Require().Error(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
