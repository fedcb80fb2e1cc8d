package service

import (
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"capstonehub_backend/internals/configs"
	"capstonehub_backend/internals/constants"
	authModel "capstonehub_backend/internals/features/users/auth/model"
	userModel "capstonehub_backend/internals/features/users/user/model"
)

type LoginResult struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *userModel.UserModel `json:"user"`
}

// Register creates a STUDENT account. Advisor/Admin roles are only granted
// afterwards by an admin.
func Register(db *gorm.DB, userName, fullName, email, password string, studentNumber *string) (*userModel.UserModel, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := &userModel.UserModel{
		UserName:      strings.TrimSpace(userName),
		FullName:      strings.TrimSpace(fullName),
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Password:      hashed,
		Role:          constants.RoleStudent,
		StudentNumber: studentNumber,
	}
	user.SetDefaultValues()

	if err := db.Create(user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return nil, fiber.NewError(fiber.StatusConflict, "Email or username already registered")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}
	return user, nil
}

// Login authenticates by email or username + password and issues a token pair.
func Login(db *gorm.DB, identifier, password string) (*LoginResult, error) {
	identifier = strings.TrimSpace(identifier)

	var user userModel.UserModel
	err := db.Where("email = ? OR user_name = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}
	if !CheckPassword(user.Password, password) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	return issueTokenPair(db, &user)
}

// LoginGoogle verifies a Google ID token and signs the matching account in,
// creating a STUDENT account on first sight.
func LoginGoogle(db *gorm.DB, idToken string) (*LoginResult, error) {
	clientID := strings.TrimSpace(configs.GoogleClientID)
	if clientID == "" {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	sub := claimSet.Sub

	var user userModel.UserModel
	err = db.Where("google_id = ? OR email = ?", sub, email).First(&user).Error
	switch {
	case err == nil:
		if user.GoogleID == nil {
			_ = db.Model(&user).Update("google_id", sub).Error
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = userModel.UserModel{
			UserName: email,
			FullName: claimSet.Name,
			Email:    email,
			Password: "-", // no local password for Google accounts
			GoogleID: &sub,
			Role:     constants.RoleStudent,
		}
		user.SetDefaultValues()
		if err := db.Create(&user).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
		}
	default:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}

	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}
	return issueTokenPair(db, &user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func Refresh(db *gorm.DB, refreshToken string) (*LoginResult, error) {
	hash, err := ComputeRefreshHash(refreshToken)
	if err != nil {
		return nil, err
	}

	var stored authModel.RefreshTokenModel
	err = db.Where("token_hash = ? AND revoked_at IS NULL", hash).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to look up refresh token")
	}
	if time.Now().After(stored.ExpiredAt) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token expired")
	}

	var user userModel.UserModel
	if err := db.Where("id = ?", stored.UserID).First(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	var result *LoginResult
	err = db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&stored).Update("revoked_at", &now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to rotate refresh token")
		}
		result, err = issueTokenPair(tx, &user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout blacklists the presented access token and revokes the user's
// outstanding refresh tokens.
func Logout(db *gorm.DB, userID uuid.UUID, accessToken string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		row := &authModel.TokenBlacklistModel{
			ID:        uuid.New(),
			Token:     accessToken,
			ExpiredAt: TokenExpiry(accessToken),
		}
		if err := tx.Create(row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to blacklist token")
		}

		now := time.Now()
		if err := tx.Model(&authModel.RefreshTokenModel{}).
			Where("user_id = ? AND revoked_at IS NULL", userID).
			Update("revoked_at", &now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke refresh tokens")
		}
		return nil
	})
}

func issueTokenPair(db *gorm.DB, user *userModel.UserModel) (*LoginResult, error) {
	accessToken, err := GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	hash, err := ComputeRefreshHash(refreshToken)
	if err != nil {
		return nil, err
	}

	row := &authModel.RefreshTokenModel{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiredAt: time.Now().Add(RefreshTTL),
	}
	if err := db.Create(row).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
