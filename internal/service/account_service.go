package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/utils"
	"github.com/kutuphane/locallibrary/internal/validator"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

// resetTokenExpiry bounds how long the step-1 result of the password
// reset flow stays usable.
const resetTokenExpiry = 15 * time.Minute

type AccountService struct {
	userRepo    *repository.UserRepository
	tokenSecret string
}

func NewAccountService(userRepo *repository.UserRepository, tokenSecret string) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		tokenSecret: tokenSecret,
	}
}

// RegisterInput holds the raw form fields of the registration form.
type RegisterInput struct {
	Username        string
	Fullname        string
	Email           string
	Role            string
	Password        string
	PasswordConfirm string
}

func (in *RegisterInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(len(in.Username) >= 3, "username", "Username must be at least 3 characters long.")
	v.Check(len(in.Fullname) >= 3, "fullname", "Full name must be at least 3 characters long.")
	v.Check(validator.Matches(in.Email, validator.EmailRX), "email", "Please enter a valid email address.")
	v.Check(in.Role != "", "role", "A role must be selected for the user.")
	if in.Role != "" {
		role, err := strconv.Atoi(in.Role)
		v.Check(err == nil && role >= 0 && role <= 2, "role", "Invalid role.")
	}
	v.Check(passwordLengthOK(in.Password), "password", "Password must be between 4-32 characters long.")
	v.Check(passwordLengthOK(in.PasswordConfirm), "password_confirm", "Password must be between 4-32 characters long.")
	if in.Password != in.PasswordConfirm {
		v.AddError("password", "Passwords do not match.")
	}
	return v
}

func passwordLengthOK(password string) bool {
	return len(password) >= 4 && len(password) <= 32
}

// Register validates the form input and creates a new account with a
// freshly salted password hash. A non-nil Validator means validation
// failed and nothing was stored.
func (s *AccountService) Register(in RegisterInput) (*models.User, *validator.Validator, error) {
	if v := in.validate(); !v.Valid() {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", in.Username),
		)
		return nil, v, nil
	}

	existing, err := s.userRepo.GetByUsername(in.Username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", in.Username),
			zap.Error(err),
		)
		return nil, nil, err
	}
	if existing != nil {
		v := validator.New()
		v.AddError("username", "Username already taken. Choose another one.")
		return nil, v, nil
	}

	salt, hash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, nil, err
	}

	role, _ := strconv.Atoi(in.Role)
	user := &models.User{
		ID:       uuid.NewString(),
		Username: in.Username,
		Fullname: in.Fullname,
		Email:    in.Email,
		Role:     models.Role(role),
		Salt:     salt,
		Hash:     hash,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("username", in.Username),
			zap.Error(err),
		)
		return nil, nil, err
	}

	logger.Log.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil, nil
}

// Login checks the credentials against the stored salt and hash.
// Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials.
func (s *AccountService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.Salt, user.Hash) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID),
		)
		return nil, ErrInvalidCredentials
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, nil
}

// Profile looks up a user by id.
func (s *AccountService) Profile(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ProfileUpdateInput holds the raw form fields of the profile update
// form. Leaving both password fields empty keeps the current password.
type ProfileUpdateInput struct {
	Username        string
	Fullname        string
	Email           string
	Role            string
	Password        string
	PasswordConfirm string
}

func (in *ProfileUpdateInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(len(in.Username) >= 3, "username", "Username must be at least 3 characters long.")
	v.Check(len(in.Fullname) >= 3, "fullname", "Full name must be at least 3 characters long.")
	v.Check(validator.Matches(in.Email, validator.EmailRX), "email", "Please enter a valid email address.")
	v.Check(in.Role != "", "role", "A role must be selected for the user.")

	// Password rules only apply when the user wants to change it
	if in.Password != "" || in.PasswordConfirm != "" {
		v.Check(passwordLengthOK(in.Password), "password", "Password must be between 4-32 characters long.")
		v.Check(passwordLengthOK(in.PasswordConfirm), "password_confirm", "Password must be between 4-32 characters long.")
		if in.Password != in.PasswordConfirm {
			v.AddError("password", "Passwords do not match.")
		}
	}
	return v
}

// UpdateProfile validates the form input and replaces the stored
// record. The password only changes when both password fields were
// filled in.
func (s *AccountService) UpdateProfile(id string, in ProfileUpdateInput) (*models.User, *validator.Validator, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	if v := in.validate(); !v.Valid() {
		return nil, v, nil
	}

	user.Username = in.Username
	user.Fullname = in.Fullname
	user.Email = in.Email
	role, _ := strconv.Atoi(in.Role)
	user.Role = models.Role(role)

	if in.Password != "" {
		salt, hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, nil, err
		}
		user.Salt = salt
		user.Hash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		logger.Log.Error("Failed to update user",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return nil, nil, err
	}

	logger.Log.Info("User profile updated",
		zap.String("user_id", id),
	)

	return user, nil, nil
}

// ResetBegin is step one of the password reset: only an exact
// username+email match yields a token carrying the user forward into
// step two.
func (s *AccountService) ResetBegin(username, email string) (user *models.User, token string, v *validator.Validator, err error) {
	v = validator.New()
	v.Check(len(username) >= 3, "username", "Username must be at least 3 characters long.")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "Please enter a valid email address.")
	if !v.Valid() {
		return nil, "", v, nil
	}

	user, err = s.userRepo.GetByUsernameAndEmail(username, email)
	if err != nil {
		return nil, "", nil, err
	}
	if user == nil {
		logger.Log.Warn("Password reset lookup failed",
			zap.String("username", username),
		)
		v.AddError("username", "The user does not exist or credentials did not match a user. Try again.")
		return nil, "", v, nil
	}

	token, err = utils.GenerateResetToken(user.ID, s.tokenSecret, resetTokenExpiry)
	if err != nil {
		logger.Log.Error("Failed to generate reset token",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", nil, err
	}

	return user, token, nil, nil
}

// ResetFinish is step two: a valid token plus a confirmed new password
// re-hashes the credentials. The role is taken from the stored record,
// never from the form.
func (s *AccountService) ResetFinish(token, password, passwordConfirm string) (*models.User, *validator.Validator, error) {
	claims, err := utils.ValidateResetToken(token, s.tokenSecret)
	if err != nil {
		logger.Log.Warn("Password reset token rejected", zap.Error(err))
		return nil, nil, ErrInvalidCredentials
	}

	v := validator.New()
	v.Check(passwordLengthOK(password), "password", "Password must be between 4-32 characters long.")
	v.Check(passwordLengthOK(passwordConfirm), "password_confirm", "Password must be between 4-32 characters long.")
	if password != passwordConfirm {
		v.AddError("password", "Passwords do not match.")
	}
	if !v.Valid() {
		return nil, v, nil
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrNotFound
	}

	salt, hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}
	user.Salt = salt
	user.Hash = hash

	if err := s.userRepo.Update(user); err != nil {
		logger.Log.Error("Failed to update password",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	logger.Log.Info("Password reset completed",
		zap.String("user_id", user.ID),
	)

	return user, nil, nil
}
