package services

import (
	"time"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/models"
	"tira/backend/internal/query"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type UserService interface {
	ListUsers(db *gorm.DB, filter models.UserFilter, page query.Page) (query.Result[models.User], error)
	CreateUser(db *gorm.DB, input CreateUserInput) (models.User, error)
	UpdateUser(db *gorm.DB, userID string, input UpdateUserInput) (models.User, error)
	DeleteUser(db *gorm.DB, userID string) error
}

type UserServiceImpl struct{}

func NewUserService() *UserServiceImpl {
	return &UserServiceImpl{}
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, filter models.UserFilter, page query.Page) (query.Result[models.User], error) {
	result, err := query.SelectPage[models.User](db, filter, "created_at DESC", page)
	if err != nil {
		return result, err
	}
	for i := range result.Data {
		result.Data[i] = result.Data[i].Safe()
	}
	return result, nil
}

func (s *UserServiceImpl) CreateUser(db *gorm.DB, input CreateUserInput) (models.User, error) {
	if !isValidUsername(input.Username) {
		return models.User{}, apperrors.Validation("Invalid username")
	}
	if !isValidEmail(input.Email) {
		return models.User{}, apperrors.Validation("Invalid email")
	}
	role := models.Role(input.Role)
	if !role.Valid() {
		return models.User{}, apperrors.Validation("Invalid role")
	}
	if !isValidPassword(input.Password) {
		return models.User{}, apperrors.Validation("Invalid password")
	}

	// Pre-checks give deterministic conflicts; the unique constraints
	// remain the backstop for races.
	if _, found, err := query.SelectOne[models.User](db, models.UserFilter{Email: &input.Email}); err != nil {
		return models.User{}, err
	} else if found {
		return models.User{}, apperrors.Conflict("Email already exists")
	}
	var existing []models.User
	if err := db.Where("username = ?", input.Username).Limit(1).Find(&existing).Error; err != nil {
		return models.User{}, err
	}
	if len(existing) > 0 {
		return models.User{}, apperrors.Conflict("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		UserID:    newID(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
		PwdHash:   string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user.Safe(), nil
}

func (s *UserServiceImpl) UpdateUser(db *gorm.DB, userID string, input UpdateUserInput) (models.User, error) {
	if input.Username == nil && input.Email == nil && input.Password == nil {
		return models.User{}, apperrors.Validation("No fields to update")
	}

	_, found, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &userID})
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, apperrors.NotFound("User")
	}

	updates := map[string]any{}
	if input.Username != nil {
		if !isValidUsername(*input.Username) {
			return models.User{}, apperrors.Validation("Invalid username")
		}
		var clash []models.User
		if err := db.Where("username = ? AND user_id <> ?", *input.Username, userID).Limit(1).Find(&clash).Error; err != nil {
			return models.User{}, err
		}
		if len(clash) > 0 {
			return models.User{}, apperrors.Conflict("Username already exists")
		}
		updates["username"] = *input.Username
	}
	if input.Email != nil {
		if !isValidEmail(*input.Email) {
			return models.User{}, apperrors.Validation("Invalid email")
		}
		var clash []models.User
		if err := db.Where("email = ? AND user_id <> ?", *input.Email, userID).Limit(1).Find(&clash).Error; err != nil {
			return models.User{}, err
		}
		if len(clash) > 0 {
			return models.User{}, apperrors.Conflict("Email already exists")
		}
		updates["email"] = *input.Email
	}
	if input.Password != nil {
		if !isValidPassword(*input.Password) {
			return models.User{}, apperrors.Validation("Invalid password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		updates["pwd_hash"] = string(hash)
	}

	if err := db.Model(&models.User{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	updated, _, err := query.SelectOne[models.User](db, models.UserFilter{UserID: &userID})
	if err != nil {
		return models.User{}, err
	}
	return updated.Safe(), nil
}

func (s *UserServiceImpl) DeleteUser(db *gorm.DB, userID string) error {
	res := db.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("User")
	}
	return nil
}
