package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"CarePoint/database"

	"github.com/google/uuid"
)

type UserService interface {
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserEmail(ctx context.Context, userID int64, newEmail string) error
	UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUserCache(ctx context.Context, identifier string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID int64, username, email string) error
	GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepository repositories.UserRepository
}

func NewUserService(userRepository repositories.UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

// ValidateAndCreateUser registers a new account. Patient-role accounts must
// reference an existing patient record so the token can carry the patient ID.
func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	lockKey := fmt.Sprintf("user_lock:%s", user.Email)
	lockValue := uuid.New().String() // Generate a unique lock value
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := utils.ValidateUserData(*user); err != nil {
		return err
	}

	exists, err := s.userRepository.EmailExists(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("email already in use")
	}

	if err := s.userRepository.ValidateRoleID(ctx, user.RoleID); err != nil {
		return err
	}
	if user.RoleID == models.RolePatientID {
		if user.PatientID == "" {
			return errors.New("patient accounts require a patient record")
		}
		if err := s.userRepository.ValidatePatientID(ctx, user.PatientID); err != nil {
			return err
		}
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	return s.userRepository.CreateUser(ctx, user)
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepository.AuthenticateUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepository.GetUserByUsername(ctx, username)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepository.GetUserByEmail(ctx, email)
}

func (s *userService) UpdateUserEmail(ctx context.Context, userID int64, newEmail string) error {
	return s.userRepository.UpdateUserEmail(ctx, userID, newEmail)
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	return s.userRepository.UpdateUserPassword(ctx, userID, hashedPassword)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepository.GetAllUsers(ctx)
}

func (s *userService) DeleteUserCache(ctx context.Context, identifier string) error {
	return s.userRepository.DeleteUserCache(ctx, identifier)
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepository.GetUserByID(ctx, userID)
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID int64, username, email string) error {
	return s.userRepository.UpdateUserProfile(ctx, userID, username, email)
}

func (s *userService) GetUserPermissions(ctx context.Context, userID int64) ([]models.Permission, error) {
	return s.userRepository.GetUserPermissions(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	return s.userRepository.DeleteUser(ctx, userID)
}
