package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"learnhub/internal/entity"
	"learnhub/internal/repo/persistent"
	"learnhub/internal/validator"
	"learnhub/pkg/apperror"
	"learnhub/pkg/cache"
	"learnhub/pkg/jwt"
	"learnhub/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string

	// TempFilePath points at the locally saved multipart upload, empty
	// when registration carries no image. The flow removes it on every
	// exit path.
	TempFilePath string
	ContentType  string
}

type UpdateProfileInput struct {
	Username *string
	Email    *string
	Password *string

	TempFilePath string
	ContentType  string
}

type UserUseCase interface {
	Register(input RegisterInput) (*entity.User, string, error)
	Login(email, password string) (string, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	GetUser(userID string) (*entity.User, error)
	ListUsers(limit, skip int) ([]*entity.User, error)
	UpdateProfile(userID string, input UpdateProfileInput) (*entity.User, error)
	DeleteUser(userID string) error
}

type userUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	storage     ObjectStorage
	mailer      EmailSender
	queueClient EmailQueue
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage ObjectStorage,
	mailer EmailSender,
	queueClient EmailQueue,
	redisClient *redis.Client,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		storage:     storage,
		mailer:      mailer,
		queueClient: queueClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *userUseCase) Register(input RegisterInput) (*entity.User, string, error) {
	if messages := validator.ValidateRegistration(input.Username, input.Email, input.Password, input.Role); len(messages) > 0 {
		uc.removeTemp(input.TempFilePath)
		return nil, "", apperror.Validation(messages...)
	}

	_, err := uc.userRepo.FindByEmailOrUsername(input.Email, input.Username)
	if err == nil {
		uc.removeTemp(input.TempFilePath)
		return nil, "", apperror.Conflict("User or Email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		uc.removeTemp(input.TempFilePath)
		uc.logger.Error("Failed to check uniqueness for %s: %v", input.Email, err)
		return nil, "", apperror.Internal(err)
	}

	profilePicture := entity.DefaultProfilePicture
	if input.TempFilePath != "" {
		url, err := uc.uploadPicture(input.TempFilePath, input.ContentType)
		if err != nil {
			return nil, "", err
		}
		profilePicture = url
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperror.Internal(err)
	}

	role := entity.UserRole(input.Role)
	if role == "" {
		role = entity.RoleStudent
	}

	user := &entity.User{
		Username:       input.Username,
		Email:          input.Email,
		Password:       string(hashedPassword),
		Role:           role,
		ProfilePicture: profilePicture,
	}

	if err := uc.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperror.Conflict("User or Email already exists")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperror.Internal(err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperror.Internal(err)
	}

	// Fire-after-commit, best-effort: a failed email never rolls back or
	// surfaces to the client.
	uc.sendEmail("welcome", user.Email, user.Username)

	user.Password = ""
	return user, token, nil
}

func (uc *userUseCase) Login(email, password string) (string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.NotFound("User not found")
		}
		uc.logger.Error("Failed to look up user %s: %v", email, err)
		return "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Unauthorized("Invalid password")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return "", apperror.Internal(err)
	}

	return token, nil
}

// Logout denylists the presented token until its natural expiry. Sessions
// are stateless, so without redis this is a no-op success.
func (uc *userUseCase) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if uc.redisClient == nil {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := cache.DenyToken(ctx, uc.redisClient, token, ttl); err != nil {
		uc.logger.Error("Failed to denylist token: %v", err)
		return apperror.Internal(err)
	}
	return nil
}

func (uc *userUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	user.Password = ""
	return user, nil
}

func (uc *userUseCase) ListUsers(limit, skip int) ([]*entity.User, error) {
	users, err := uc.userRepo.List(limit, skip)
	if err != nil {
		uc.logger.Error("Failed to list users: %v", err)
		return nil, apperror.Internal(err)
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (uc *userUseCase) UpdateProfile(userID string, input UpdateProfileInput) (*entity.User, error) {
	if messages := validator.ValidateProfileUpdate(input.Username, input.Email, input.Password); len(messages) > 0 {
		uc.removeTemp(input.TempFilePath)
		return nil, apperror.Validation(messages...)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		uc.removeTemp(input.TempFilePath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			uc.removeTemp(input.TempFilePath)
			uc.logger.Error("Failed to hash password: %v", err)
			return nil, apperror.Internal(err)
		}
		user.Password = string(hashedPassword)
	}

	oldPicture := user.ProfilePicture
	pictureChanged := false
	if input.TempFilePath != "" {
		url, err := uc.uploadPicture(input.TempFilePath, input.ContentType)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
		pictureChanged = true
	}

	if err := uc.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User or Email already exists")
		}
		uc.logger.Error("Failed to update user %s: %v", userID, err)
		return nil, apperror.Internal(err)
	}

	// The old object is removed only after the database write succeeded,
	// so a failed update never strands the user without an image. The
	// placeholder is shared and never deleted.
	if pictureChanged && oldPicture != entity.DefaultProfilePicture {
		if key := uc.storage.KeyFromURL(oldPicture); key != "" {
			if err := uc.storage.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete previous profile picture %s: %v", key, err)
			}
		}
	}

	if pictureChanged {
		uc.sendEmail("picture_updated", user.Email, user.Username)
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) DeleteUser(userID string) error {
	count, err := uc.userRepo.Delete(userID)
	if err != nil {
		uc.logger.Error("Failed to delete user %s: %v", userID, err)
		return apperror.Internal(err)
	}
	if count == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

// uploadPicture moves the saved temp file into object storage. The temp
// file is removed on every path, success or failure.
func (uc *userUseCase) uploadPicture(tempPath, contentType string) (string, error) {
	defer uc.removeTemp(tempPath)

	file, err := os.Open(tempPath)
	if err != nil {
		uc.logger.Error("Failed to open temp upload %s: %v", tempPath, err)
		return "", apperror.Upload("Failed to upload profile picture", err)
	}
	defer file.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(tempPath))
	url, err := uc.storage.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload profile picture: %v", err)
		return "", apperror.Upload("Failed to upload profile picture", err)
	}

	return url, nil
}

func (uc *userUseCase) removeTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		uc.logger.Warn("Failed to remove temp upload %s: %v", path, err)
	}
}

func (uc *userUseCase) sendEmail(kind, to, username string) {
	if uc.queueClient != nil {
		task := map[string]interface{}{
			"type":     kind,
			"to":       to,
			"username": username,
			"priority": 5,
		}
		go func() {
			if err := uc.queueClient.PublishEmailTask(task); err != nil {
				uc.logger.Error("[EMAIL QUEUE] Failed to publish %s email task for %s: %v", kind, to, err)
			}
		}()
		return
	}

	if uc.mailer == nil {
		return
	}

	go func() {
		var err error
		switch kind {
		case "welcome":
			err = uc.mailer.SendWelcome(to, username)
		case "picture_updated":
			err = uc.mailer.SendPictureUpdated(to, username)
		}
		if err != nil {
			uc.logger.Error("Failed to send %s email to %s: %v", kind, to, err)
		}
	}()
}
