package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"culinary-hub/internal/entity"
	"culinary-hub/internal/repo/persistent"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type CreateUserInput struct {
	FullName string
	Username string
	Email    string
	Phone    string
	Password string
}

// UpdateUserInput leaves nil fields unchanged.
type UpdateUserInput struct {
	FullName *string
	Username *string
	Email    *string
	Phone    *string
}

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*entity.User, error)
	List(ctx context.Context, page entity.Page) ([]*entity.User, int64, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	// AccountActive is false once the user has been deleted.
	AccountActive(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, actor entity.Actor, id uint, input UpdateUserInput) (*entity.User, error)
	SetRole(ctx context.Context, actor entity.Actor, id uint, role entity.Role) (*entity.User, error)
	Delete(ctx context.Context, actor entity.Actor, id uint) error
	UploadAvatar(ctx context.Context, actor entity.Actor, r io.Reader) (string, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	cache    cache.Store
	uploader Uploader
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, store cache.Store, uploader Uploader, logger *logger.Logger) UserUseCase {
	if store == nil {
		store = cache.NopStore{}
	}
	return &userUseCase{
		userRepo: userRepo,
		cache:    store,
		uploader: uploader,
		logger:   logger,
	}
}

func (uc *userUseCase) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		FullName:     strings.TrimSpace(input.FullName),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hashedPassword),
		Role:         entity.RoleUser,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("User created: id=%d username=%s", user.ID, user.Username)
	return user, nil
}

func (uc *userUseCase) List(ctx context.Context, page entity.Page) ([]*entity.User, int64, error) {
	return uc.userRepo.List(ctx, page)
}

func (uc *userUseCase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUseCase) AccountActive(ctx context.Context, id uint) (bool, error) {
	_, err := uc.userRepo.GetByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *userUseCase) Update(ctx context.Context, actor entity.Actor, id uint, input UpdateUserInput) (*entity.User, error) {
	if !actor.Owns(id) {
		return nil, entity.Forbidden("you can only update your own profile")
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) SetRole(ctx context.Context, actor entity.Actor, id uint, role entity.Role) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, entity.Forbidden("only admins can change roles")
	}
	if !role.Valid() {
		return nil, entity.Invalid("role must be one of User, Chef, Admin")
	}
	if err := uc.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	uc.logger.Info("Role changed: user=%d role=%s by=%d", id, role, actor.UserID)
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *userUseCase) Delete(ctx context.Context, actor entity.Actor, id uint) error {
	if !actor.Owns(id) {
		return entity.Forbidden("you can only delete your own account")
	}
	courseIDs, err := uc.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// the user's courses went with them
	if len(courseIDs) > 0 {
		keys := make([]string, len(courseIDs))
		for i, courseID := range courseIDs {
			keys[i] = courseDetailKey(courseID)
		}
		if err := uc.cache.Delete(ctx, keys...); err != nil {
			uc.logger.Warn("Failed to drop cached courses of user %d: %v", id, err)
		}
	}

	uc.logger.Info("User deleted: id=%d by=%d", id, actor.UserID)
	return nil
}

func (uc *userUseCase) UploadAvatar(ctx context.Context, actor entity.Actor, r io.Reader) (string, error) {
	url, err := uc.uploader.Upload(ctx, FolderAvatars, r)
	if err != nil {
		return "", err
	}
	if err := uc.userRepo.UpdateAvatar(ctx, actor.UserID, url); err != nil {
		return "", err
	}
	return url, nil
}
