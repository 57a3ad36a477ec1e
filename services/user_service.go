package services

import (
	"context"
	"errors"
	"strings"

	"revuea.app/models"
	"revuea.app/repositories"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound     UserServiceError = "kullanıcı bulunamadı"
	ErrUserInvalidInput UserServiceError = "geçersiz girdi verisi"
	ErrUserUpdateFailed UserServiceError = "profil güncellenemedi"
)

// IUserService profil işlemleri için arayüz.
type IUserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateName(ctx context.Context, userID uint, name string) (*models.User, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateName profil adını günceller. Ad boş olamaz.
func (s *UserService) UpdateName(ctx context.Context, userID uint, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserInvalidInput
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Name = name
	if err := s.repo.Update(models.ContextWithUserID(ctx, userID), user); err != nil {
		return nil, ErrUserUpdateFailed
	}
	return user, nil
}
