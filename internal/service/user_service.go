package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/repository"
)

type UserService struct {
	Repo    *repository.UserRepository
	Storage *StorageService
}

func NewUserService(repo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{Repo: repo, Storage: storage}
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().Unix(), ext)

	url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user, err := s.Repo.FindByID(userID)
	if err != nil {
		return "", err
	}
	user.Avatar = url
	if err := s.Repo.Update(user); err != nil {
		return "", err
	}

	return url, nil
}

func (s *UserService) ListUsers(page, limit int, role, name string) ([]model.User, int64, error) {
	return s.Repo.List(page, limit, role, name)
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	return s.Repo.SetDisabled(userID, disabled)
}
