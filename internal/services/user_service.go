package services

import (
	"math"

	"shopx/internal/models"
	"shopx/internal/repositories"
)

// UserPage is one page of a user listing, exposing profiles only.
type UserPage struct {
	Users      []models.Profile `json:"users"`
	TotalPages int              `json:"total_pages"`
	PageSize   int              `json:"page_size"`
	Page       int              `json:"page"`
}

// UserService handles the admin-facing user directory.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns a page of user profiles, newest first.
func (s *UserService) List(page int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}

	users, count, err := s.repo.List(page, defaultPageSize)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}

	return &UserPage{
		Users:      profiles,
		TotalPages: int(math.Ceil(float64(count) / float64(defaultPageSize))),
		PageSize:   defaultPageSize,
		Page:       page,
	}, nil
}

// Get returns the profile of a single user.
func (s *UserService) Get(id int) (*models.Profile, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}
