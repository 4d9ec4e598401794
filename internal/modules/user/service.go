package user

import (
	"context"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
	"shareit/internal/repository"
)

type Service struct {
	users UserRepository
	log   *zerolog.Logger
}

func NewService(users UserRepository, log *zerolog.Logger) *Service {
	return &Service{users: users, log: log}
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u := &domain.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Conflict("a user with this email already exists")
		}
		return nil, err
	}
	s.log.Debug().Int64("user_id", u.ID).Msg("user created")

	resp := toUserResponse(*u)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if err := s.users.Update(ctx, u); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Conflict("a user with this email already exists")
		}
		return nil, err
	}

	resp := toUserResponse(*u)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	resp := toUserResponse(*u)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	resp := toUserResponse(*u)
	return &resp, nil
}
