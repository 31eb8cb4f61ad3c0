package usecase

import (
	"context"

	"gamebazaar/internal/domain/entity"
	"gamebazaar/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ResolveActor maps an authenticated user id to the actor acting on requests.
func (uc *UserUseCase) ResolveActor(ctx context.Context, userID string) (entity.Actor, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Actor{}, err
	}
	return user.Actor(), nil
}
