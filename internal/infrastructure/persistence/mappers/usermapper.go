package mappers

import (
	"orbit/internal/domain/user"
	"orbit/internal/infrastructure/persistence/models"
	"orbit/internal/shared/authorization"
	"orbit/internal/shared/biztime"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		Status:       u.Status().String(),
		CreatedAt:    biztime.ToUnixMilli(u.CreatedAt()),
		UpdatedAt:    biztime.ToUnixMilli(u.UpdatedAt()),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Name,
		model.Email,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		user.Status(model.Status),
		biztime.FromUnixMilli(model.CreatedAt),
		biztime.FromUnixMilli(model.UpdatedAt),
	)
}
