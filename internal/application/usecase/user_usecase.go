package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

// UserUseCase is the admin-side user management surface.
type UserUseCase struct {
	users    repository.UserRepository
	activity *ActivityUseCase
}

// NewUserUseCase builds the usecase.
func NewUserUseCase(users repository.UserRepository, activity *ActivityUseCase) *UserUseCase {
	return &UserUseCase{users: users, activity: activity}
}

// List returns a page of users matching the search and role filters.
func (uc *UserUseCase) List(in dto.UserListRequest) (*dto.UserListResponse, error) {
	in.Normalize(10)
	f := repository.UserFilter{Search: in.Search, Role: in.Role}

	total, err := uc.users.Count(f)
	if err != nil {
		return nil, err
	}
	rows, err := uc.users.List(f, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Users:      out,
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Get returns one user.
func (uc *UserUseCase) Get(id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(u), nil
}

// Create provisions an account with an explicit role (admin only at the
// route level).
func (uc *UserUseCase) Create(actor domain.Identity, in dto.CreateUserRequest, meta dto.RequestMeta) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: 사용자명, 비밀번호, 이름은 필수입니다", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Company:      in.Company,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}

	uc.activity.Record(actor.UserID, "create_user", "user", user.ID, map[string]any{
		"target_username": user.Username,
		"target_name":     user.Name,
		"target_role":     user.Role,
	}, meta)

	return auth.ToUserResponse(user), nil
}

// Update applies a partial update. Role and is_active changes are honored
// only for admin actors; a password change is re-hashed.
func (uc *UserUseCase) Update(actor domain.Identity, id string, in dto.UpdateUserRequest, meta dto.RequestMeta) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	changed := false
	changes := map[string]any{"target_username": user.Username}

	if in.Name != nil {
		user.Name = *in.Name
		changes["name"] = *in.Name
		changed = true
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
		changes["phone"] = *in.Phone
		changed = true
	}
	if in.Company != nil {
		user.Company = *in.Company
		changes["company"] = *in.Company
		changed = true
	}
	if in.Role != nil && actor.Role == entity.RoleAdmin {
		if !entity.IsValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *in.Role)
		}
		user.Role = *in.Role
		changes["role"] = *in.Role
		changed = true
	}
	if in.IsActive != nil && actor.Role == entity.RoleAdmin {
		user.IsActive = *in.IsActive
		changes["is_active"] = *in.IsActive
		changed = true
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changes["password"] = "[변경됨]"
		changed = true
	}
	if !changed {
		return nil, fmt.Errorf("%w: 업데이트할 필드가 없습니다", domain.ErrInvalidInput)
	}

	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}

	uc.activity.Record(actor.UserID, "update_user", "user", id, changes, meta)
	return auth.ToUserResponse(user), nil
}

// Delete removes a user. Self-deletion is rejected; a user who still owns
// orders cannot be deleted (FK restrict), while their activity logs cascade.
func (uc *UserUseCase) Delete(actor domain.Identity, id string, meta dto.RequestMeta) error {
	if actor.UserID == id {
		return fmt.Errorf("%w: 자기 자신은 삭제할 수 없습니다", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.users.Delete(id); err != nil {
		return err
	}

	uc.activity.Record(actor.UserID, "delete_user", "user", id, map[string]any{
		"target_username": user.Username,
	}, meta)
	return nil
}
