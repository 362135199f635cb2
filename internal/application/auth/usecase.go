package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
	"github.com/termpro2000/fdapp/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase authentication flows: register, login, session introspection.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the usecase.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates a user account with the default role: hashes the password
// with bcrypt and persists. Returns ErrUsernameTaken when the username
// already exists.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
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
		Role:         entity.RoleUser, // self-registration never grants elevated roles
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique index on username is the authoritative guard against a
	// concurrent registration with the same name.
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "회원가입이 완료되었습니다.",
		UserID:  user.ID,
	}, nil
}

// Login verifies username/password, refreshes last_login and issues a JWT.
// A wrong username, a wrong password and a deactivated account all come back
// as ErrUnauthorized; the response never says which it was.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.userRepo.TouchLastLogin(user.ID); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "로그인 성공",
		Token:   token,
		User:    *ToUserResponse(user),
	}, nil
}

// Me returns the profile behind a verified identity.
func (uc *AuthUseCase) Me(identity domain.Identity) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// CheckUsername reports whether a username is still available.
func (uc *AuthUseCase) CheckUsername(username string) (*dto.UsernameCheckResponse, error) {
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.UsernameCheckResponse{Available: false, Message: "이미 사용 중인 아이디입니다."}, nil
	}
	return &dto.UsernameCheckResponse{Available: true, Message: "사용 가능한 아이디입니다."}, nil
}

// ToUserResponse maps a user entity onto its public view.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Phone:     u.Phone,
		Company:   u.Company,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
