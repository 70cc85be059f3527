package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jkorir-dev/duka-pos/internal/domain/entity"
	"github.com/jkorir-dev/duka-pos/internal/domain/repository"
	"github.com/jkorir-dev/duka-pos/pkg/apperror"
	"github.com/jkorir-dev/duka-pos/pkg/utils"
	"go.uber.org/zap"
)

// Default credential created when the user directory is empty. It must be
// changed after the first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// AuthService holds the user directory and answers authentication and
// authorization questions. Passwords are stored as bcrypt hashes; the
// directory is flushed through the persistence gateway after every
// mutation.
type AuthService struct {
	repo       repository.UserRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger

	mu    sync.Mutex
	users map[string]*entity.User
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.UserRepository, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		jwtManager: jwtManager,
		log:        log,
		users:      make(map[string]*entity.User),
	}
}

// LoginOutput represents a successful login
type LoginOutput struct {
	User  *entity.User
	Token string
}

// UserInfo is a directory listing row; it never carries the password hash
type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Load replaces the in-memory directory with the persisted aggregate. A
// read failure is logged and treated as an empty directory.
func (s *AuthService) Load(ctx context.Context) error {
	users, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load user directory, starting empty", zap.Error(err))
		users = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*entity.User, len(users))
	for i := range users {
		u := users[i]
		s.users[u.Username] = &u
	}
	return nil
}

// BootstrapIfEmpty creates the default admin account when no users exist.
// It reports whether the account was created so the caller can surface the
// credential. This only fires on a genuinely empty directory, not on every
// process start.
func (s *AuthService) BootstrapIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if len(s.users) > 0 {
		s.mu.Unlock()
		return false, nil
	}

	hash, err := utils.HashPassword(DefaultAdminPassword)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.users[DefaultAdminUsername] = &entity.User{
		Username: DefaultAdminUsername,
		Password: hash,
		Role:     entity.RoleAdmin,
	}
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Authenticate verifies a username/password pair and issues a session
// token. Unknown user and wrong password produce the same error so the
// response does not leak which part was wrong.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*LoginOutput, error) {
	s.mu.Lock()
	user, ok := s.users[username]
	var copied entity.User
	if ok {
		copied = *user
	}
	s.mu.Unlock()

	if !ok {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, copied.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(copied.Username, copied.Role)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: &copied, Token: token}, nil
}

// AddUser creates a new user with the given role
func (s *AuthService) AddUser(ctx context.Context, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperror.NewValidationError("Username and password are required")
	}
	if role != entity.RoleAdmin && role != entity.RoleCashier {
		return apperror.NewValidationError("Role must be admin or cashier")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.users[username]; exists {
		s.mu.Unlock()
		return apperror.NewStateError("User already exists")
	}
	s.users[username] = &entity.User{
		Username: username,
		Password: hash,
		Role:     role,
	}
	s.mu.Unlock()

	return s.save(ctx)
}

// DeleteUser removes a user. The currently authenticated user cannot
// delete themself.
func (s *AuthService) DeleteUser(ctx context.Context, username, requestedBy string) error {
	if username == requestedBy {
		return apperror.NewStateError("You cannot delete the logged-in user")
	}

	s.mu.Lock()
	if _, exists := s.users[username]; !exists {
		s.mu.Unlock()
		return apperror.NewNotFoundError("User")
	}
	delete(s.users, username)
	s.mu.Unlock()

	return s.save(ctx)
}

// ChangePassword replaces a user's password
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperror.NewValidationError("Password cannot be empty")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	user, exists := s.users[username]
	if !exists {
		s.mu.Unlock()
		return apperror.NewNotFoundError("User")
	}
	user.Password = hash
	s.mu.Unlock()

	return s.save(ctx)
}

// ListUsers returns the directory sorted by username, without secrets
func (s *AuthService) ListUsers() []UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]UserInfo, 0, len(s.users))
	for _, u := range s.users {
		infos = append(infos, UserInfo{Username: u.Username, Role: u.Role})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Username < infos[j].Username })
	return infos
}

// save flushes the directory through the persistence gateway
func (s *AuthService) save(ctx context.Context) error {
	s.mu.Lock()
	users := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })

	if err := s.repo.Replace(ctx, users); err != nil {
		s.log.Warn("failed to save user directory", zap.Error(err))
		return apperror.NewIOError("Failed to save user directory")
	}
	return nil
}
