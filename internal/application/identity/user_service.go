package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/identity"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/auth"
)

// UserService handles staff account management
type UserService struct {
	userRepo identity.UserRepository
	// blacklist invalidates outstanding tokens when an account is
	// deactivated or its password changes.
	blacklist     auth.TokenBlacklist
	revocationTTL time.Duration
	recorder      auditapp.Recorder
}

// NewUserService creates a new UserService. revocationTTL should cover the
// refresh token lifetime so revocations outlive every outstanding token.
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, revocationTTL time.Duration, recorder auditapp.Recorder) *UserService {
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &UserService{
		userRepo:      userRepo,
		blacklist:     blacklist,
		revocationTTL: revocationTTL,
		recorder:      recorder,
	}
}

// Create creates a staff account. Emails are unique, case-insensitive.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	user, err := identity.NewUser(email, req.Name, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "user",
		EntityID:   user.ID.String(),
		Changes:    &audit.Changes{After: ToUserResponse(user)},
	})

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update updates a staff account. Changing the password or deactivating
// the account revokes every outstanding token.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	before := ToUserResponse(user)

	name := user.Name
	if req.Name != nil {
		name = *req.Name
	}
	role := user.Role
	if req.Role != nil {
		role = identity.Role(*req.Role)
	}
	if err := user.Update(name, role); err != nil {
		return nil, err
	}

	revokeTokens := false
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
		revokeTokens = true
	}
	if req.IsActive != nil {
		if *req.IsActive {
			user.Activate()
		} else {
			user.Deactivate()
			revokeTokens = true
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if revokeTokens {
		if err := s.blacklist.RevokeAllForUser(ctx, user.ID.String(), s.revocationTTL); err != nil {
			return nil, err
		}
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "user",
		EntityID:   user.ID.String(),
		Changes:    &audit.Changes{Before: before, After: ToUserResponse(user)},
	})

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes a staff account and revokes its outstanding tokens
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.blacklist.RevokeAllForUser(ctx, userID.String(), s.revocationTTL); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "user",
		EntityID:   userID.String(),
		Changes:    &audit.Changes{Before: ToUserResponse(user)},
	})
	return nil
}
