package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/httperr"
)

// PatientRecorder creates a patient record as a registration side
// effect. Implemented by the patient repository.
type PatientRecorder interface {
	CreateFromRegistration(ctx context.Context, userID uuid.UUID, name *string) error
}

type Service struct {
	users    Repository
	hasher   *auth.Hasher
	tokens   *auth.TokenCodec
	patients PatientRecorder
	logger   zerolog.Logger
}

func NewService(users Repository, hasher *auth.Hasher, tokens *auth.TokenCodec, logger zerolog.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// SetPatientRecorder enables best-effort patient record creation when a
// patient-role user registers.
func (s *Service) SetPatientRecorder(pr PatientRecorder) { s.patients = pr }

type RegisterInput struct {
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// NormalizeEmail lowercases and trims an email for the case-insensitive
// uniqueness rule.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. Role defaults to patient; duplicate emails
// (any case) are a conflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, httperr.InvalidInput("email and password are required")
	}
	role, err := auth.ParseRole(in.Role)
	if err != nil {
		return nil, httperr.InvalidInput(err.Error())
	}

	email := NormalizeEmail(in.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if exists {
		return nil, httperr.Conflict("user with that email already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, httperr.Internal(err)
	}

	u := &User{Name: in.Name, Email: email, PasswordHash: &hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		// Two concurrent registrations can both pass the pre-check;
		// the unique index decides the loser.
		if IsUniqueViolation(err) {
			return nil, httperr.Conflict("user with that email already exists")
		}
		return nil, httperr.Internal(err)
	}

	if role == auth.RolePatient && s.patients != nil {
		if err := s.patients.CreateFromRegistration(ctx, u.ID, u.Name); err != nil {
			s.logger.Warn().Err(err).Str("user_id", u.ID.String()).
				Msg("patient record creation after registration failed")
		}
	}

	return u, nil
}

// Login verifies credentials and returns a signed token plus the user.
// Every failure mode reports the same message so nothing is leaked.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	if email == "" || password == "" {
		return "", nil, httperr.InvalidInput("email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, httperr.Unauthenticated("invalid credentials")
		}
		return "", nil, httperr.Internal(err)
	}
	// The hash may be null for externally provisioned accounts.
	if u.PasswordHash == nil || !s.hasher.Verify(password, *u.PasswordHash) {
		return "", nil, httperr.Unauthenticated("invalid credentials")
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, httperr.Internal(err)
	}
	return token, u, nil
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("user not found")
		}
		return nil, httperr.Internal(err)
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.Me(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	items, total, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, httperr.Internal(err)
	}
	return items, total, nil
}

// UpdateUser merge-patches name and email. Role is immutable after
// creation.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, p *Patch) (*User, error) {
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		if normalized == "" {
			return nil, httperr.InvalidInput("email must not be empty")
		}
		p.Email = &normalized
	}
	if err := s.users.Update(ctx, id, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httperr.NotFound("user not found")
		}
		if IsUniqueViolation(err) {
			return nil, httperr.Conflict("user with that email already exists")
		}
		return nil, httperr.Internal(err)
	}
	return s.GetUser(ctx, id)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httperr.NotFound("user not found")
		}
		return httperr.Internal(err)
	}
	return nil
}
