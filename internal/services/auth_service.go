package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
	"github.com/SR-Exam/scheduler-service/internal/session"
	"github.com/SR-Exam/scheduler-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	remote    repositories.RemoteCatalog
	sess      *session.Session
	validator *validator.BusinessValidator
	logger    *slog.Logger
}

func NewAuthService(repo repositories.Repository, remote repositories.RemoteCatalog, sess *session.Session, bv *validator.BusinessValidator, logger *slog.Logger) AuthService {
	return &authService{
		repo:      repo,
		remote:    remote,
		sess:      sess,
		validator: bv,
		logger:    logger,
	}
}

// Login matches the identifier against nim or initial and verifies the local
// password. An account whose stored password is still empty has never set one
// and is admitted with any password so it can be provisioned.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, validationError(errs)
	}

	user, err := s.repo.User().GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, storeError(err)
	}
	if user == nil {
		s.logger.Info("Login rejected, unknown identifier", "identifier", req.Identifier)
		return nil, ErrNotAuthenticated
	}

	if user.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			s.logger.Info("Login rejected, wrong password", "bn_number", user.BNNumber)
			return nil, ErrNotAuthenticated
		}
	}

	matchedBy := "initial"
	if isAllDigits(req.Identifier) {
		matchedBy = "nim"
	}

	s.sess.Install(*user)
	s.logger.Info("Login succeeded", "bn_number", user.BNNumber, "matched_by", matchedBy)

	return &LoginResponse{MatchedBy: matchedBy, User: *user}, nil
}

// ChangePassword rehashes and stores a new password for the signed-in user.
// The old password is only checked once the account has one.
func (s *authService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return validationError(errs)
	}

	current, ok := s.sess.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	// Verify against the stored credential, not the session snapshot. The
	// snapshot is a copy taken at login and can be behind the store.
	stored, err := s.repo.User().GetByBNNumber(ctx, current.BNNumber)
	if err != nil {
		return storeError(err)
	}
	if stored == nil {
		return ErrNotAuthenticated
	}

	if stored.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.OldPassword)) != nil {
			s.logger.Info("Password change rejected, wrong old password", "bn_number", stored.BNNumber)
			return ErrNotAuthenticated
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return validationError(err)
	}

	if err := s.repo.User().UpdatePassword(ctx, stored.BNNumber, string(hash)); err != nil {
		return storeError(err)
	}

	// Refresh the session snapshot so it tracks the store.
	stored.Password = string(hash)
	s.sess.Install(*stored)

	s.logger.Info("Password changed", "bn_number", stored.BNNumber)
	return nil
}

// EditRole reassigns a user's role. Authorization is enforced at the route
// level; the service only cares that the target exists.
func (s *authService) EditRole(ctx context.Context, bnNumber string, req *EditRoleRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return validationError(errs)
	}

	if err := s.repo.User().UpdateRole(ctx, bnNumber, req.Role); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return storeError(err)
	}

	s.logger.Info("Role updated", "bn_number", bnNumber, "role", req.Role)
	return nil
}

// GetPasswordByNIM relays the remote credential lookup. The result is handed
// straight to the caller and never stored or cached locally.
func (s *authService) GetPasswordByNIM(ctx context.Context, nim string) (string, error) {
	return s.remote.GetPasswordByNIM(ctx, nim)
}

func (s *authService) CurrentUser() (models.User, bool) {
	return s.sess.Current()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
