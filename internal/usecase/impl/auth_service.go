// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"storeapi/config"
	deliverycontext "storeapi/internal/delivery/context"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/repository"
	"storeapi/internal/domain/service"
	"storeapi/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and compared against when the email is
// unknown, so both failure paths of Authenticate cost one bcrypt comparison.
const dummyPassword = "storeapi-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	autoConfirm  bool
	baseURL      string
	logger       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	autoConfirm := false
	if params.Config.Auth != nil {
		autoConfirm = params.Config.Auth.AutoConfirm
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		autoConfirm:  autoConfirm,
		baseURL:      strings.TrimRight(params.Config.HTTP.PublicBaseURL, "/"),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unconfirmed user and hands back a confirmation link.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Debug("Starting registration", slog.String("email", input.Email))

	user := &entity.User{
		Email:     input.Email,
		Username:  input.Username,
		Confirmed: srv.autoConfirm,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureAbsent(userRepo.FindByEmail(ctx, input.Email)); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return domainerrors.ErrEmailTaken
			}
			return errors.Wrap(err, "failed to check email availability")
		}

		if err := ensureAbsent(userRepo.FindByUsername(ctx, input.Username)); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return domainerrors.ErrUsernameTaken
			}
			return errors.Wrap(err, "failed to check username availability")
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}
		user.PasswordHash = hash

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Issue(user.Email, entity.TokenPurposeConfirmation)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue confirmation token")
	}

	srv.publishRegistered(ctx, user, srv.baseURL+"/confirm/"+url.PathEscape(token))

	srv.log(ctx).Info("User registered", slog.Int64("user_id", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// publishRegistered is best-effort: a failed publish never fails registration.
func (srv *authService) publishRegistered(ctx context.Context, user *entity.User, confirmationURL string) {
	event := &service.UserRegisteredEvent{
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		UserID:          user.ID,
		Email:           user.Email,
		Username:        user.Username,
		ConfirmationURL: confirmationURL,
	}

	if err := srv.publisher.PublishUserRegistered(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish registration event",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// Authenticate verifies the password and the confirmed flag.
func (srv *authService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.hasher.Check(password, srv.dummyPasswordHash(ctx))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for authentication")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.Confirmed {
		return nil, domainerrors.ErrEmailNotConfirmed
	}

	return user, nil
}

func (srv *authService) dummyPasswordHash(ctx context.Context) string {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.log(ctx).Error("Failed to prepare dummy password hash", slog.Any("error", err))
			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

// Login authenticates and issues an access token.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Info("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	accessToken, err := srv.tokenService.Issue(user.Email, entity.TokenPurposeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		TokenType:   usecase.TokenTypeBearer,
	}, nil
}

// CurrentUser resolves the access token and loads its subject.
func (srv *authService) CurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	email, err := srv.tokenService.Resolve(accessToken, entity.TokenPurposeAccess)
	if err != nil {
		return nil, err
	}

	return srv.userForToken(ctx, email)
}

// ConfirmEmail resolves the confirmation token and marks the user confirmed.
func (srv *authService) ConfirmEmail(ctx context.Context, confirmationToken string) error {
	email, err := srv.tokenService.Resolve(confirmationToken, entity.TokenPurposeConfirmation)
	if err != nil {
		return err
	}

	if _, err := srv.userForToken(ctx, email); err != nil {
		return err
	}

	if err := srv.userRepo.MarkConfirmed(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errUnknownTokenUser
		}
		return errors.Wrap(err, "failed to confirm user")
	}

	srv.log(ctx).Info("Email confirmed", slog.String("email", email))

	return nil
}

var errUnknownTokenUser = domainerrors.ErrInvalidCredentials.WithMessage("could not find user for this token")

func (srv *authService) userForToken(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errUnknownTokenUser
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for token")
	}

	return user, nil
}

// ensureAbsent turns a lookup result into nil when nothing was found and
// ErrConflict when something was.
func ensureAbsent(_ *entity.User, err error) error {
	switch {
	case err == nil:
		return domainerrors.ErrConflict
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return err
	}
}
