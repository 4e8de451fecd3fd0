package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/goroutine"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

const minPasswordLength = 8

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(userID uint, role authorization.UserRole) (token, jti string, expiresAt time.Time, err error)
}

// OptInNotifier sends the post-registration WhatsApp greeting.
type OptInNotifier interface {
	NotifyOptIn(ctx context.Context, u *user.User)
}

type RegisterUserCommand struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	MobileNumber string
	Role         string
	DeviceToken  string
}

type RegisterUserResult struct {
	User         *user.User
	Subscription *subscription.Subscription
	Token        string
	ExpiresAt    time.Time
}

type RegisterUserUseCase struct {
	userRepo         user.Repository
	subscriptionRepo subscription.Repository
	passwordHasher   user.PasswordHasher
	tokenIssuer      TokenIssuer
	notifier         OptInNotifier
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	subscriptionRepo subscription.Repository,
	hasher user.PasswordHasher,
	tokenIssuer TokenIssuer,
	notifier OptInNotifier,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		passwordHasher:   hasher,
		tokenIssuer:      tokenIssuer,
		notifier:         notifier,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute creates the user together with their default free/active
// subscription in one transaction, then returns a signed session token so
// registration doubles as the first login.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}
	firstName, err := vo.NewName(cmd.FirstName)
	if err != nil {
		return nil, errors.NewValidationError("invalid first name", err.Error())
	}
	lastName, err := vo.NewName(cmd.LastName)
	if err != nil {
		return nil, errors.NewValidationError("invalid last name", err.Error())
	}
	mobileNumber, err := vo.NewMobileNumber(cmd.MobileNumber)
	if err != nil {
		return nil, errors.NewValidationError("invalid mobile number", err.Error())
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	role := authorization.ParseUserRole(cmd.Role)

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check existing email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email is already registered")
	}

	passwordHash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(
		id.MustGenerateWithPrefix(id.PrefixUser),
		email, firstName, lastName, mobileNumber, role, passwordHash,
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid user", err.Error())
	}

	var sub *subscription.Subscription
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, newUser); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		sub, err = subscription.NewFreeSubscription(
			id.MustGenerateWithPrefix(id.PrefixSubscription), newUser.ID(), biztime.NowUTC())
		if err != nil {
			return fmt.Errorf("failed to build free subscription: %w", err)
		}
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("registration transaction failed", "email", email.String(), "error", err)
		return nil, err
	}

	if cmd.DeviceToken != "" {
		if err := uc.userRepo.BindDeviceToken(ctx, newUser.ID(), cmd.DeviceToken); err != nil {
			uc.logger.Warnw("failed to bind device token on registration",
				"user_id", newUser.ID(), "error", err)
		}
	}

	if uc.notifier != nil {
		registered := newUser
		goroutine.SafeGo(uc.logger, "whatsapp-opt-in", func() {
			uc.notifier.NotifyOptIn(context.Background(), registered)
		})
	}

	token, _, expiresAt, err := uc.tokenIssuer.Issue(newUser.ID(), newUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue session token", "user_id", newUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID(), "role", role)

	return &RegisterUserResult{
		User:         newUser,
		Subscription: sub,
		Token:        token,
		ExpiresAt:    expiresAt,
	}, nil
}
