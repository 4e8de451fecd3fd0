package handlers

import (
	"context"

	authusecases "github.com/cinevault-inc/cinevault/internal/application/auth/usecases"
	movieusecases "github.com/cinevault-inc/cinevault/internal/application/movie/usecases"
	subscriptionusecases "github.com/cinevault-inc/cinevault/internal/application/subscription/usecases"
	userusecases "github.com/cinevault-inc/cinevault/internal/application/user/usecases"
)

// Use case interfaces for the handlers - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd authusecases.LoginCommand) (*authusecases.LoginResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd authusecases.LogoutCommand) error
}

type registerUserUseCase interface {
	Execute(ctx context.Context, cmd userusecases.RegisterUserCommand) (*userusecases.RegisterUserResult, error)
}

type updateDeviceTokenUseCase interface {
	Execute(ctx context.Context, cmd userusecases.UpdateDeviceTokenCommand) error
}

type initiateSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subscriptionusecases.InitiateSubscriptionCommand) (*subscriptionusecases.InitiateSubscriptionResult, error)
}

type confirmSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subscriptionusecases.ConfirmSubscriptionCommand) (*subscriptionusecases.ConfirmSubscriptionResult, error)
}

type cancelSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subscriptionusecases.CancelSubscriptionCommand) (*subscriptionusecases.CancelSubscriptionResult, error)
}

type getSubscriptionStatusUseCase interface {
	Execute(ctx context.Context, cmd subscriptionusecases.GetSubscriptionStatusCommand) (*subscriptionusecases.GetSubscriptionStatusResult, error)
}

type handleWebhookUseCase interface {
	Execute(ctx context.Context, cmd subscriptionusecases.HandleWebhookCommand) error
}

type listMoviesUseCase interface {
	Execute(ctx context.Context, cmd movieusecases.ListMoviesCommand) (*movieusecases.ListMoviesResult, error)
}

type getMovieUseCase interface {
	Execute(ctx context.Context, cmd movieusecases.GetMovieCommand) (*movieusecases.GetMovieResult, error)
}

type createMovieUseCase interface {
	Execute(ctx context.Context, cmd movieusecases.CreateMovieCommand) (*movieusecases.CreateMovieResult, error)
}

type updateMovieUseCase interface {
	Execute(ctx context.Context, cmd movieusecases.UpdateMovieCommand) (*movieusecases.UpdateMovieResult, error)
}

type deleteMovieUseCase interface {
	Execute(ctx context.Context, cmd movieusecases.DeleteMovieCommand) error
}

type premiumEntitlement interface {
	CanAccessPremium(ctx context.Context, userID uint) (bool, error)
}
