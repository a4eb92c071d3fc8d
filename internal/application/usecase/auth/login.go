package auth

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/auth"
	"github.com/khoahotran/career-os/pkg/logger"
)

type LoginUseCase struct {
	passwordHash string
	jwtSvc       *auth.JWTService
	logger       logger.Logger
}

// NewLoginUseCase authenticates the single owner against a bcrypt hash.
func NewLoginUseCase(passwordHash string, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		passwordHash: passwordHash,
		jwtSvc:       jwtSvc,
		logger:       log,
	}
}

type LoginInput struct {
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	_, span := tracer.Start(ctx, "Login")
	defer span.End()

	if uc.passwordHash == "" {
		err := apperror.NewUnauthorized("owner password hash is not configured", nil)
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, uc.passwordHash) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken()
	if err != nil {
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	uc.logger.Info("Owner logged in")
	return &LoginOutput{AccessToken: token}, nil
}
