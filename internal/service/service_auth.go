package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-digest-sync/internal/config"
	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/utils"
	"github.com/MKhiriev/go-digest-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService verifies bearer tokens issued by the upstream identity
// service. There is no issuance path here: the sync API trusts whoever
// holds a valid token and only needs the owner identity out of it.
type authService struct {
	// tokenSignKey is the HMAC secret used to verify JWT signatures.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim. Tokens whose issuer does
	// not match are rejected during parsing.
	tokenIssuer string

	logger *logger.Logger
}

func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// ParseToken implements [AuthService]. Expiry is surfaced as
// [ErrTokenIsExpired] so the transport layer can map it to 401 distinctly
// from other parse failures.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		log.Err(err).Str("func", "authService.ParseToken").Msg("bearer token rejected")
		return models.Token{}, fmt.Errorf("bearer token rejected: %w", err)
	}

	return token, nil
}
