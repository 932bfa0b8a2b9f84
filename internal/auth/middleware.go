package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/observability"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// AuthMiddleware resolves bearer tokens into principals. It never rejects a
// request for a bad or missing token; route guards decide.
type AuthMiddleware struct {
	resolver *IdentityResolver
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver *IdentityResolver, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, logger: logger, metrics: metrics}
}

// Handle installs the principal for the remainder of the request.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		m.metrics.RecordAuthResolution("")
		return c.Next()
	}

	principal, err := m.resolver.Resolve(c.UserContext(), token)
	if err != nil {
		m.logger.Error("identity resolution failed", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	if principal == nil {
		m.logger.Debug("token did not resolve to a principal", zap.String("path", c.Path()))
		m.metrics.RecordAuthResolution("")
		return c.Next()
	}

	m.metrics.RecordAuthResolution(string(principal.Role))
	c.Locals(principalKey, principal)
	c.SetUserContext(WithPrincipal(c.UserContext(), principal))
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
