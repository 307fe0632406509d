package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"snapboard-backend/infrastructure/config"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
)

// Authenticate builds the bearer-token middleware. Every request under
// it either reaches its handler with a UserContext attached or is
// rejected here; handlers never see an anonymous request.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	jwtConfig := auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	}
	if cfg.JWTAudience != "" {
		jwtConfig.Audience = []string{cfg.JWTAudience}
	}
	if jwtConfig.SecretKey == "" && !cfg.IsProduction() {
		jwtConfig.SecretKey = auth.DevelopmentSecret
	}

	validator, err := auth.NewJWTValidator(jwtConfig)
	if err != nil {
		logger.Error("failed to construct JWT validator", zap.Error(err))
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "authentication unavailable")
			})
		}
	}

	ipLimiter := auth.NewIPRateLimiter(cfg.IPRateLimit)
	userLimiter := auth.NewUserRateLimiter(cfg.UserRateLimit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, common.StandardErrorCodes.TooManyRequests, "rate limit exceeded")
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "missing or malformed authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				switch err {
				case auth.ErrExpiredToken:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "token has expired")
				case auth.ErrInvalidSignature:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "invalid token signature")
				default:
					common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "invalid token")
				}
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, common.StandardErrorCodes.TooManyRequests, "user rate limit exceeded")
				return
			}

			userCtx := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Roles:  claims.Roles,
			}
			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), userCtx)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// clientIP trusts the leftmost X-Forwarded-For entry when present, since
// the service always sits behind a load balancer in deployment
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
