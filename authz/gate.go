package authz

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wistefan/shirt-store/config"
	"github.com/wistefan/shirt-store/logging"
	"github.com/wistefan/shirt-store/model"
)

var logger = logging.Log()

const bearerPrefix = "Bearer "

type TokenVerifier interface {
	Verify(tokenString string, signingKey string) (claims jwt.MapClaims, httpErr model.HttpError)
}

/**
* Per-request check that a valid token is present and carries every claim
* declared for the targeted operation. The declarations are attached per route
* when the router is composed.
 */
type ClaimGate struct {
	verifier   TokenVerifier
	gateConfig config.Config
}

func NewClaimGate(verifier TokenVerifier, gateConfig config.Config) *ClaimGate {
	return &ClaimGate{verifier: verifier, gateConfig: gateConfig}
}

func (cg *ClaimGate) RequireClaims(requiredClaims ...model.RequiredClaim) gin.HandlerFunc {
	return func(c *gin.Context) {

		authorizationHeader := c.GetHeader("Authorization")
		if authorizationHeader == "" {
			logger.Debug("No authorization header was provided.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ProblemDetails{Type: "Unauthenticated", Status: http.StatusUnauthorized, Title: "No bearer token was provided."})
			return
		}
		if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
			logger.Debug("The authorization header does not carry a bearer token.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ProblemDetails{Type: "Unauthenticated", Status: http.StatusUnauthorized, Title: "No bearer token was provided."})
			return
		}
		tokenString := strings.TrimPrefix(authorizationHeader, bearerPrefix)

		signingKey := cg.gateConfig.SigningKey()
		if signingKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ProblemDetails{Type: "Unauthenticated", Status: http.StatusUnauthorized, Title: "No signing key is configured."})
			return
		}

		claims, httpErr := cg.verifier.Verify(tokenString, signingKey)
		if httpErr != (model.HttpError{}) {
			logger.Debugf("Token verification failed: %v", httpErr.Message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ProblemDetails{Type: "Unauthenticated", Status: http.StatusUnauthorized, Title: "Token is not valid.", Detail: httpErr.Message})
			return
		}

		for _, requiredClaim := range requiredClaims {
			if !hasClaim(claims, requiredClaim) {
				logger.Debugf("Token is missing the claim %s=%s.", requiredClaim.Type, requiredClaim.Value)
				c.AbortWithStatusJSON(http.StatusForbidden, model.ProblemDetails{Type: "Forbidden", Status: http.StatusForbidden, Title: "Token is missing a required claim.", Detail: fmt.Sprintf("The claim %s=%s is required.", requiredClaim.Type, requiredClaim.Value)})
				return
			}
		}
		c.Next()
	}
}

/**
* Claims match case-insensitive on both type and value.
 */
func hasClaim(claims jwt.MapClaims, requiredClaim model.RequiredClaim) bool {
	for claimType, claimValue := range claims {
		if strings.EqualFold(claimType, requiredClaim.Type) && strings.EqualFold(fmt.Sprintf("%v", claimValue), requiredClaim.Value) {
			return true
		}
	}
	return false
}
