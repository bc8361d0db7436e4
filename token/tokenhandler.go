package token

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/wistefan/shirt-store/config"
	"github.com/wistefan/shirt-store/model"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (c RealClock) Now() time.Time {
	return time.Now()
}

/**
* Issues and verifies the symmetrically signed access tokens. Every granted
* scope of the application becomes a claim with the value "true" on the token.
 */
type TokenHandler struct {
	applicationRepo ApplicationRepository
	tokenConfig     config.Config
	Clock           Clock
}

func NewTokenHandler(applicationRepo ApplicationRepository, tokenConfig config.Config) *TokenHandler {
	tokenHandler := new(TokenHandler)
	tokenHandler.applicationRepo = applicationRepo
	tokenHandler.tokenConfig = tokenConfig
	tokenHandler.Clock = RealClock{}
	return tokenHandler
}

func (th *TokenHandler) Issue(clientId string, clientSecret string) (accessToken model.AccessToken, httpErr model.HttpError) {

	application, httpErr := th.applicationRepo.GetByClientId(clientId)
	if httpErr != (model.HttpError{}) {
		return accessToken, httpErr
	}
	if application.Secret != clientSecret {
		logger.Debugf("Secret mismatch for client %s.", clientId)
		return accessToken, model.HttpError{Status: http.StatusUnauthorized, Message: "Invalid client credentials.", RootError: nil}
	}

	signingKey := th.tokenConfig.SigningKey()
	if signingKey == "" {
		return accessToken, model.HttpError{Status: http.StatusUnauthorized, Message: "No signing key is configured.", RootError: nil}
	}

	now := th.Clock.Now()
	expiresAt := now.Add(th.tokenConfig.TokenExpiry())

	claims := jwt.MapClaims{
		"name": application.Name,
		"jti":  uuid.NewString(),
		"nbf":  now.Unix(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	for _, scope := range strings.Split(application.Scopes, ",") {
		scope = strings.ToLower(strings.TrimSpace(scope))
		if scope == "" {
			continue
		}
		claims[scope] = "true"
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		return accessToken, model.HttpError{Status: http.StatusInternalServerError, Message: "Was not able to sign the token.", RootError: err}
	}
	return model.AccessToken{AccessToken: signedToken, ExpiresAt: expiresAt}, httpErr
}

/**
* Verification is stateless, the claims are taken from the token itself. An
* empty, malformed, expired or wrongly signed token yields an error, never a
* claim set.
 */
func (th *TokenHandler) Verify(tokenString string, signingKey string) (claims jwt.MapClaims, httpErr model.HttpError) {

	if tokenString == "" {
		return claims, model.HttpError{Status: http.StatusUnauthorized, Message: "No token was provided.", RootError: nil}
	}

	// claims validation is skipped here and done against the injected clock below
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(signingKey), nil
	})
	if err != nil {
		logger.Debugf("Was not able to parse the token. Err: %v", err)
		return claims, model.HttpError{Status: http.StatusUnauthorized, Message: "Token is not valid.", RootError: err}
	}
	if !token.Valid {
		return claims, model.HttpError{Status: http.StatusUnauthorized, Message: "Token is not valid.", RootError: nil}
	}

	parsedClaims := token.Claims.(jwt.MapClaims)
	now := th.Clock.Now().Unix()
	if !parsedClaims.VerifyExpiresAt(now, true) {
		return claims, model.HttpError{Status: http.StatusUnauthorized, Message: "Token is expired.", RootError: nil}
	}
	if !parsedClaims.VerifyNotBefore(now, false) {
		return claims, model.HttpError{Status: http.StatusUnauthorized, Message: "Token is not valid yet.", RootError: nil}
	}
	return parsedClaims, httpErr
}
