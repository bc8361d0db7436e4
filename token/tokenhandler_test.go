package token

import (
	"net/http"
	"testing"
	"time"

	"github.com/wistefan/shirt-store/model"
)

type mockClock struct {
	now time.Time
}

func (c mockClock) Now() time.Time {
	return c.now
}

type mockConfig struct {
	signingKey       string
	tokenExpiry      time.Duration
	applicationsFile string
}

func (mc mockConfig) SigningKey() string {
	return mc.signingKey
}

func (mc mockConfig) TokenExpiry() time.Duration {
	return mc.tokenExpiry
}

func (mc mockConfig) ApplicationsFile() string {
	return mc.applicationsFile
}

func getApplicationRepo() *InMemoryApplicationRepo {
	return &InMemoryApplicationRepo{applications: []model.Application{
		{Id: 1, Name: "test-reader", ClientId: "reader-client", Secret: "reader-secret", Scopes: "read"},
		{Id: 2, Name: "test-admin", ClientId: "admin-client", Secret: "admin-secret", Scopes: "read,write,delete"},
	}}
}

func getTokenHandler(handlerConfig mockConfig, clock Clock) *TokenHandler {
	tokenHandler := NewTokenHandler(getApplicationRepo(), handlerConfig)
	tokenHandler.Clock = clock
	return tokenHandler
}

func TestIssue(t *testing.T) {

	type test struct {
		testName       string
		clientId       string
		clientSecret   string
		signingKey     string
		expectedStatus int
	}

	tests := []test{
		{"Successfully issue a token.", "reader-client", "reader-secret", "test-key", 0},
		{"Reject an unknown client.", "no-such-client", "reader-secret", "test-key", http.StatusUnauthorized},
		{"Reject a secret mismatch.", "reader-client", "wrong-secret", "test-key", http.StatusUnauthorized},
		{"Reject issuance without a configured signing key.", "reader-client", "reader-secret", "", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.testName, func(t *testing.T) {
			tokenHandler := getTokenHandler(mockConfig{signingKey: tc.signingKey, tokenExpiry: 10 * time.Minute}, mockClock{now: time.Unix(1700000000, 0)})

			accessToken, httpErr := tokenHandler.Issue(tc.clientId, tc.clientSecret)
			if httpErr.Status != tc.expectedStatus {
				t.Errorf("%s: Received an unexpected error. Expected status: %d, Actual: %v", tc.testName, tc.expectedStatus, httpErr)
			}
			if tc.expectedStatus == 0 && accessToken.AccessToken == "" {
				t.Errorf("%s: An access token should have been issued.", tc.testName)
			}
		})
	}
}

func TestIssuedClaims(t *testing.T) {

	issuedAt := time.Unix(1700000000, 0)
	tokenHandler := getTokenHandler(mockConfig{signingKey: "test-key", tokenExpiry: 10 * time.Minute}, mockClock{now: issuedAt})

	accessToken, httpErr := tokenHandler.Issue("admin-client", "admin-secret")
	if httpErr != (model.HttpError{}) {
		t.Fatalf("Token issuance failed unexpectedly: %v", httpErr)
	}
	if !accessToken.ExpiresAt.Equal(issuedAt.Add(10 * time.Minute)) {
		t.Errorf("The token should expire after the configured window, but expires at %v.", accessToken.ExpiresAt)
	}

	claims, httpErr := tokenHandler.Verify(accessToken.AccessToken, "test-key")
	if httpErr != (model.HttpError{}) {
		t.Fatalf("Token verification failed unexpectedly: %v", httpErr)
	}

	if claims["name"] != "test-admin" {
		t.Errorf("The application name should be a claim, but claims are %v.", claims)
	}
	for _, scope := range []string{"read", "write", "delete"} {
		if claims[scope] != "true" {
			t.Errorf("The scope %s should be a claim with value true, but claims are %v.", scope, claims)
		}
	}
	if claims["jti"] == nil || claims["jti"] == "" {
		t.Errorf("Every token should carry a token id, but claims are %v.", claims)
	}
}

func TestVerify(t *testing.T) {

	issuedAt := time.Unix(1700000000, 0)
	tokenExpiry := 10 * time.Minute
	tokenHandler := getTokenHandler(mockConfig{signingKey: "test-key", tokenExpiry: tokenExpiry}, mockClock{now: issuedAt})

	accessToken, httpErr := tokenHandler.Issue("reader-client", "reader-secret")
	if httpErr != (model.HttpError{}) {
		t.Fatalf("Token issuance failed unexpectedly: %v", httpErr)
	}

	type test struct {
		testName       string
		token          string
		signingKey     string
		verifyAt       time.Time
		expectedStatus int
	}

	tests := []test{
		{"Accept a valid token.", accessToken.AccessToken, "test-key", issuedAt.Add(time.Minute), 0},
		{"Accept a token right before its expiry.", accessToken.AccessToken, "test-key", issuedAt.Add(tokenExpiry - time.Second), 0},
		{"Reject a token at its expiry.", accessToken.AccessToken, "test-key", issuedAt.Add(tokenExpiry), http.StatusUnauthorized},
		{"Reject a token after its expiry.", accessToken.AccessToken, "test-key", issuedAt.Add(tokenExpiry + time.Second), http.StatusUnauthorized},
		{"Reject a token before its validity window.", accessToken.AccessToken, "test-key", issuedAt.Add(-time.Second), http.StatusUnauthorized},
		{"Reject an empty token.", "", "test-key", issuedAt.Add(time.Minute), http.StatusUnauthorized},
		{"Reject a malformed token.", "not-a-token", "test-key", issuedAt.Add(time.Minute), http.StatusUnauthorized},
		{"Reject a tampered token.", accessToken.AccessToken + "x", "test-key", issuedAt.Add(time.Minute), http.StatusUnauthorized},
		{"Reject a token signed with another key.", accessToken.AccessToken, "another-key", issuedAt.Add(time.Minute), http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.testName, func(t *testing.T) {
			tokenHandler.Clock = mockClock{now: tc.verifyAt}

			claims, httpErr := tokenHandler.Verify(tc.token, tc.signingKey)
			if httpErr.Status != tc.expectedStatus {
				t.Errorf("%s: Received an unexpected error. Expected status: %d, Actual: %v", tc.testName, tc.expectedStatus, httpErr)
			}
			if tc.expectedStatus == 0 && claims == nil {
				t.Errorf("%s: A claim set should have been returned.", tc.testName)
			}
			if tc.expectedStatus != 0 && claims != nil {
				t.Errorf("%s: No claim set should be returned on verification failures.", tc.testName)
			}
		})
	}
}

func TestVerifyIsIdempotent(t *testing.T) {

	issuedAt := time.Unix(1700000000, 0)
	tokenHandler := getTokenHandler(mockConfig{signingKey: "test-key", tokenExpiry: 10 * time.Minute}, mockClock{now: issuedAt})

	accessToken, _ := tokenHandler.Issue("reader-client", "reader-secret")

	firstClaims, firstErr := tokenHandler.Verify(accessToken.AccessToken, "test-key")
	secondClaims, secondErr := tokenHandler.Verify(accessToken.AccessToken, "test-key")

	if firstErr != (model.HttpError{}) || secondErr != (model.HttpError{}) {
		t.Fatalf("Verification should succeed on every call, but got %v and %v.", firstErr, secondErr)
	}
	if len(firstClaims) != len(secondClaims) {
		t.Errorf("Verification should always yield the same claim set, but got %v and %v.", firstClaims, secondClaims)
	}
}
