package model

import "time"

/**
* A client application known to the token service. The scopes are granted as a
* comma-separated list and become one claim each on issued tokens.
 */
type Application struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	ClientId string `json:"clientId"`
	Secret   string `json:"secret"`
	Scopes   string `json:"scopes"`
}

type AppCredential struct {
	ClientId     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

type AccessToken struct {
	AccessToken string    `json:"Access_Token"`
	ExpiresAt   time.Time `json:"Expires_At"`
}

/**
* A claim that has to be present on the token for an operation to be allowed.
* Declared per route when the router is composed.
 */
type RequiredClaim struct {
	Type  string
	Value string
}
