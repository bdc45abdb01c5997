package auth

// TokenResponse is the refresh endpoint's response body, following the
// standard OAuth2 token endpoint format (RFC 6749).
type TokenResponse struct {
	// AccessToken is the JWT used to access protected resources.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken *string `json:"access_token,omitempty"`

	// IdToken is the OpenID Connect ID token containing user identity
	// information. Only present when the "openid" scope was granted.
	IdToken *string `json:"id_token,omitempty"`

	// TokenType indicates how to use the access token (always "bearer").
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token. This is a
	// hint; the authoritative expiration is the JWT's "exp" claim.
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Rotates on each use.
	RefreshToken *string `json:"refresh_token,omitempty"`

	// Scope is the space-separated list of granted permissions.
	Scope string `json:"scope,omitempty"`
}
