package auth

// Identity represents a verified external identity obtained from an OAuth
// provider. OpenID is the provider-issued subject id.
type Identity struct {
	OpenID string
	Email  string
	Name   *string
}
