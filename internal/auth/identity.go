package auth

// Identity is what a provider tells us about the person who signed in.
// It contains facts only, no decisions.
type Identity struct {
	Provider       string // "google", "discord"
	ProviderUserID string // provider-scoped subject
	Email          string // the only field used to link to a users row
	EmailVerified  bool
}
