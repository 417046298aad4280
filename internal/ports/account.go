package ports

import "context"

// AccountPort lets application code change a player's profile without
// knowing about the hosting runtime.
type AccountPort interface {
	// UpdateProfile applies the username and display name to the account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
