package app

import (
	"context"

	"github.com/gyokusei/nga-cli/domain"
)

// SessionService validates the stored cookie against the live site.
type SessionService interface {
	// VerifySession checks the session cookie by fetching an
	// authenticated-only page. A nil identity with a nil error means the
	// cookie was rejected; an error means the check itself failed.
	VerifySession(ctx context.Context) (*domain.UserIdentity, error)
}
