package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/authsvc/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			fmt.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Println("✓ Logged out.")
	return nil
}
