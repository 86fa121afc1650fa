package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/authsvc/internal/client/api"
	"github.com/iudanet/authsvc/internal/client/storage"
)

func (c *Cli) runProfile(ctx context.Context) error {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("not authenticated. Please run 'authcli login' first")
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	c.apiClient.SetToken(session.Token)

	profile, err := c.apiClient.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return fmt.Errorf("session is no longer valid. Please run 'authcli login' again")
		}
		return err
	}

	fmt.Println("=== Profile ===")
	fmt.Println()
	fmt.Printf("User ID:    %s\n", profile.UserID)
	fmt.Printf("Email:      %s\n", profile.Email)
	if profile.FirstName != "" {
		fmt.Printf("First name: %s\n", profile.FirstName)
	}
	if profile.LastName != "" {
		fmt.Printf("Last name:  %s\n", profile.LastName)
	}

	return nil
}
