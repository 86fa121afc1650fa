package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/authsvc/internal/client/storage"
	"github.com/iudanet/authsvc/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	c.apiClient.SetToken(resp.Token)

	session := &storage.Session{
		Email:     email,
		Token:     resp.Token,
		ExpiresAt: time.Now().Unix() + resp.ExpiresIn,
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Login successful!")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Token expires in: %d seconds\n", resp.ExpiresIn)

	return nil
}
