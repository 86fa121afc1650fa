package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/authsvc/internal/client/storage"
	"github.com/iudanet/authsvc/internal/validation"
	"github.com/iudanet/authsvc/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Println("=== Register ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	firstName, err := readInput("First name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}

	lastName, err := readInput("Last name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("Registering...")

	resp, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	// Сразу сохраняем сессию, чтобы не требовать отдельного login
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
	fmt.Println("✓ Registration successful!")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Token expires in: %d seconds\n", resp.ExpiresIn)

	return nil
}
