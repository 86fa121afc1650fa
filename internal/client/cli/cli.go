// Package cli реализует консольные команды клиента авторизации.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/iudanet/authsvc/internal/client/api"
	"github.com/iudanet/authsvc/internal/client/storage"
)

// Cli объединяет зависимости консольных команд
type Cli struct {
	apiClient *api.Client
	sessions  storage.SessionStorage
}

func New(apiClient *api.Client, sessions storage.SessionStorage) *Cli {
	return &Cli{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Run выполняет команду и завершает процесс при ошибке
func (c *Cli) Run(ctx context.Context, command string) {
	switch command {
	case "register":
		if err := c.runRegister(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "login":
		if err := c.runLogin(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "logout":
		if err := c.runLogout(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "profile":
		if err := c.runProfile(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "status":
		if err := c.runStatus(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}
}

func PrintUsage() {
	fmt.Println("Auth Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  authcli [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version                    Show version information")
	fmt.Println("  --server URL                 Server URL (default: http://localhost:8090)")
	fmt.Println("  --db PATH                    Path to local database (default: authcli.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                     Register a new account")
	fmt.Println("  login                        Authenticate and save session")
	fmt.Println("  profile                      Show profile of the logged in user")
	fmt.Println("  status                       Show current session status")
	fmt.Println("  logout                       Delete the saved session")
}
