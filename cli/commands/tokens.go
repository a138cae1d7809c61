package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/concordlabs/concord/cli/keystore"
)

func (a *App) newTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage bot tokens",
		Long:  `Manage bot tokens for your profiles. Tokens are stored encrypted on disk.`,
	}

	cmd.AddCommand(a.newTokensSetCommand())
	cmd.AddCommand(a.newTokensGetCommand())
	cmd.AddCommand(a.newTokensListCommand())
	cmd.AddCommand(a.newTokensDeleteCommand())

	return cmd
}

func (a *App) newTokensSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <profile>",
		Short: "Set the bot token for a profile",
		Long:  `Set the bot token for a profile. The token is prompted without echo.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := args[0]

			fmt.Fprintf(a.stdout, "Enter bot token for %s: ", profile)

			token, err := a.readSecret()
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			ks, err := a.newKeystore()
			if err != nil {
				return fmt.Errorf("failed to open keystore: %w", err)
			}

			if err := ks.Set(profile, token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}

			fmt.Fprintf(a.stdout, "Token for %s stored successfully.\n", profile)
			return nil
		},
	}
}

func (a *App) newTokensGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <profile>",
		Short: "Print the bot token for a profile",
		Long:  `Print the bot token for a profile to stdout, for use in scripts.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := args[0]

			ks, err := a.newKeystore()
			if err != nil {
				return fmt.Errorf("failed to open keystore: %w", err)
			}

			token, err := ks.Get(profile)
			if err != nil {
				if _, ok := err.(*keystore.ErrTokenNotFound); ok {
					return fmt.Errorf("no token stored for %s", profile)
				}
				return fmt.Errorf("failed to read token: %w", err)
			}

			fmt.Fprintln(a.stdout, token)
			return nil
		},
	}
}

func (a *App) newTokensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored bot tokens",
		Long:  `List all stored bot tokens. Only profile names are shown, never token values.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.newKeystore()
			if err != nil {
				return fmt.Errorf("failed to open keystore: %w", err)
			}

			names, err := ks.List()
			if err != nil {
				return fmt.Errorf("failed to list tokens: %w", err)
			}

			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No tokens stored.")
				return nil
			}

			fmt.Fprintln(a.stdout, "Stored tokens:")
			for _, name := range names {
				fmt.Fprintf(a.stdout, "  - %s\n", name)
			}

			return nil
		},
	}
}

func (a *App) newTokensDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <profile>",
		Short: "Delete the bot token for a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := args[0]

			ks, err := a.newKeystore()
			if err != nil {
				return fmt.Errorf("failed to open keystore: %w", err)
			}

			if err := ks.Delete(profile); err != nil {
				if _, ok := err.(*keystore.ErrTokenNotFound); ok {
					return fmt.Errorf("no token stored for %s", profile)
				}
				return fmt.Errorf("failed to delete token: %w", err)
			}

			fmt.Fprintf(a.stdout, "Token for %s deleted.\n", profile)
			return nil
		},
	}
}

// readSecret reads a line from stdin without echo when attached to a
// terminal, falling back to a plain line read for piped input.
func (a *App) readSecret() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(a.stdout) // Newline after hidden input
		return string(raw), nil
	}

	reader := bufio.NewReader(a.stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
