package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/unishop/pkg/model"
)

func newLoginCmd() *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Google identity credential",
		Long:  "Exchange a Google ID token for a storefront session and persist it locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if credential == "" {
				fmt.Print("Google ID token: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read credential: %w", err)
				}
				credential = strings.TrimSpace(line)
			}
			if credential == "" {
				return fmt.Errorf("credential cannot be empty")
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if snap := app.Sessions.Snapshot(); snap.Status == model.StatusAuthenticated {
				fmt.Printf("Already signed in as %s. Run `unishop logout` first to switch accounts.\n", snap.User.Email)
				return nil
			}

			if err := app.Sessions.Authenticate(cmd.Context(), credential); err != nil {
				return fmt.Errorf("sign in: %w", err)
			}

			user := app.Sessions.Snapshot().User
			fmt.Printf("Signed in as %s (%s)\n", user.DisplayName, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&credential, "credential", "", "Google ID token (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			app.Sessions.SignOut(cmd.Context())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			snap := app.Sessions.Snapshot()
			if snap.Status != model.StatusAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}

			u := snap.User
			fmt.Printf("%-12s %s\n", "Name:", u.DisplayName)
			fmt.Printf("%-12s %s\n", "Email:", u.Email)
			fmt.Printf("%-12s %s\n", "Role:", u.Role)
			if u.University != "" {
				fmt.Printf("%-12s %s\n", "University:", u.University)
			}
			return nil
		},
	}
}
