package main

import (
	"fmt"

	"github.com/fmansouri/pocketledger/internal/auth"
	"github.com/fmansouri/pocketledger/internal/cli"
	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the online account and session",
	}
	cmd.AddCommand(loginCmd())
	cmd.AddCommand(signupCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())
	cmd.AddCommand(syncCmd())
	cmd.AddCommand(updateProfileCmd())
	cmd.AddCommand(changePasswordCmd())
	cmd.AddCommand(deleteAccountCmd())
	return cmd
}

// reportAuthErr renders a session client error as the user-facing
// message the failure taxonomy promises.
func reportAuthErr(err error) error {
	return fmt.Errorf("%s", cli.FormatError(common.Message(err)))
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the account server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if password == "" {
				if password, err = promptLine("Password"); err != nil {
					return err
				}
			}

			if err := client.Login(cmd.Context(), email, password); err != nil {
				return reportAuthErr(err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Signed in as %s", email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func signupCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if password == "" {
				if password, err = promptLine("Password"); err != nil {
					return err
				}
			}

			if err := client.Signup(cmd.Context(), email, password, name); err != nil {
				return reportAuthErr(err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account created for %s", email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			client.Logout(cmd.Context())
			fmt.Println(cli.FormatSuccess("Signed out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			u := client.User()
			if u == nil {
				fmt.Println(cli.FormatInfo("No identity"))
				return nil
			}

			kind := "server account"
			if model.IsLocalToken(client.Token()) {
				kind = "local account"
			}
			state := cli.FormatWarning("offline")
			if client.Online() {
				state = cli.FormatSuccess("online")
			}

			fmt.Println(cli.FormatTitle("Profile"))
			fmt.Println()
			fmt.Printf("  Name:  %s\n", u.Name)
			fmt.Printf("  Email: %s\n", u.Email)
			fmt.Printf("  Type:  %s (%s)\n", kind, state)
			return nil
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the session from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := client.SyncWithServer(cmd.Context())
			if err != nil {
				return reportAuthErr(err)
			}

			switch status {
			case auth.SyncedWithServer:
				fmt.Println(cli.FormatSuccess("Synced with server"))
			case auth.SyncSkippedOffline:
				fmt.Println(cli.FormatWarning("Offline: no connection to the server"))
			case auth.SyncLocalAccount:
				fmt.Println(cli.FormatInfo("You are using a local account. Sign up to sync online."))
			case auth.SyncTokenExpired:
				fmt.Println(cli.FormatWarning("Session expired. Please sign in again."))
			}
			return nil
		},
	}
}

func updateProfileCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Change name and email (applied locally, synced when possible)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := client.UpdateProfile(cmd.Context(), name, email); err != nil {
				return reportAuthErr(err)
			}
			fmt.Println(cli.FormatSuccess("Profile updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func changePasswordCmd() *cobra.Command {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if oldPassword == "" {
				if oldPassword, err = promptLine("Current password"); err != nil {
					return err
				}
			}
			if newPassword == "" {
				if newPassword, err = promptLine("New password"); err != nil {
					return err
				}
			}

			if err := client.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return reportAuthErr(err)
			}
			fmt.Println(cli.FormatSuccess("Password changed"))
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "current password (prompted when omitted)")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password (prompted when omitted)")
	return cmd
}

func deleteAccountCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the server account and sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if !confirm("Delete your account? This cannot be undone.", assumeYes) {
				fmt.Println(cli.FormatInfo("Cancelled"))
				return nil
			}

			if err := client.DeleteAccount(cmd.Context()); err != nil {
				return reportAuthErr(err)
			}
			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
