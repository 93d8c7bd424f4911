package commands

import (
	"github.com/spf13/cobra"

	"github.com/cafeorder/cafe-client/cmd/cafectl/output"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := sessionStore.Signup(cmd.Context(), authEmail, authPassword, authName)
		if err != nil {
			return err
		}
		output.Success("account created for %s", user.Email)
		output.Muted("log in with: cafectl login --email %s", user.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := sessionStore.Login(cmd.Context(), authEmail, authPassword)
		if err != nil {
			return err
		}
		output.Success("logged in as %s", user.Email)
		if user.IsAdmin {
			output.Muted("admin commands are available under: cafectl admin")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := sessionStore.Logout(cmd.Context()); err != nil {
			output.Warning("server session may still be open: %v", err)
		}
		output.Success("logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in user",
	RunE: func(_ *cobra.Command, _ []string) error {
		user, ok := sessionStore.CurrentUser()
		if !ok {
			output.Muted("not logged in")
			return nil
		}
		output.Primary("%s", user.Name)
		output.Info("email: %s", user.Email)
		if user.IsAdmin {
			output.Info("role: admin")
		}
		return nil
	},
}

var updateProfileCmd = &cobra.Command{
	Use:   "update-profile",
	Short: "Update name, email or password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		user, err := sessionStore.UpdateUserInfo(cmd.Context(), authEmail, authName, authPassword)
		if err != nil {
			return err
		}
		output.Success("profile updated for %s", user.Email)
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Delete your account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		ok, err := sessionStore.VerifyPassword(cmd.Context(), authPassword)
		if err != nil {
			return err
		}
		if !ok {
			output.Error("password does not match")
			return nil
		}

		if err := sessionStore.Withdraw(cmd.Context()); err != nil {
			return err
		}
		output.Success("account deleted")
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("name")

	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	updateProfileCmd.Flags().StringVar(&authEmail, "email", "", "New email")
	updateProfileCmd.Flags().StringVar(&authName, "name", "", "New display name")
	updateProfileCmd.Flags().StringVar(&authPassword, "password", "", "New password")

	withdrawCmd.Flags().StringVar(&authPassword, "password", "", "Current password, re-checked before deletion")
	_ = withdrawCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, meCmd, updateProfileCmd, withdrawCmd)
}
