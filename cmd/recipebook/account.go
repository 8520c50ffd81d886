package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	emailFlag    string
	passwordFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the recipe backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.ctrl.SignIn(cmd.Context(), emailFlag, passwordFlag); err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		claims, err := e.sessions.Current(cmd.Context())
		if err == nil && claims.Name != "" {
			fmt.Printf("✅ Signed in as %s\n", claims.Name)
			return nil
		}
		fmt.Println("✅ Signed in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.ctrl.SignOut(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate [token]",
	Short: "Activate a new account with the token from the confirmation email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		auth, err := e.ctrl.Activate(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("activate: %w", err)
		}
		msg := "Account activated"
		if auth.Message != "" {
			msg = auth.Message
		}
		fmt.Println("✅ " + msg)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like [id]",
	Short: "Like a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.ctrl.SignedIn(cmd.Context()) {
			return fmt.Errorf("sign in first with 'recipebook login'")
		}
		like, err := e.ctrl.Like(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("like: %w", err)
		}
		fmt.Printf("♥ %d\n", like.Likes)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&emailFlag, "email", "", "account email")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(likeCmd)
}
