package cli

import (
	"github.com/octabyte/bm-social/auth"
	"github.com/octabyte/bm-social/models"
	"github.com/octabyte/bm-social/posts"
	"github.com/spf13/cobra"
)

func (a *App) authFlow(cmd *cobra.Command) (*auth.Flow, error) {
	client, err := a.apiClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return auth.NewFlow(client, a.sessions, a.navigator()), nil
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.authFlow(cmd)
			if err != nil {
				return err
			}
			if email, err = app.valueOrPrompt(email, "Email"); err != nil {
				return err
			}
			if password, err = app.valueOrPrompt(password, "Password"); err != nil {
				return err
			}

			session, err := flow.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			app.printf("Welcome, %s %s\n", session.FirstName, session.LastName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLoginGoogleCmd(app *App) *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "login-google",
		Short: "Exchange a Google identity credential for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.authFlow(cmd)
			if err != nil {
				return err
			}
			session, err := flow.LoginWithOAuthCredential(cmd.Context(), credential)
			if err != nil {
				return err
			}
			app.printf("Welcome, %s %s\n", session.FirstName, session.LastName)
			return nil
		},
	}
	cmd.Flags().StringVar(&credential, "credential", "", "credential returned by Google sign-in")
	_ = cmd.MarkFlagRequired("credential")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var r models.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.authFlow(cmd)
			if err != nil {
				return err
			}
			if r.Password, err = app.valueOrPrompt(r.Password, "Password"); err != nil {
				return err
			}
			if r.ConfirmPassword, err = app.valueOrPrompt(r.ConfirmPassword, "Confirm password"); err != nil {
				return err
			}

			if err := flow.Register(cmd.Context(), r); err != nil {
				return err
			}
			app.printf("Registered %s\n", r.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&r.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&r.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&r.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&r.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&r.ConfirmPassword, "confirm-password", "", "password again (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.postsFlow(cmd, false)
			if err != nil {
				return err
			}
			if err := flow.Logout(cmd.Context()); err != nil {
				return err
			}
			app.printf("Signed out\n")
			return nil
		},
	}
}

func (a *App) postsFlow(cmd *cobra.Command, assumeYes bool) (*posts.Flow, error) {
	client, err := a.apiClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return posts.NewFlow(client, a.sessions, a.navigator(), a.confirmer(assumeYes)), nil
}
