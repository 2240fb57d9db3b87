package cli

import (
	"github.com/octabyte/bm-social/profile"
	"github.com/spf13/cobra"
)

func (a *App) profileFlow(cmd *cobra.Command) (*profile.Flow, error) {
	sessions, err := a.sessionContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	return profile.NewFlow(sessions, a.navigator()), nil
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.profileFlow(cmd)
			if err != nil {
				return err
			}
			identity, err := flow.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			app.printf("Welcome back, %s\n", identity.FullName())
			if identity.Email != "" {
				app.printf("%s\n", identity.Email)
			}
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile of the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.profileFlow(cmd)
			if err != nil {
				return err
			}
			identity, err := flow.Profile(cmd.Context())
			if err != nil {
				return err
			}
			app.printf("Name:   %s\nEmail:  %s\nAvatar: %s\n", identity.FullName(), identity.Email, identity.AvatarURL)
			return nil
		},
	}
}
