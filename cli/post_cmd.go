package cli

import (
	"github.com/octabyte/bm-social/authoring"
	"github.com/spf13/cobra"
)

func newPostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Author posts",
	}
	cmd.AddCommand(newPostCreateCmd(app))
	return cmd
}

func newPostCreateCmd(app *App) *cobra.Command {
	var (
		description string
		video       bool
	)

	cmd := &cobra.Command{
		Use:   "create [flags] FILE...",
		Short: "Create a post from up to 3 images or 1 video",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.apiClient(ctx)
			if err != nil {
				return err
			}

			flow := authoring.NewFlow(client,
				authoring.WithNavigator(app.navigator()),
				authoring.WithSuccessBannerDuration(app.cfg.SuccessBanner),
				authoring.WithNotifiers(app.notifiers()...),
			)
			defer func() { _ = flow.Close() }()

			flow.Focus()
			if err := flow.SetVideoMode(video); err != nil {
				return err
			}
			if err := flow.SetDescription(description); err != nil {
				return err
			}

			files := make([]authoring.MediaFile, 0, len(args))
			for _, path := range args {
				file, err := authoring.OpenMediaFile(path)
				if err != nil {
					return err
				}
				files = append(files, file)
			}
			if err := flow.Select(files...); err != nil {
				return err
			}

			post, err := flow.Submit(ctx)
			if err != nil {
				return err
			}
			app.printf("%s (id %d)\n", authoring.MsgPostCreated, post.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "message", "m", "", "post description")
	cmd.Flags().BoolVar(&video, "video", false, "upload a single video instead of images")
	return cmd
}
