package cli

import (
	"context"
	"io"

	"github.com/octabyte/bm-social/errs"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bm-social",
		Short:         "Command line client for the bm-social posting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context())
		},
	}

	root.SetIn(app.in)
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	root.AddCommand(
		newLoginCmd(app),
		newLoginGoogleCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newPostCmd(app),
		newPostsCmd(app),
		newDevServerCmd(app),
	)
	return root
}

// Run executes args and returns the process exit code. Failures are
// reported on errOut with the message meant for the user.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, opts ...Option) int {
	app := NewApp(in, out, errOut, opts...)
	defer func() { _ = app.Close() }()

	root := NewRootCommand(app)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = io.WriteString(errOut, "Error: "+errs.UserMessage(err, err.Error())+"\n")
		return 1
	}
	return 0
}
