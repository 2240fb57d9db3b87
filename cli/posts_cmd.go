package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/models"
	"github.com/octabyte/bm-social/posts"
	"github.com/octabyte/bm-social/utils"
	"github.com/spf13/cobra"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage your posts",
	}
	cmd.AddCommand(
		newPostsListCmd(app),
		newPostsEditCmd(app),
		newPostsDeleteCmd(app),
		newPostsImagesCmd(app),
	)
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

func newPostsListCmd(app *App) *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flow, err := app.postsFlow(cmd, false)
			if err != nil {
				return err
			}
			list, err := flow.FetchMine(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				app.printf("No posts yet\n")
				return nil
			}

			w := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tCREATED\tAUTHOR\tMEDIA\tDESCRIPTION")
			for _, p := range list {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, utils.FormatPostTime(p.CreatedAt.Time, timezone), p.Username, mediaSummary(p), p.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone for timestamps (default local)")
	return cmd
}

func mediaSummary(p models.Post) string {
	if p.MediaType == enums.MediaTypeVideo {
		return "video"
	}
	if len(p.ImageURLs) == 1 {
		return "1 image"
	}
	return fmt.Sprintf("%d images", len(p.ImageURLs))
}

func newPostsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TEXT",
		Short: "Replace the description of a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flow, err := app.postsFlow(cmd, false)
			if err != nil {
				return err
			}
			updated, err := flow.Edit(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			app.printf("Updated post %d: %s\n", updated.ID, updated.Description)
			return nil
		},
	}
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flow, err := app.postsFlow(cmd, yes)
			if err != nil {
				return err
			}
			if err := flow.Delete(cmd.Context(), id); err != nil {
				return err
			}
			app.printf("Deleted post %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newPostsImagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "images ID",
		Short: "Page through the images of a post (n: next, p: previous, q: quit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flow, err := app.postsFlow(cmd, false)
			if err != nil {
				return err
			}
			if _, err := flow.FetchMine(cmd.Context()); err != nil {
				return err
			}
			post, ok := flow.Post(id)
			if !ok {
				return fmt.Errorf("post %d not found", id)
			}

			var lightbox posts.Lightbox
			if !lightbox.Open(post.ImageURLs, 0) {
				app.printf("Post %d has no images\n", id)
				return nil
			}
			defer lightbox.Close()

			for {
				url, index := lightbox.Current()
				app.printf("[%d/%d] %s\n", index+1, lightbox.Len(), url)

				answer, err := app.readLine("(n)ext, (p)revious, (q)uit: ")
				if err != nil {
					return nil
				}
				switch answer {
				case "n", "":
					lightbox.Next()
				case "p":
					lightbox.Prev()
				case "q":
					return nil
				}
			}
		},
	}
}
