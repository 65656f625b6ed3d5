package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/git"
)

// newTagsCmd lists the tag sequence the range resolver works from.
func newTagsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags sorted by creation date, newest first",
		Long: `List all tags in the repository sorted by creation date, newest first.

This is the exact sequence the range resolver consults: the entry
immediately after a tag is its predecessor.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !git.IsRepository(root.repoPath) {
				path := root.repoPath
				if path == "" {
					path, _ = os.Getwd()
				}
				return errors.NotARepository(path)
			}

			tags := git.NewClient(root.repoPath).Tags()
			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
				return nil
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
