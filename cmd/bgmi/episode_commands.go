package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var count int
	var filter string

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search releases, one per episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			found, err := env.Website.Search(cmd.Context(), args[0], count, filter)
			if err != nil {
				return err
			}
			terminal.RenderEpisodes(cmd.OutOrStdout(), found)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 30, "Number of releases to read from the source")
	cmd.Flags().StringVar(&filter, "regex-filter", "", "Keep titles starting with this pattern")
	return cmd
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var notIgnore bool
	var maxPage int

	cmd := &cobra.Command{
		Use:   "fetch <name>",
		Short: "List the releases of a stored show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			b, err := env.Follow.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("bangumi %s: %w", args[0], err)
			}
			if maxPage <= 0 {
				maxPage = env.Config.MaxPage
			}
			latest, data, err := env.Website.GetMaximumEpisode(cmd.Context(), b, true, !notIgnore, maxPage)
			if err != nil {
				return err
			}
			terminal.RenderEpisodes(cmd.OutOrStdout(), data)
			fmt.Fprintf(cmd.OutOrStdout(), "latest episode: %d\n", latest.Number())
			return nil
		},
	}
	cmd.Flags().BoolVar(&notIgnore, "not-ignore", false, "Keep releases older than three months")
	cmd.Flags().IntVar(&maxPage, "max-page", 0, "Pages to read from the source (default from config)")
	return cmd
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update [name...]",
		Short: "Check followed shows for new episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			results, err := env.Updates.Update(cmd.Context(), args...)
			if err != nil {
				return err
			}
			terminal.RenderUpdates(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var episode int

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Follow shows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			followed := make([]domain.Bangumi, 0, len(args))
			for _, name := range args {
				b, err := env.Follow.Follow(cmd.Context(), name, episode)
				if err != nil {
					return fmt.Errorf("follow %s: %w", name, err)
				}
				followed = append(followed, b)
			}
			terminal.RenderBangumi(cmd.OutOrStdout(), followed)
			return nil
		},
	}
	cmd.Flags().IntVar(&episode, "episode", 0, "Episode already watched")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name...>",
		Short: "Stop following shows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range args {
				if _, err := env.Follow.Unfollow(cmd.Context(), name); err != nil {
					return fmt.Errorf("unfollow %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "unfollowed %s\n", name)
			}
			return nil
		},
	}
}

func newMarkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <name> <episode>",
		Short: "Record the last watched episode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			episode, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid episode %q", args[1])
			}
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			b, err := env.Follow.Mark(cmd.Context(), args[0], episode)
			if err != nil {
				return err
			}
			terminal.RenderBangumi(cmd.OutOrStdout(), []domain.Bangumi{b})
			return nil
		},
	}
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var subtitle, include, exclude, regex string

	cmd := &cobra.Command{
		Use:   "filter <name>",
		Short: "Show or change the release filter of a followed show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := ctx.ensureEnv(cmd.Context())
			if err != nil {
				return err
			}
			f, err := env.Follow.GetFilter(cmd.Context(), args[0])
			if err != nil && !isNotFound(err) {
				return err
			}
			f.BangumiName = args[0]

			flags := cmd.Flags()
			changed := false
			for flag, field := range map[string]*string{
				"subtitle": &f.Subtitle,
				"include":  &f.Include,
				"exclude":  &f.Exclude,
				"regex":    &f.Regex,
			} {
				if flags.Changed(flag) {
					v, _ := flags.GetString(flag)
					*field = v
					changed = true
				}
			}
			if changed {
				if f, err = env.Follow.SetFilter(cmd.Context(), f); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subtitle: %s\ninclude: %s\nexclude: %s\nregex: %s\n", f.Subtitle, f.Include, f.Exclude, f.Regex)
			return nil
		},
	}
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Comma-separated subtitle group ids")
	cmd.Flags().StringVar(&include, "include", "", "Comma-separated words every title must contain")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Comma-separated words no title may contain")
	cmd.Flags().StringVar(&regex, "regex", "", "Pattern titles must match")
	return cmd
}

func isNotFound(err error) bool {
	return errors.Is(err, app.ErrNotFound)
}
