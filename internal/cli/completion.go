package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/config"
	"github.com/matzehuels/pangraph/pkg/store"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pangraph.

Input arguments complete to .json path documents for align and summarize
and to allele matrices for haplo. The levels subcommands complete graph IDs
and zooms from the configured store.

Examples:
  source <(pangraph completion bash)
  pangraph completion zsh > "${fpath[1]}/_pangraph"
  pangraph completion fish > ~/.config/fish/completions/pangraph.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

type completeFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeFiles completes a single positional input file by extension.
func completeFiles(exts ...string) completeFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeStored completes "<graph-id> [zoom]" from the configured store.
// Completion runs without the root pre-run, so the config is loaded here.
func (c *CLI) completeStored(withZoom bool) completeFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 1 || (len(args) == 1 && !withZoom) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := store.Open(ctx, cfg.StoreOptions())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer st.Close(context.WithoutCancel(ctx))
		return storedCandidates(ctx, st, args, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// storedCandidates lists graph IDs for the first argument and the stored
// zooms of args[0] for the second.
func storedCandidates(ctx context.Context, st store.Store, args []string, toComplete string) []string {
	var all []string
	switch len(args) {
	case 0:
		ids, err := st.Graphs(ctx)
		if err != nil {
			return nil
		}
		all = ids
	case 1:
		snaps, err := st.Levels(ctx, args[0])
		if err != nil {
			return nil
		}
		for _, s := range snaps {
			all = append(all, strconv.Itoa(s.Zoom))
		}
	}
	var out []string
	for _, v := range all {
		if strings.HasPrefix(v, toComplete) {
			out = append(out, v)
		}
	}
	return out
}
