package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pangraph/pkg/errors"
	pgio "github.com/matzehuels/pangraph/pkg/io"
	"github.com/matzehuels/pangraph/pkg/store"
)

// levelsCommand creates the levels command for browsing the level store.
func (c *CLI) levelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Browse graphs and levels in the store",
		Long: `Browse the sealed levels saved by align, haplo and summarize --save.

The memory store lives only as long as one process; configure the mongo
backend to keep levels between runs.`,
	}

	cmd.AddCommand(c.levelsListCommand())
	cmd.AddCommand(c.levelsShowCommand())
	cmd.AddCommand(c.levelsExportCommand())
	cmd.AddCommand(c.levelsDeleteCommand())

	return cmd
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	if c.Config.Store.Backend == store.BackendMemory {
		printWarning("The memory store is empty in a new process")
	}
	st, err := store.Open(ctx, c.Config.StoreOptions())
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))
	return fn(st)
}

func (c *CLI) levelsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				ids, err := st.Graphs(ctx)
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("No graphs stored")
					return nil
				}
				for _, id := range ids {
					snaps, err := st.Levels(ctx, id)
					if err != nil {
						return err
					}
					printKeyValue(strconv.Itoa(len(snaps))+" levels", id)
				}
				return nil
			})
		},
	}
}

func (c *CLI) levelsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <graph-id>",
		Short:             "Show the levels of a stored graph",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeStored(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				g, err := store.LoadGraph(ctx, st, args[0])
				if err != nil {
					return err
				}
				printKeyValue("graph", g.ID)
				printKeyValue("name", g.Name)
				printKeyValue("specimens", strconv.Itoa(g.SpecimenCount()))
				printLevels(g)
				return nil
			})
		},
	}
}

func (c *CLI) levelsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "export <graph-id> [zoom]",
		Short:             "Export one level of a stored graph as slices",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: c.completeStored(true),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out = os.Stderr
			defer func() { out = os.Stdout }()
			return c.withStore(ctx, func(st store.Store) error {
				g, err := store.LoadGraph(ctx, st, args[0])
				if err != nil {
					return err
				}
				zoom := g.HighestZoom()
				if len(args) == 2 {
					if zoom, err = strconv.Atoi(args[1]); err != nil {
						return errors.New(errors.ErrCodeMalformedInput, "zoom %q is not a number", args[1])
					}
				}
				if output == "" {
					return pgio.WriteLevel(os.Stdout, g, zoom)
				}
				f, err := os.Create(output)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "create %s", output)
				}
				defer f.Close()
				if err := pgio.WriteLevel(f, g, zoom); err != nil {
					return err
				}
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) levelsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <graph-id>",
		Short:             "Delete every stored level of a graph",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeStored(false),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(st store.Store) error {
				if err := st.DeleteGraph(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted graph %s", args[0])
				return nil
			})
		},
	}
}
