package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/store"
)

// newStoreCmd creates the store management command. The backend is
// chosen by the config file: a local directory by default, MongoDB when
// store.mongo_uri is set.
func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the document store",
	}

	cmd.AddCommand(newStorePushCmd())
	cmd.AddCommand(newStorePullCmd())
	cmd.AddCommand(newStoreListCmd())
	cmd.AddCommand(newStoreRmCmd())
	return cmd
}

func newStorePushCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Store a document under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.ReadFile(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), ".json")
			}
			return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				meta, err := st.Put(ctx, name, doc)
				if err != nil {
					return err
				}
				printSuccess("Stored %q", meta.Name)
				printDetail("hash %s", meta.Hash)
				printStats(meta.Components, meta.Connections, false)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "store name (default: file name without .json)")
	return cmd
}

func newStorePullCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull <name>",
		Short: "Fetch a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				doc, err := st.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if output == "" {
					output = args[0] + ".json"
				}
				if err := document.WriteFile(doc, output); err != nil {
					return err
				}
				printSuccess("Pulled %q", args[0])
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

func newStoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				metas, err := st.List(ctx)
				if err != nil {
					return err
				}
				if len(metas) == 0 {
					printInfo("Store is empty")
					return nil
				}
				for _, meta := range metas {
					printKeyValue(meta.Name, fmt.Sprintf("%d components, %d connections, updated %s",
						meta.Components, meta.Connections, meta.UpdatedAt.Format("2006-01-02 15:04")))
				}
				return nil
			})
		},
	}
}

func newStoreRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %q", args[0])
				return nil
			})
		},
	}
}

// withStore opens the configured store backend, runs fn, and closes the
// backend afterwards.
func withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return fn(ctx, st)
}
