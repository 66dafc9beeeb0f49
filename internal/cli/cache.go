package cli

import (
	"fmt"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: MsgCacheShort,
		Long:  MsgCacheLong,
	}

	// withStore loads the config and store before running fn.
	withStore := func(fn func(cmd *cobra.Command, store *catalog.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			store, err := env.store(cfg)
			if err != nil {
				return err
			}
			return fn(cmd, store)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: MsgCacheInfoShort,
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store *catalog.Store) error {
			renderer, err := env.renderer(cmd)
			if err != nil {
				return err
			}
			info := store.CacheInfo()
			return renderer.RenderCacheInfo(&info)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: MsgCacheClearShort,
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store *catalog.Store) error {
			if err := store.ClearCache(); err != nil {
				return err
			}
			renderer, err := env.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgCacheCleared, store.CachePath()))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: MsgCacheRefreshShort,
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store *catalog.Store) error {
			fetched, err := store.FetchAll(cmd.Context(), true)
			if err != nil {
				return err
			}
			renderer, err := env.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgCacheRefreshed,
				humanize.Comma(int64(len(fetched.Records))), fetched.Source))
		}),
	})

	return cmd
}
