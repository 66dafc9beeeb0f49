package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/brewadopt/pkg/config"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newConfigCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.config()
			if err != nil {
				return err
			}
			out, err := config.Generate(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, MsgConfigSourceLine, strings.Join(cfg.Source, ", ")); err != nil {
				return err
			}
			_, err = io.WriteString(w, out)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := env.flags.configPath
			if target == "" {
				p, err := paths.New()
				if err != nil {
					return err
				}
				target = p.ConfigFilePath()
			}
			target = paths.ExpandHome(target)

			return writeConfigFile(cmd, env.opts.FS, target, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.AddCommand(initCmd)

	return cmd
}

func writeConfigFile(cmd *cobra.Command, fsys afero.Fs, target string, force bool) error {
	exists, err := afero.Exists(fsys, target)
	if err != nil {
		return errors.FromFSError(err, target)
	}
	if exists && !force {
		return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target).WithDetail("path", target)
	}

	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.FromFSError(err, filepath.Dir(target))
	}
	if err := afero.WriteFile(fsys, target, []byte(config.GenerateCommented()), 0644); err != nil {
		return errors.FromFSError(err, target)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", target)
	return err
}
