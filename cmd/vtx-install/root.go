package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vtx-plugins/vtx-installer/internal/config"
	"github.com/vtx-plugins/vtx-installer/internal/install"
	"github.com/vtx-plugins/vtx-installer/internal/logging"
	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

const (
	flagTag        = "tag"
	flagRepo       = "repo"
	flagInstallDir = "install-dir"
	flagQuiet      = "quiet"
	flagNoPath     = "no-path"
)

type installFlags struct {
	tag        string
	repo       string
	installDir string
	quiet      bool
	noPath     bool
}

func newRootCmd() *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:           messages.InstallUse,
		Short:         messages.InstallShort,
		Long:          messages.InstallLong,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf(messages.InstallUnexpectedArgs, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flags)
			return runInstall(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&flags.tag, flagTag, "", messages.InstallFlagTag)
	cmd.Flags().StringVar(&flags.repo, flagRepo, "", messages.InstallFlagRepo)
	cmd.Flags().StringVar(&flags.installDir, flagInstallDir, "", messages.InstallFlagInstallDir)
	cmd.Flags().BoolVarP(&flags.quiet, flagQuiet, "q", false, messages.InstallFlagQuiet)
	cmd.Flags().BoolVar(&flags.noPath, flagNoPath, false, messages.InstallFlagNoPath)
	return cmd
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags installFlags) {
	changed := cmd.Flags().Changed
	if changed(flagTag) {
		cfg.Version = flags.tag
	}
	if changed(flagRepo) {
		cfg.Repo = flags.repo
	}
	if changed(flagInstallDir) {
		cfg.InstallDir = flags.installDir
	}
	if changed(flagQuiet) {
		cfg.Quiet = flags.quiet
	}
	if changed(flagNoPath) {
		cfg.NoPath = flags.noPath
	}
}

func runInstall(ctx context.Context, cfg config.Config, stdout io.Writer, stderr io.Writer) error {
	colors := logging.ColorEnabled(stderr, getenv)
	report := logging.NewReporter(stderr, cfg.Quiet, colors)

	runner, err := install.New(cfg, install.Options{
		UserAgent: "vtx-install/" + Version,
		Report:    report,
		Log:       logging.New(stderr, cfg.Debug, colors),
	})
	if err != nil {
		return err
	}
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		_, _ = fmt.Fprintf(stdout, messages.InstallDoneFmt, cfg.BinaryName(), result.Tag, result.Path)
	}
	dir := filepath.Dir(result.Path)
	if !cfg.NoPath && !onSearchPath(dir, cfg.SearchPath) {
		report.Printf(messages.InstallPathHintFmt, dir)
	}
	return nil
}

// onSearchPath reports whether dir is one of the entries of searchPath.
func onSearchPath(dir string, searchPath string) bool {
	want := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(searchPath) {
		if entry == "" {
			continue
		}
		got := filepath.Clean(entry)
		if got == want || (runtime.GOOS == "windows" && strings.EqualFold(got, want)) {
			return true
		}
	}
	return false
}
