package install

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/vtx-plugins/vtx-installer/internal/config"
	"github.com/vtx-plugins/vtx-installer/internal/fetch"
	"github.com/vtx-plugins/vtx-installer/internal/logging"
	"github.com/vtx-plugins/vtx-installer/internal/messages"
	"github.com/vtx-plugins/vtx-installer/internal/platform"
	"github.com/vtx-plugins/vtx-installer/internal/release"
	"github.com/vtx-plugins/vtx-installer/internal/verify"
)

// Resolver turns a requested version into a concrete tag.
type Resolver interface {
	Resolve(ctx context.Context, spec release.Spec) (release.Spec, error)
}

// Fetcher downloads a set of files.
type Fetcher interface {
	FetchAll(ctx context.Context, jobs ...fetch.Job) error
}

// ArchiveInstaller installs the executable contained in a verified archive.
type ArchiveInstaller interface {
	Install(archivePath string, kind release.Kind, finalPath string) error
}

// Result describes a completed install.
type Result struct {
	Tag      string
	Path     string
	Artifact release.Artifact
}

// Runner performs one install: resolve, locate, download, verify, install.
type Runner struct {
	Spec        release.Spec
	Platform    platform.Key
	Binary      string
	ReleaseHost string
	FinalPath   string
	// ScratchParent is where the scratch workspace is created; empty means os.TempDir.
	ScratchParent string

	Resolver  Resolver
	Fetcher   Fetcher
	Installer ArchiveInstaller
	Report    *logging.Reporter
	Log       zerolog.Logger
}

// Options supplies the process-level collaborators of New.
type Options struct {
	HTTPClient    *http.Client
	UserAgent     string
	ScratchParent string
	Report        *logging.Reporter
	Log           zerolog.Logger
}

// New builds a Runner from cfg. The platform is detected first, so an
// unsupported host fails before any network client exists.
func New(cfg config.Config, opts Options) (*Runner, error) {
	key, err := platform.Detect(platform.Overrides{OS: cfg.OS, Arch: cfg.Arch})
	if err != nil {
		return nil, err
	}
	opts.Log.Debug().Str("platform", key.String()).Msg(messages.InstallLogPlatform)

	return &Runner{
		Spec:          release.Spec{Repo: cfg.Repo, Requested: cfg.Version},
		Platform:      key,
		Binary:        cfg.BinaryName(),
		ReleaseHost:   cfg.ReleaseHost,
		FinalPath:     cfg.BinaryPath(key.IsWindows()),
		ScratchParent: opts.ScratchParent,
		Resolver: release.NewResolver(release.ResolverOptions{
			Client:    opts.HTTPClient,
			APIHost:   cfg.APIHost,
			Token:     cfg.Token,
			UserAgent: opts.UserAgent,
		}),
		Fetcher: fetch.New(fetch.Options{
			Client:    opts.HTTPClient,
			Token:     cfg.Token,
			UserAgent: opts.UserAgent,
			MaxBytes:  cfg.MaxDownloadBytes,
			Progress:  opts.Report.Writer(),
		}),
		Installer: Installer{
			ExecutableName: key.ExecutableName(cfg.BinaryName()),
			Windows:        key.IsWindows(),
		},
		Report: opts.Report,
		Log:    opts.Log,
	}, nil
}

// Run performs the install. The scratch workspace is removed on every path.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.Report.Printf(messages.InstallResolvingFmt, displayVersion(r.Spec.Requested), r.Spec.Repo)
	resolved, err := r.Resolver.Resolve(ctx, r.Spec)
	if err != nil {
		return Result{}, err
	}
	r.Log.Debug().Str("requested", resolved.Requested).Str("tag", resolved.Resolved).Msg(messages.InstallLogResolved)
	r.Report.Printf(messages.InstallResolvedFmt, resolved.Resolved)

	artifact, err := release.Locate(resolved, r.Platform, r.binary(), r.ReleaseHost)
	if err != nil {
		return Result{}, err
	}
	r.Log.Debug().Str("archive", artifact.ArchiveURL()).Str("checksum", artifact.ChecksumURL()).Msg(messages.InstallLogArtifact)

	parent := r.ScratchParent
	if parent == "" {
		parent = os.TempDir()
	}
	ws, err := newWorkspace(parent)
	if err != nil {
		return Result{}, err
	}
	r.Log.Debug().Str("dir", ws.dir).Msg(messages.InstallLogScratch)
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			r.Log.Warn().Err(cerr).Str("dir", ws.dir).Msg(messages.InstallLogCleanup)
		}
	}()

	archivePath := ws.path(artifact.ArchiveName)
	checksumPath := ws.path(artifact.ChecksumName)
	r.Report.Printf(messages.InstallFetchingFmt, artifact.ArchiveName)
	if err := r.Fetcher.FetchAll(ctx,
		fetch.Job{URL: artifact.ArchiveURL(), Dest: archivePath},
		fetch.Job{URL: artifact.ChecksumURL(), Dest: checksumPath},
	); err != nil {
		if fetch.IsNotFound(err) {
			return Result{}, fmt.Errorf(messages.InstallAssetMissingFmt, resolved.Resolved, artifact.ArchiveName, err)
		}
		return Result{}, err
	}

	if err := verify.Verify(archivePath, checksumPath); err != nil {
		return Result{}, err
	}
	r.Log.Debug().Str("archive", artifact.ArchiveName).Msg(messages.InstallLogVerified)
	r.Report.Printf(messages.InstallVerifiedFmt, artifact.ArchiveName)

	if err := r.Installer.Install(archivePath, artifact.Kind, r.FinalPath); err != nil {
		return Result{}, err
	}
	r.Log.Debug().Str("path", r.FinalPath).Msg(messages.InstallLogInstalled)

	return Result{Tag: resolved.Resolved, Path: r.FinalPath, Artifact: artifact}, nil
}

func (r *Runner) binary() string {
	if r.Binary == "" {
		return config.DefaultBinary
	}
	return r.Binary
}

func displayVersion(requested string) string {
	if release.IsLatest(requested) {
		return release.Latest
	}
	return requested
}
