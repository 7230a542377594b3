package messages

// Installer messages for vtx-install and the fetch pipeline.
const (
	// Tag prefixes every line the installer and launcher print.
	Tag = "[VTX]"
	// ErrorLineFmt formats a fatal error on stderr: tag, then the error.
	ErrorLineFmt = "%s error: %v\n"

	InstallUse   = "vtx-install"
	InstallShort = "Download, verify, and install the vtx CLI"
	InstallLong  = `vtx-install resolves a vtx release, downloads the archive for this platform,
verifies its SHA-256 checksum, and installs the vtx executable.

Environment:
  VTX_VERSION / VERSION   release tag to install (default "latest")
  VTX_REPO / REPO         GitHub repository "owner/name"
  GITHUB_TOKEN            optional token used for GitHub requests
  VTX_INSTALL_DIR         install directory (default ~/.vtx/bin)
  VTX_BINARY              executable name and archive prefix (default "vtx")
  VTX_CONFIG              config file (default ~/.vtx/config.toml)
  VTX_DEBUG               debug logging to stderr
  QUIET                   suppress progress output
  NO_PATH                 skip the PATH hint`

	InstallFlagTag        = "Release tag to install, or \"latest\""
	InstallFlagRepo       = "GitHub repository in owner/name form"
	InstallFlagInstallDir = "Directory the vtx executable is installed into"
	InstallFlagQuiet      = "Suppress non-error output"
	InstallFlagNoPath     = "Do not print a PATH hint after installing"
	InstallUnexpectedArgs = "vtx-install takes no positional arguments (got %q)"

	InstallResolvingFmt = "Resolving %s release of %s...\n"
	InstallResolvedFmt  = "Using release %s\n"
	InstallFetchingFmt  = "Downloading %s...\n"
	InstallVerifiedFmt  = "Verified SHA-256 of %s\n"
	InstallDoneFmt      = "Installed %s %s to %s\n"
	InstallPathHintFmt  = "Add %s to your PATH to run vtx directly.\n"

	InstallCreateScratchFmt = "create scratch workspace: %w"
	InstallOpenArchiveFmt   = "open archive %s: %w"
	InstallGzipReaderFmt    = "read gzip stream: %w"
	InstallReadTarFmt       = "read tar entry: %w"
	InstallReadZipFmt       = "read zip archive: %w"
	InstallIllegalPathFmt   = "archive entry %q escapes extraction directory"
	InstallCreateDirFmt     = "create directory %s: %w"
	InstallWriteEntryFmt    = "write %s: %w"
	InstallUnknownKindFmt   = "unknown archive kind %q"
	InstallMissingBinaryFmt = "executable %s not found in archive %s"
	InstallCreateTempFmt    = "create temp file in %s: %w"
	InstallCopyBinaryFmt    = "copy executable to %s: %w"
	InstallChmodFmt         = "set executable permissions on %s: %w"
	InstallReplaceFmt       = "replace %s: %w"
	InstallWalkFmt          = "search extracted files: %w"
	InstallAssetMissingFmt  = "release %s does not publish %s: %w"

	InstallLogPlatform  = "detected platform"
	InstallLogResolved  = "resolved release"
	InstallLogArtifact  = "located artifact"
	InstallLogScratch   = "created scratch workspace"
	InstallLogVerified  = "checksum verified"
	InstallLogInstalled = "installed executable"
	InstallLogCleanup   = "remove scratch workspace"

	PlatformUnsupportedFmt = "unsupported platform %s/%s (supported: linux, darwin, windows on amd64, arm64)"

	ResolveInvalidRepoFmt   = "invalid repository %q: expected owner/name"
	ResolveInvalidTagFmt    = "invalid release tag %q"
	ResolveRequestFmt       = "resolve latest release of %s: %v"
	ResolveStatusFmt        = "resolve latest release of %s: unexpected status %s"
	ResolveRateLimitedFmt   = "resolve latest release of %s: GitHub API rate limit exceeded (%s); set GITHUB_TOKEN to raise the limit"
	ResolveDecodeFmt        = "resolve latest release of %s: malformed response: %v"
	ResolveMissingTagFmt    = "resolve latest release of %s: response has no tag_name"
	LocateUnresolvedSpecFmt = "release %s of %s has not been resolved"

	FetchRequestFmt    = "download %s: %v"
	FetchStatusFmt     = "download %s: unexpected status %s"
	FetchTooLargeFmt   = "download %s: response exceeds %d bytes"
	FetchCreateFileFmt = "download %s: create %s: %v"
	FetchWriteFileFmt  = "download %s: write %s: %v"
	FetchDownloadedFmt = "Downloaded %s (%s)\n"

	VerifyOpenFmt          = "open %s: %w"
	VerifyHashFmt          = "hash %s: %w"
	VerifyReadChecksumFmt  = "read checksum file %s: %w"
	VerifyEmptyChecksumFmt = "checksum file %s is empty"
	VerifyBadDigestFmt     = "checksum file %s does not start with a SHA-256 hex digest (got %q)"
	VerifyMismatchFmt      = "checksum mismatch for %s (expected %s, got %s)"

	ConfigReadFileFmt      = "read config %s: %w"
	ConfigParseFileFmt     = "parse config %s: %w"
	ConfigResolveHomeFmt   = "resolve home directory: %w"
	ConfigUnknownKeysFmt   = "config %s has unrecognized keys: %w"
	ConfigInvalidBytesFmt  = "invalid %s %q: expected a positive byte count"
	ConfigInvalidBinaryFmt = "invalid binary name %q: must be a plain file name"
)
