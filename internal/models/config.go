package models

// InstallConfig contains configuration for an install or uninstall run
type InstallConfig struct {
	// Input
	Lockfile   string
	Categories []string // Categories to select, "main" when unset

	// Platform selection
	Platform       string // Explicit platform, inferred from the lockfile when empty
	DetectPlatform bool   // Compute the platform from the host OS and architecture

	// Installer
	PipLocation string
	DryRun      bool
	Uninstall   bool

	// Verification
	SignaturePath string // Detached OpenPGP signature of the lockfile
	KeyringPath   string // Public keyring used to check SignaturePath
}
