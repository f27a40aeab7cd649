// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants helps avoid drift between Cobra flag wiring
// and other code paths that reference flags in messages.
package flags

// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Models
	FlagModel    = "model"
	FlagCacheDir = "cache-dir"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagNoConsole           = "no-console"

	// Export
	FlagSource   = "source"
	FlagOpset    = "opset"
	FlagSimplify = "simplify"
	FlagFetch    = "fetch"

	// Fetch
	FlagAssetRepo   = "asset-repo"
	FlagTag         = "tag"
	FlagAssets      = "assets"
	FlagDest        = "dest"
	FlagConcurrency = "concurrency"
)
