// Package exitcode provides standardized exit codes for fontvault
package exitcode

// Exit codes for the fontvault CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ManifestError   = 3
	FileSystemError = 4
	NothingToDo     = 5
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ManifestError:
		return "Manifest error"
	case FileSystemError:
		return "File system error"
	case NothingToDo:
		return "Nothing to do"
	default:
		return "Unknown error"
	}
}
