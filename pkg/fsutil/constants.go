package fsutil

// File and directory permission constants used throughout the application.
const (
	// FileModeDefault is the default mode for regular files (-rw-r--r--).
	FileModeDefault = 0o644
	// FileModeSecure is used for downloaded archives (-rw-r-----).
	FileModeSecure = 0o640
	// FileModeExec is used for executable files (-rwxr-xr-x).
	FileModeExec = 0o755

	// DirModeDefault is the default mode for directories (drwxr-xr-x).
	DirModeDefault = 0o755
	// DirModeSecure is used for staging directories (drwxr-x---).
	DirModeSecure = 0o750
)
