// Package hooks runs user-provided Tengo scripts around provisioning runs.
package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
)

// HookContext contains information passed to hook scripts.
type HookContext struct {
	PackageName    string
	PackageVersion string
	InstallPath    string
	Vars           map[string]interface{}
}

// Executor defines the interface for running hook scripts.
type Executor interface {
	// Execute runs the script registered for hookType, if any.
	Execute(hookType HookType, ctx HookContext) error

	// HasScript checks if a script exists for the specified hook type.
	HasScript(hookType HookType) bool
}
