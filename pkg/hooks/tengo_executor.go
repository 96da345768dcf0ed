package hooks

import (
	"fmt"
	"os"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	pkgerrors "github.com/glue-tools/gluefetch/pkg/errors"
)

// TengoExecutor handles the execution of Tengo hook scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the specified hook type with the given context.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil // No script for this hook type
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "times"))

	if err := scriptInstance.Add("packageName", ctx.PackageName); err != nil {
		return fmt.Errorf("failed to add packageName to script: %w", err)
	}
	if err := scriptInstance.Add("packageVersion", ctx.PackageVersion); err != nil {
		return fmt.Errorf("failed to add packageVersion to script: %w", err)
	}
	if err := scriptInstance.Add("installPath", ctx.InstallPath); err != nil {
		return fmt.Errorf("failed to add installPath to script: %w", err)
	}
	for k, v := range ctx.Vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, pkgerrors.ErrHookExecution, err)
	}

	// A script signals failure by setting a non-empty "err" variable.
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%w: %w", pkgerrors.ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%w: %s", pkgerrors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// AddScriptFile loads a script from a file and registers it for hookType.
func (e *TengoExecutor) AddScriptFile(hookType HookType, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", pkgerrors.ErrHookLoad, path, err)
	}
	e.AddScript(hookType, string(content))
	return nil
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
