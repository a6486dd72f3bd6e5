package script

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/keybindings/bindings"
)

// Runner compiles and runs tengo scripts that can import the keybindings
// module.
type Runner struct {
	modules *tengo.ModuleMap
	logger  *slog.Logger
}

func NewRunner(a *bindings.Accessor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{modules: Modules(a), logger: logger}
}

// Run compiles src with vars defined as globals and runs it to completion.
// The compiled script is returned so callers can read globals it set.
func (r *Runner) Run(ctx context.Context, name string, src []byte, vars map[string]any) (*tengo.Compiled, error) {
	s := tengo.NewScript(src)
	s.SetImports(r.modules)
	for k, v := range vars {
		if err := s.Add(k, v); err != nil {
			return nil, fmt.Errorf("script: %s: add %s: %w", name, k, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: %s: compile: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: %s: run: %w", name, err)
	}
	r.logger.Debug("script: ran", "name", name)
	return compiled, nil
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string, vars map[string]any) (*tengo.Compiled, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return r.Run(ctx, path, src, vars)
}
