// Package maya is the built-in tool catalog: each tool pairs an argument
// schema with Python source that runs inside the host. Sources follow the
// host convention of returning a dict with a success flag, or raising for
// argument errors.
package maya

import (
	"github.com/danmuck/mayactl/internal/tools"
)

// Register installs the full built-in catalog into reg. Any collision or
// malformed spec fails registration, which is a process-init error.
func Register(reg *tools.Registry) error {
	groups := [][]tools.Spec{
		objectSpecs(),
		curveSpecs(),
		meshSpecs(),
		modelSpecs(),
		modelIOSpecs(),
		materialSpecs(),
		sceneSpecs(),
		screenshotSpecs(),
		sketchfabSpecs(),
	}
	for _, group := range groups {
		for _, spec := range group {
			if err := reg.Register(spec); err != nil {
				return err
			}
		}
	}
	return nil
}
