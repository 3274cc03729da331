package infer

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SolverHandle is a scoped external-solver resource (an LP/ILP process or
// connection): acquired at the start of an inference call and released on
// every exit path, including panics (§5's "Resource acquisition").
type SolverHandle struct {
	ID    uuid.UUID
	name  string
	alive bool
}

// AcquireSolver acquires a named external solver handle. Callers must defer
// Release immediately after a successful acquire.
func AcquireSolver(name string) (*SolverHandle, error) {
	if name == "" {
		return nil, fmt.Errorf("infer: solver name must not be empty")
	}

	h := &SolverHandle{ID: uuid.New(), name: name, alive: true}

	log.WithFields(log.Fields{"solver": name, "handle": h.ID}).Debug("solver handle acquired")

	return h, nil
}

// Release releases the handle. It is idempotent: releasing an
// already-released handle is a no-op, so a deferred Release is always safe
// even after an earlier explicit Release on a non-error path.
func (h *SolverHandle) Release() {
	if h == nil || !h.alive {
		return
	}

	h.alive = false

	log.WithFields(log.Fields{"solver": h.name, "handle": h.ID}).Debug("solver handle released")
}

// Alive reports whether the handle has not yet been released.
func (h *SolverHandle) Alive() bool {
	return h != nil && h.alive
}
