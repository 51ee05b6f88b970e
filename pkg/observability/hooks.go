// Package observability provides hooks for instrumenting codec runs.
//
// Libraries call the registered hooks; main (or a test) decides what they
// do. The defaults are no-ops, so nothing here costs anything unless a
// consumer opts in.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.LogHooks{Logger: logger})
//	    // ... run application
//	}
//
// The pipeline emits events around each stage:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageEncode, len(assets))
//	// ... encode ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageEncode, n, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Stage names one step of a codec run.
type Stage string

const (
	StageDiscover    Stage = "discover"
	StageParse       Stage = "parse"
	StageEncode      Stage = "encode"
	StageReconstruct Stage = "reconstruct"
	StageCommit      Stage = "commit"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a codec run.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage Stage, items int)
	OnStageComplete(ctx context.Context, stage Stage, items int, duration time.Duration, err error)

	// OnAssetParsed fires once per asset after quantization. It may be
	// called from several goroutines at once.
	OnAssetParsed(ctx context.Context, id string, primitives, dropped int)
}

// =============================================================================
// Commit Hooks
// =============================================================================

// CommitHooks receives events from output commits.
type CommitHooks interface {
	// OnCommit records a successful replacement of the output.
	OnCommit(ctx context.Context, digest string, changed bool, files int)

	// OnRollback records a commit that failed and left the previous output.
	OnRollback(ctx context.Context, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, Stage, int)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, Stage, int, time.Duration, error) {}
func (NoopPipelineHooks) OnAssetParsed(context.Context, string, int, int)                   {}

// NoopCommitHooks is a no-op implementation of CommitHooks.
type NoopCommitHooks struct{}

func (NoopCommitHooks) OnCommit(context.Context, string, bool, int) {}
func (NoopCommitHooks) OnRollback(context.Context, error)           {}

// =============================================================================
// Log Implementation
// =============================================================================

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogHooks) OnStageStart(_ context.Context, stage Stage, items int) {
	h.logger().Debug("stage start", "stage", stage, "items", items)
}

func (h LogHooks) OnStageComplete(_ context.Context, stage Stage, items int, d time.Duration, err error) {
	if err != nil {
		h.logger().Debug("stage failed", "stage", stage, "items", items, "duration", d, "error", err)
		return
	}
	h.logger().Debug("stage done", "stage", stage, "items", items, "duration", d)
}

func (h LogHooks) OnAssetParsed(_ context.Context, id string, primitives, dropped int) {
	h.logger().Debug("asset", "id", id, "primitives", primitives, "dropped", dropped)
}

func (h LogHooks) OnCommit(_ context.Context, digest string, changed bool, files int) {
	h.logger().Debug("commit", "digest", digest, "changed", changed, "files", files)
}

func (h LogHooks) OnRollback(_ context.Context, err error) {
	h.logger().Debug("rollback", "error", err)
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	commitHooks   CommitHooks   = NoopCommitHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Call it before any run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCommitHooks registers custom commit hooks.
func SetCommitHooks(h CommitHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		commitHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Commit returns the registered commit hooks.
func Commit() CommitHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commitHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	commitHooks = NoopCommitHooks{}
}
