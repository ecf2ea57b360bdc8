package bwem

import (
	"fmt"
	"time"
)

// LogCategory categorizes BuildContext log entries.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota // a progress log entry
	LogWarning                         // a warning log entry
	LogError                           // an error log entry
)

// TimerLabel identifies a performance timer of the analysis pipeline.
type TimerLabel int

const (
	// The total time of the analysis.
	TimerTotal TimerLabel = iota
	// The time to load the grids and classify seas and lakes.
	TimerTerrain
	// The time to register the neutral units.
	TimerNeutrals
	// The time to compute the altitude field.
	TimerAltitudes
	// The time to detect the blocking neutrals.
	TimerBlockingNeutrals
	// The time to grow the areas.
	TimerAreas
	// The time to extract the chokepoints.
	TimerChokePoints
	// The time to compute the chokepoint distance and path matrices.
	TimerPaths
	// The time to place the bases.
	TimerBases
	// The maximum number of timers. (Used for iterating timers.)
	maxTimers
)

const maxMessages = 1000

// BuildContext provides optional logging and performance tracking of the
// analysis. Pass NewBuildContext(false), or nil, to disable both.
type BuildContext struct {
	startTime [maxTimers]time.Time
	accTime   [maxTimers]time.Duration

	messages    [maxMessages]string
	numMessages int

	logEnabled   bool
	timerEnabled bool
}

// NewBuildContext returns a build context with logging and timers enabled
// or disabled according to state.
func NewBuildContext(state bool) *BuildContext {
	return &BuildContext{
		logEnabled:   state,
		timerEnabled: state,
	}
}

// EnableLog enables or disables logging.
func (ctx *BuildContext) EnableLog(state bool) {
	ctx.logEnabled = state
}

// EnableTimer enables or disables the performance timers.
func (ctx *BuildContext) EnableTimer(state bool) {
	ctx.timerEnabled = state
}

// ResetLog clears all log entries.
func (ctx *BuildContext) ResetLog() {
	if ctx == nil {
		return
	}
	ctx.numMessages = 0
}

// ResetTimers clears all performance timers.
func (ctx *BuildContext) ResetTimers() {
	if ctx == nil || !ctx.timerEnabled {
		return
	}
	for i := TimerLabel(0); i < maxTimers; i++ {
		ctx.accTime[i] = 0
	}
}

func (ctx *BuildContext) Progressf(format string, v ...interface{}) {
	ctx.Log(LogProgress, format, v...)
}

func (ctx *BuildContext) Warningf(format string, v ...interface{}) {
	ctx.Log(LogWarning, format, v...)
}

func (ctx *BuildContext) Errorf(format string, v ...interface{}) {
	ctx.Log(LogError, format, v...)
}

// Log stores a formatted message under the given category.
func (ctx *BuildContext) Log(category LogCategory, format string, v ...interface{}) {
	if ctx == nil || !ctx.logEnabled || ctx.numMessages >= maxMessages {
		return
	}
	switch category {
	case LogProgress:
		ctx.messages[ctx.numMessages] = "PROG " + fmt.Sprintf(format, v...)
	case LogWarning:
		ctx.messages[ctx.numMessages] = "WARN " + fmt.Sprintf(format, v...)
	case LogError:
		ctx.messages[ctx.numMessages] = "ERR " + fmt.Sprintf(format, v...)
	}
	ctx.numMessages++
}

// DumpLog prints a header followed by all the log entries to stdout.
func (ctx *BuildContext) DumpLog(format string, args ...interface{}) {
	if ctx == nil {
		return
	}
	fmt.Printf(format+"\n", args...)
	for i := 0; i < ctx.numMessages; i++ {
		fmt.Println(ctx.messages[i])
	}
}

// LogCount returns the number of stored log entries.
func (ctx *BuildContext) LogCount() int {
	if ctx == nil {
		return 0
	}
	return ctx.numMessages
}

// LogText returns the ith stored log entry.
func (ctx *BuildContext) LogText(i int) string {
	if ctx == nil {
		return ""
	}
	return ctx.messages[i]
}

// StartTimer starts the specified performance timer.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx == nil || !ctx.timerEnabled {
		return
	}
	ctx.startTime[label] = time.Now()
}

// StopTimer stops the specified performance timer and accumulates the
// elapsed time.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx == nil || !ctx.timerEnabled {
		return
	}
	ctx.accTime[label] += time.Since(ctx.startTime[label])
}

// AccumulatedTime returns the total accumulated time of the specified
// performance timer, or -1 if timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if ctx == nil || !ctx.timerEnabled {
		return -1
	}
	return ctx.accTime[label]
}
