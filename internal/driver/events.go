package driver

import (
	"time"

	"cardgen/internal/card"
)

// Stage describes a pipeline phase of one file.
type Stage string

const (
	// StagePair is tree enumeration; emitted without a file.
	StagePair Stage = "pair"
	// StageLoad reads both sides from disk.
	StageLoad Stage = "load"
	// StageParse extracts declarations.
	StageParse Stage = "parse"
	// StageDiff classifies declaration pairs.
	StageDiff Stage = "diff"
	// StageRender assembles the card.
	StageRender Stage = "render"
	// StageWrite writes cards and the index; emitted without a file.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusCached indicates the card came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusError indicates the file ended degraded or skipped.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Outcome card.Outcome
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
