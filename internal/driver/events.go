package driver

import "time"

// Stage is the step a file is in.
type Stage string

const (
	StageParse Stage = "parse"
	StageLint  Stage = "lint"
	StageFix   Stage = "fix"
)

// Status captures progress within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. OnEvent is called from worker goroutines.
type Sink interface {
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

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func (l *Linter) emit(ev Event) {
	if l.opts.Sink != nil {
		l.opts.Sink.OnEvent(ev)
	}
}

func (l *Linter) emitQueued(files []string) {
	for _, file := range files {
		l.emit(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}
