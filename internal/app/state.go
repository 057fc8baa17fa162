package app

import (
	"log/slog"
	"sync/atomic"
)

// LogState mirrors a few recorder fields in atomics so log records can be
// stamped without taking the service lock.
type LogState struct {
	recording   atomic.Bool
	primed      atomic.Bool
	direct      atomic.Bool
	collections atomic.Int32
	ticks       atomic.Uint64
}

// Attrs is a logging.ContextProvider.
func (st *LogState) Attrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("recording", st.recording.Load()),
		slog.Bool("primed", st.primed.Load()),
		slog.Bool("direct", st.direct.Load()),
		slog.Int("collections", int(st.collections.Load())),
		slog.Uint64("tick", st.ticks.Load()),
	}
}

// syncState copies the path log flags. Callers hold s.mu.
func (s *Service) syncState() {
	s.state.recording.Store(s.paths.Recording())
	s.state.primed.Store(s.paths.Primed())
	s.state.direct.Store(s.paths.DirectMode())
	s.state.collections.Store(int32(len(s.paths.Collections())))
}
