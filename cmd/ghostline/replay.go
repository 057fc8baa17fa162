package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ghostline/recorder/internal/app"
	"github.com/ghostline/recorder/internal/config"
	"github.com/ghostline/recorder/internal/events"
	"github.com/ghostline/recorder/internal/model"
	"github.com/ghostline/recorder/internal/pathlog"
	"github.com/ghostline/recorder/internal/storage"
	"github.com/ghostline/recorder/pkg/host"
)

type replayOptions struct {
	Trace      string
	Comparison string
	Out        string
	Step       time.Duration
	// Start and End are trace rows. Triggers are placed at those poses, or
	// in direct mode recording starts and stops there. -1 disables.
	Start      int
	End        int
	Collection string
	Direct     bool
}

func replayCmd() *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Drive the recorder from a CSV movement trace",
		Long: `Feeds every x,y,z,rx,ry,rz row of the trace to the recorder as one tick,
advancing a fixed clock by --dt per tick, and prints the finished runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession("replay")
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, s.close(context.Background())) }()
			return replay(cmd.Context(), s, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Trace, "trace", "", "CSV trace of x,y,z,rx,ry,rz rows")
	cmd.Flags().StringVar(&opts.Comparison, "comp", "", "comparison file to load first")
	cmd.Flags().StringVar(&opts.Out, "out", "", "save the comparison here afterwards")
	cmd.Flags().DurationVar(&opts.Step, "dt", 16*time.Millisecond, "time between trace rows")
	cmd.Flags().IntVar(&opts.Start, "start", -1, "trace row for the start trigger, or recording start with --direct")
	cmd.Flags().IntVar(&opts.End, "end", -1, "trace row for the end trigger, or recording stop with --direct")
	cmd.Flags().StringVar(&opts.Collection, "collection", "replay", "collection to record into")
	cmd.Flags().BoolVar(&opts.Direct, "direct", false, "record in direct mode")
	_ = cmd.MarkFlagRequired("trace")
	return cmd
}

// runTee keeps a copy of every run recorded during the replay.
type runTee struct {
	storage.Backend
	runs []model.Run
}

func (t *runTee) RecordRun(r *model.Run) error {
	err := t.Backend.RecordRun(r)
	t.runs = append(t.runs, *r)
	return err
}

func replay(ctx context.Context, s *session, opts replayOptions, out io.Writer) (err error) {
	if opts.Step <= 0 {
		return fmt.Errorf("--dt must be positive, got %s", opts.Step)
	}
	trace, err := host.LoadTrace(opts.Trace)
	if err != nil {
		return err
	}

	backend, err := s.backend()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, backend.Close()) }()
	tee := &runTee{Backend: backend}

	deps := app.Dependencies{
		LogManager:  s.logs,
		Backend:     tee,
		Actuator:    &host.RecordingActuator{},
		LogState:    s.state,
		TriggerSize: config.GetTriggerSize(),
		Recording:   config.GetRecordingConfig(),
	}
	if m := s.influx(ctx); m != nil {
		deps.Influx = m
		defer func() { err = errors.Join(err, m.Close()) }()
	}
	now := s.start
	deps.Clock = func() time.Time { return now }
	deps.Recording.DirectMode = deps.Recording.DirectMode || opts.Direct

	svc, err := app.NewService(ctx, deps)
	if err != nil {
		return err
	}
	first := host.Sample(trace)

	if opts.Comparison != "" {
		svc.Push(events.LoadComparison{Path: opts.Comparison})
		svc.Tick(ctx, first)
		if err := noticeError(svc); err != nil {
			return err
		}
	}
	if !deps.Recording.DirectMode {
		activateCollection(ctx, svc, first, opts.Collection)
	}

	for {
		i := trace.Index()
		if i == opts.Start {
			svc.Push(startEvent(deps.Recording.DirectMode))
		}
		if i == opts.End {
			svc.Push(endEvent(deps.Recording.DirectMode))
		}
		now = now.Add(opts.Step)
		svc.Tick(ctx, host.Sample(trace))
		if !trace.Next() {
			break
		}
	}

	last := host.Sample(trace)
	for n := 0; svc.Pending() > 0 && n < 8; n++ {
		svc.Tick(ctx, last)
	}
	if opts.Out != "" {
		svc.Push(events.SaveComparison{Path: opts.Out})
		svc.Tick(ctx, last)
		if err := noticeError(svc); err != nil {
			return err
		}
	}

	s.log.Info("replay finished", "ticks", trace.Len(), "runs", len(tee.runs))
	return writeReplay(out, svc.Status(), tee.runs)
}

func startEvent(direct bool) events.Event {
	if direct {
		return events.StartRecording{}
	}
	return events.CreateTrigger{Index: pathlog.StartTrigger}
}

func endEvent(direct bool) events.Event {
	if direct {
		return events.StopRecording{}
	}
	return events.CreateTrigger{Index: pathlog.EndTrigger}
}

// activateCollection makes the collection named name active, creating it when
// the log has none by that name.
func activateCollection(ctx context.Context, svc *app.Service, pose host.Pose, name string) {
	find := func() (id uuid.UUID) {
		svc.View(func(l *pathlog.PathLog) {
			for _, c := range l.Collections() {
				if c.Name == name {
					id = c.ID
					return
				}
			}
		})
		return id
	}

	id := find()
	if id == uuid.Nil {
		svc.Push(events.CreateCollection{Name: name})
		svc.Tick(ctx, pose)
		id = find()
	}
	svc.Push(events.ToggleActiveCollection{CollectionID: id})
	svc.Tick(ctx, pose)
}

// noticeError turns error notices into an error and clears the board.
func noticeError(svc *app.Service) error {
	var errs []error
	for _, n := range svc.Notices() {
		if n.Level >= slog.LevelError {
			errs = append(errs, errors.New(n.Message))
		}
	}
	svc.DismissNotices()
	return errors.Join(errs...)
}

func writeReplay(out io.Writer, st app.Status, runs []model.Run) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if len(runs) == 0 {
		fmt.Fprintln(w, "no finished runs")
	}
	for i, r := range runs {
		collection := r.CollectionName
		if collection == "" {
			collection = "(rejected)"
		}
		fmt.Fprintf(w, "run %d\t%s\t%s\t%d nodes\t%.1fm\t%s\n",
			i+1, r.Mode, r.Duration.Round(time.Millisecond), r.NodeCount, r.Length, collection)
	}
	fmt.Fprintln(w, strings.Join(st.Lines(), "\n"))
	return w.Flush()
}
