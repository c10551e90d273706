package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PostTime is a wall-clock time of day.
type PostTime struct {
	Hour   int
	Minute int
	Second int
}

func (p PostTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", p.Hour, p.Minute, p.Second)
}

// ParsePostTime parses "HH:MM" or "HH". It never fails: a component that is
// not a number or is out of range becomes 0, and any other shape is midnight.
func ParsePostTime(s string) PostTime {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return PostTime{Hour: component(parts[0], 23)}
	case 2:
		return PostTime{Hour: component(parts[0], 23), Minute: component(parts[1], 59)}
	default:
		return PostTime{}
	}
}

func component(s string, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0
	}
	return n
}

// Daily fires once a day at At in Location. It implements cron.Schedule.
type Daily struct {
	At       PostTime
	Location *time.Location
}

// Next returns today's occurrence if it is still ahead of t, otherwise
// tomorrow's. Each result is derived from the wall clock, so a late or slow
// run never shifts later fire times and missed days are skipped.
func (d Daily) Next(t time.Time) time.Time {
	loc := d.Location
	if loc == nil {
		loc = t.Location()
	}
	lt := t.In(loc)

	next := time.Date(lt.Year(), lt.Month(), lt.Day(), d.At.Hour, d.At.Minute, d.At.Second, 0, loc)
	if !next.After(lt) {
		next = time.Date(lt.Year(), lt.Month(), lt.Day()+1, d.At.Hour, d.At.Minute, d.At.Second, 0, loc)
	}
	return next
}

// Scheduler runs a single daily task on a cron runner.
type Scheduler struct {
	cron     *cron.Cron
	mu       sync.Mutex
	entryID  cron.EntryID
	schedule Daily
	location *time.Location
	log      *zap.Logger
}

// New creates a Scheduler in the given location. Runs never overlap: a tick
// that is still running when the next one is due causes that one to be skipped.
func New(loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}

	cl := cronLogger{log: log.Sugar()}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &Scheduler{
		cron:     c,
		location: loc,
		log:      log,
	}
}

// Schedule sets up task to run daily at at. A previous schedule is replaced.
func (s *Scheduler) Schedule(at PostTime, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	s.schedule = Daily{At: at, Location: s.location}
	s.entryID = s.cron.Schedule(s.schedule, cron.FuncJob(task))
	s.log.Info("daily post scheduled",
		zap.Stringer("time", at),
		zap.String("timezone", s.location.String()),
	)
}

// NextRun returns the first fire time after now.
func (s *Scheduler) NextRun(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.Next(now)
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler. The returned context is done once a running
// task has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts zap to cron.Logger. Cron's chatty info messages go to debug.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
