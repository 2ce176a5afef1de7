package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Stream names, also the file names under the log directory.
const (
	StreamRequests    = "requests"
	StreamErrors      = "errors"
	StreamPerformance = "performance"
	StreamActions     = "actions"
)

// TailWindow is how many lines per stream /api/logs returns.
const TailWindow = 50

// tailCapacity bounds the in-memory tail kept per stream.
const tailCapacity = 200

// Streams bundles the four log streams. Each stream writes JSON lines to
// its own file and mirrors them into a bounded in-memory tail so the log
// endpoint never has to read files back.
type Streams struct {
	Requests    *logrus.Logger
	Errors      *logrus.Logger
	Performance *logrus.Logger
	Actions     *logrus.Logger

	tails map[string]*tailHook
	files []*os.File
}

// New creates the streams. With an empty dir the streams only keep their
// in-memory tails, which is what the tests use.
func New(dir string) (*Streams, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &Streams{tails: make(map[string]*tailHook)}
	var err error
	if s.Requests, err = s.newStream(dir, StreamRequests); err != nil {
		return nil, err
	}
	if s.Errors, err = s.newStream(dir, StreamErrors); err != nil {
		return nil, err
	}
	if s.Performance, err = s.newStream(dir, StreamPerformance); err != nil {
		return nil, err
	}
	if s.Actions, err = s.newStream(dir, StreamActions); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Streams) newStream(dir, name string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if dir == "" {
		log.SetOutput(io.Discard)
	} else {
		file, err := os.OpenFile(filepath.Join(dir, name+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(file)
		s.files = append(s.files, file)
	}

	hook := &tailHook{}
	log.AddHook(hook)
	s.tails[name] = hook
	return log, nil
}

// Request emits the request-received event.
func (s *Streams) Request(method, path, clientIP, userAgent string) {
	s.Requests.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"client_ip":  clientIP,
		"user_agent": userAgent,
	}).Info("request received")
}

// Error emits an error event with its category and request context.
func (s *Streams) Error(category, message, clientIP, path, method string) {
	s.Errors.WithFields(logrus.Fields{
		"category":  category,
		"client_ip": clientIP,
		"path":      path,
		"method":    method,
	}).Error(message)
}

// Record emits the performance and user-action events for one completed
// operation. The fields carry operation-specific details such as item
// counts or totals.
func (s *Streams) Record(c *gin.Context, sessionID, operation string, start time.Time, fields logrus.Fields) {
	perf := logrus.Fields{
		"operation":  operation,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}
	for k, v := range fields {
		perf[k] = v
	}
	s.Performance.WithFields(perf).Info("operation completed")

	action := logrus.Fields{
		"operation":  operation,
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
		"session_id": sessionID,
	}
	for k, v := range fields {
		action[k] = v
	}
	s.Actions.WithFields(action).Info("user action")
}

// Tail returns the last n formatted lines of every stream.
func (s *Streams) Tail(n int) map[string][]string {
	out := make(map[string][]string, len(s.tails))
	for name, hook := range s.tails {
		out[name] = hook.tail(n)
	}
	return out
}

// Close closes the underlying log files.
func (s *Streams) Close() error {
	var first error
	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// tailHook keeps the last formatted lines of one stream in memory.
type tailHook struct {
	mu    sync.Mutex
	lines []string
}

func (h *tailHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *tailHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, strings.TrimRight(line, "\n"))
	if len(h.lines) > tailCapacity {
		h.lines = h.lines[len(h.lines)-tailCapacity:]
	}
	return nil
}

func (h *tailHook) tail(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.lines) {
		n = len(h.lines)
	}
	out := make([]string, n)
	copy(out, h.lines[len(h.lines)-n:])
	return out
}
