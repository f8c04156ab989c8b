package logbuf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCapacity is the number of messages held before a flush.
const DefaultCapacity = 16

// Version is written in every header.
const Version = 1

// Logger buffers messages and writes them to a sink once Capacity
// messages are pending. Safe for concurrent use.
type Logger struct {
	ID      uuid.UUID
	Name    string
	Started time.Time

	mu       sync.Mutex
	capacity int
	buf      []Message
	sink     io.Writer
	zap      *zap.Logger
	now      func() time.Time
	wroteHdr bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithCapacity sets how many messages are buffered before a flush.
// Values below 1 keep the default.
func WithCapacity(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithSink sets the writer flushed lines go to.
func WithSink(w io.Writer) Option {
	return func(l *Logger) { l.sink = w }
}

// WithZap mirrors every message to z as it is logged.
func WithZap(z *zap.Logger) Option {
	return func(l *Logger) {
		if z != nil {
			l.zap = z
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// New creates a logger. Without a sink flushed messages are discarded.
func New(name string, opts ...Option) *Logger {
	l := &Logger{
		ID:       uuid.New(),
		Name:     name,
		capacity: DefaultCapacity,
		sink:     io.Discard,
		zap:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Started = l.now()
	l.zap = l.zap.With(zap.String("log", name), zap.Stringer("log_id", l.ID))
	return l
}

// Capacity returns the flush threshold.
func (l *Logger) Capacity() int {
	return l.capacity
}

// Len returns the number of buffered messages.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buf)
}

// Normal logs an informational message.
func (l *Logger) Normal(text string, filters ...string) {
	l.log(KindNormal, "", text, filters)
}

// Warn logs a warning.
func (l *Logger) Warn(text string, filters ...string) {
	l.log(KindWarn, "", text, filters)
}

// Error logs an error.
func (l *Logger) Error(text string, filters ...string) {
	l.log(KindError, "", text, filters)
}

// Custom logs a message whose kind column shows label.
func (l *Logger) Custom(label, text string, filters ...string) {
	l.log(KindCustom, label, text, filters)
}

// Normalf logs a formatted informational message.
func (l *Logger) Normalf(format string, args ...any) {
	l.Normal(fmt.Sprintf(format, args...))
}

func (l *Logger) log(kind Kind, label, text string, filters []string) {
	err := l.Push(Message{
		Time:    l.now(),
		Kind:    kind,
		Label:   label,
		Filters: filters,
		Text:    text,
	})
	if err != nil {
		l.zap.Error("engine log flush failed", zap.Error(err))
	}
}

// Push appends m and flushes if the buffer reached capacity.
func (l *Logger) Push(m Message) error {
	l.mirror(m)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, m)
	if len(l.buf) < l.capacity {
		return nil
	}
	return l.flushLocked()
}

// Pop removes and returns the oldest buffered message.
func (l *Logger) Pop() (Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.buf) == 0 {
		return Message{}, false
	}
	m := l.buf[0]
	l.buf = l.buf[1:]
	return m, true
}

// Flush writes every buffered message to the sink and empties the buffer.
// The header is written before the first flushed line.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flushLocked()
}

func (l *Logger) flushLocked() error {
	if len(l.buf) == 0 {
		return nil
	}
	w := bufio.NewWriter(l.sink)
	if !l.wroteHdr {
		w.WriteString(l.Header())
		w.WriteByte('\n')
	}
	for _, m := range l.buf {
		w.WriteString(m.Format())
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush log %q: %w", l.Name, err)
	}
	l.wroteHdr = true
	clear(l.buf)
	l.buf = l.buf[:0]
	return nil
}

func (l *Logger) mirror(m Message) {
	fields := []zap.Field{zap.String("kind", m.KindLabel())}
	if len(m.Filters) > 0 {
		fields = append(fields, zap.Strings("filters", m.Filters))
	}
	switch m.Kind {
	case KindWarn:
		l.zap.Warn(m.Text, fields...)
	case KindError:
		l.zap.Error(m.Text, fields...)
	default:
		l.zap.Info(m.Text, fields...)
	}
}

// Header returns the block written at the top of a flushed log.
func (l *Logger) Header() string {
	return fmt.Sprintf("Log: %s\nDate Started: %s\nTime Started: %s\nLog Version: %d",
		l.Name,
		l.Started.Format("2006-01-02"),
		l.Started.Format(timeLayout),
		Version,
	)
}

// HeaderInfo is the parsed form of Header.
type HeaderInfo struct {
	Name    string
	Started time.Time
	Version int
}

// ParseHeader reads the four header lines from r.
func ParseHeader(r io.Reader) (HeaderInfo, error) {
	fields := make(map[string]string, 4)
	sc := bufio.NewScanner(r)
	for len(fields) < 4 && sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ": ")
		if !ok {
			return HeaderInfo{}, fmt.Errorf("%w: header line %q", ErrMalformedLine, sc.Text())
		}
		fields[key] = val
	}
	if err := sc.Err(); err != nil {
		return HeaderInfo{}, err
	}

	var h HeaderInfo
	var ok bool
	if h.Name, ok = fields["Log"]; !ok {
		return HeaderInfo{}, fmt.Errorf("%w: header missing Log", ErrMalformedLine)
	}
	started, err := time.ParseInLocation("2006-01-02 15:04:05",
		fields["Date Started"]+" "+fields["Time Started"], time.Local)
	if err != nil {
		return HeaderInfo{}, fmt.Errorf("%w: header start time: %v", ErrMalformedLine, err)
	}
	h.Started = started
	if h.Version, err = strconv.Atoi(fields["Log Version"]); err != nil {
		return HeaderInfo{}, fmt.Errorf("%w: header version: %v", ErrMalformedLine, err)
	}
	return h, nil
}
