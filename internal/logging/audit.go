// Package logging provides the audit trail for cipher operations and the
// diagnostic logger used by cipherctl.
package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/RowanDark/cipherkit/internal/redact"
)

type EventType string

const (
	EventOperationExecuted  EventType = "operation_executed"
	EventOperationFailed    EventType = "operation_failed"
	EventPipelineExecuted   EventType = "pipeline_executed"
	EventRecipeSaved        EventType = "recipe_saved"
	EventRecipeDeleted      EventType = "recipe_deleted"
	EventSolveCompleted     EventType = "solve_completed"
	EventDetectionCompleted EventType = "detection_completed"
	EventKeylessTransform   EventType = "keyless_transform"
)

type Decision string

const (
	DecisionInfo    Decision = "info"
	DecisionSuccess Decision = "success"
	DecisionFailure Decision = "failure"
)

// AuditEvent is one line of the audit trail.
type AuditEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	EventID   string         `json:"event_id"`
	Component string         `json:"component"`
	Operation string         `json:"operation,omitempty"`
	EventType EventType      `json:"event_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Decision  Decision       `json:"decision,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

type Option func(*config) error

type config struct {
	writers          []io.Writer
	closers          []io.Closer
	useDefaultWriter bool
}

func defaultConfig() *config {
	return &config{writers: []io.Writer{os.Stdout}, useDefaultWriter: true}
}

func WithWriter(w io.Writer) Option {
	return func(cfg *config) error {
		if w == nil {
			return errors.New("writer cannot be nil")
		}
		cfg.writers = append(cfg.writers, w)
		return nil
	}
}

func WithFile(path string) Option {
	return func(cfg *config) error {
		if strings.TrimSpace(path) == "" {
			return errors.New("file path cannot be empty")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		cfg.writers = append(cfg.writers, f)
		cfg.closers = append(cfg.closers, f)
		return nil
	}
}

func WithoutStdout() Option {
	return func(cfg *config) error {
		cfg.useDefaultWriter = false
		filtered := cfg.writers[:0]
		for _, w := range cfg.writers {
			if w == os.Stdout {
				continue
			}
			filtered = append(filtered, w)
		}
		cfg.writers = filtered
		return nil
	}
}

type auditCore struct {
	mu      sync.Mutex
	logger  *zap.Logger
	closers []io.Closer
}

// AuditLogger writes AuditEvents as JSON lines. Loggers derived with
// WithComponent share the underlying writers.
type AuditLogger struct {
	component   string
	core        *auditCore
	ownsClosers bool
}

func auditEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "event_type",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func NewAuditLogger(component string, opts ...Option) (*AuditLogger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			for _, closer := range cfg.closers {
				_ = closer.Close()
			}
			return nil, err
		}
	}
	if !cfg.useDefaultWriter && len(cfg.writers) == 0 {
		return nil, errors.New("no writers configured for audit logger")
	}
	sink := zapcore.Lock(zapcore.AddSync(io.MultiWriter(cfg.writers...)))
	core := zapcore.NewCore(zapcore.NewJSONEncoder(auditEncoderConfig()), sink, zapcore.DebugLevel)
	return &AuditLogger{
		component:   component,
		core:        &auditCore{logger: zap.New(core), closers: cfg.closers},
		ownsClosers: true,
	}, nil
}

func MustNewAuditLogger(component string, opts ...Option) *AuditLogger {
	logger, err := NewAuditLogger(component, opts...)
	if err != nil {
		panic(err)
	}
	return logger
}

// Nop returns a logger that discards every event.
func Nop() *AuditLogger {
	return &AuditLogger{core: &auditCore{logger: zap.NewNop()}}
}

func (l *AuditLogger) Close() error {
	if l == nil || !l.ownsClosers || l.core == nil {
		return nil
	}
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	_ = l.core.logger.Sync()
	var firstErr error
	for _, closer := range l.core.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.core.closers = nil
	return firstErr
}

// Emit fills in the timestamp, event ID and component when unset, redacts key
// material from the reason and metadata, and writes the event.
func (l *AuditLogger) Emit(event AuditEvent) error {
	if l == nil {
		return errors.New("nil audit logger")
	}
	if l.core == nil {
		return errors.New("nil audit logger core")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	} else {
		event.Timestamp = event.Timestamp.UTC()
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Component == "" {
		event.Component = l.component
	}
	event.Reason = redact.String(event.Reason)
	if len(event.Metadata) > 0 {
		event.Metadata = redact.Map(event.Metadata)
	}

	fields := []zap.Field{
		zap.Time("timestamp", event.Timestamp),
		zap.String("event_id", event.EventID),
		zap.String("component", event.Component),
	}
	if event.Operation != "" {
		fields = append(fields, zap.String("operation", event.Operation))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}
	if event.Decision != "" {
		fields = append(fields, zap.String("decision", string(event.Decision)))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}

	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.logger.Info(string(event.EventType), fields...)
	return nil
}

func (l *AuditLogger) WithComponent(component string) *AuditLogger {
	if l == nil || l.core == nil {
		return nil
	}
	return &AuditLogger{
		component:   component,
		core:        l.core,
		ownsClosers: false,
	}
}
