package closetdd

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/closetkit/closetdd/bdd"
	"github.com/closetkit/closetdd/zdd"
)

// Session is the scoped resource that owns a Node Store (in practice, one
// store per engine) for its lifetime, per §5: acquired at session start,
// released at session end on every exit path, including error. Every
// Closet built from the same Session shares its node ids, which is what
// makes diagram equality a plain NodeID comparison.
type Session struct {
	id     uuid.UUID
	log    *logrus.Entry
	bdd    *bdd.Engine
	zdd    *zdd.Engine
	closed bool
}

// SessionOption configures a Session at creation time, following the
// functional-options pattern used throughout this codebase (see
// BuilderOption).
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	logger *logrus.Logger
}

// WithLogger directs session lifecycle events to a caller-supplied logrus
// Logger instead of the package default.
func WithLogger(logger *logrus.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// NewSession acquires a fresh Node Store pair and returns a handle to it.
// Callers that want scoped acquire/release semantics should pair this with
// a deferred Close.
func NewSession(opts ...SessionOption) *Session {
	cfg := sessionConfig{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New()
	log := cfg.logger.WithField("session", id)
	log.Debug("closetdd: session acquired")

	return &Session{
		id:  id,
		log: log,
		bdd: bdd.NewEngine(),
		zdd: zdd.NewEngine(),
	}
}

// ID returns the session's identity, stable for its lifetime.
func (s *Session) ID() uuid.UUID { return s.id }

// Close releases the session. The Node Store itself is freed as a whole
// when the Session becomes unreachable (§5: "dropping a diagram does not
// free nodes"); Close only marks the session closed and emits the lifecycle
// log line, and a second Close does nothing. It does not prevent further
// builds: NewBuilder and Build do not check whether the session is closed.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.log.WithFields(logrus.Fields{
		"bdd_nodes": s.bdd.Nodes.Size(),
		"zdd_nodes": s.zdd.Nodes.Size(),
	}).Debug("closetdd: session released")
	return nil
}

// NewBuilder starts a ClosetBuilder scoped to this session's Node Store.
func (s *Session) NewBuilder(opts ...BuilderOption) *ClosetBuilder {
	return newClosetBuilder(s, opts...)
}
