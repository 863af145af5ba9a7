package tabulardb

import (
	"github.com/kasuganosora/tabulardb/pkg/optimizer"
	"github.com/kasuganosora/tabulardb/pkg/query"
)

// Config configures a new Table (spec.md §3's verbose/paranoia flags,
// plus the injected Logger). Grounded on the teacher's pkg/api/db.go
// DBConfig "fill sensible defaults when nil" convention.
type Config struct {
	Logger   Logger
	Paranoia bool
	Verbose  bool

	// Events, when set, receives the same mutation/query notifications
	// the Logger does, as a structured callback rather than formatted
	// text — spec.md §1's "operation-event stream" for external
	// collaborators like renderers, which stay outside the core.
	Events EventSink
}

func (c *Config) withDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	out := *c
	if out.Logger == nil {
		out.Logger = NewDefaultLogger(LogInfo)
	}
	return &out
}

// EventSink is notified of every mutation and query a table performs,
// independent of the Logger's formatted text (spec.md §1: "operation
// events... produce enough information to drive a logger" — but also
// any other external collaborator, such as a renderer maintaining its
// own view of the table). Table checks Events for nil before calling it;
// a partial implementation can embed BaseEventSink below to get no-op
// methods for the events it ignores.
type EventSink interface {
	OnInsert(rows []*Row)
	OnUpdate(before, after *Row)
	OnRemove(row *Row)
	OnQuery(criteria []query.Criterion, descriptor optimizer.Descriptor, resultCount int)
}

// BaseEventSink is a no-op EventSink; embed it to implement only the
// events a particular collaborator cares about.
type BaseEventSink struct{}

func (BaseEventSink) OnInsert(rows []*Row)                                             {}
func (BaseEventSink) OnUpdate(before, after *Row)                                      {}
func (BaseEventSink) OnRemove(row *Row)                                                {}
func (BaseEventSink) OnQuery(c []query.Criterion, d optimizer.Descriptor, n int) {}
