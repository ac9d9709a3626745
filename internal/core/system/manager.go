// Package system groups the simulation systems of a session so they attach to
// and detach from the event bus as one unit.
package system

import (
	"github.com/rotisserie/eris"

	"github.com/zeusync/arena/internal/core/observability/log"
)

var (
	ErrDuplicateSystem = eris.New("system already registered")
	ErrAttached        = eris.New("systems are already attached")
)

// System is anything that subscribes to the bus for the length of a session.
type System interface {
	Name() string
	Attach() error
	Detach()
}

// Group attaches systems in registration order and detaches them in reverse.
type Group struct {
	logger   log.Log
	systems  []System
	names    map[string]bool
	attached bool
}

func NewGroup(logger log.Log) *Group {
	return &Group{logger: logger.Named("systems"), names: make(map[string]bool)}
}

// Register appends systems. Names must be unique and the group must not be
// attached yet.
func (g *Group) Register(systems ...System) error {
	if g.attached {
		return ErrAttached
	}
	for _, s := range systems {
		if g.names[s.Name()] {
			return eris.Wrapf(ErrDuplicateSystem, "system %s", s.Name())
		}
		g.names[s.Name()] = true
		g.systems = append(g.systems, s)
	}
	return nil
}

// AttachAll attaches every system. When one fails the ones already attached
// are detached again and the error is returned.
func (g *Group) AttachAll() error {
	if g.attached {
		return ErrAttached
	}
	for i, s := range g.systems {
		if err := s.Attach(); err != nil {
			for j := i - 1; j >= 0; j-- {
				g.systems[j].Detach()
			}
			return eris.Wrapf(err, "attach %s", s.Name())
		}
		g.logger.Debug("attached", log.String("system", s.Name()))
	}
	g.attached = true
	return nil
}

func (g *Group) DetachAll() {
	if !g.attached {
		return
	}
	for i := len(g.systems) - 1; i >= 0; i-- {
		g.systems[i].Detach()
	}
	g.attached = false
}

func (g *Group) Attached() bool { return g.attached }

// Names lists the systems in attach order.
func (g *Group) Names() []string {
	names := make([]string, len(g.systems))
	for i, s := range g.systems {
		names[i] = s.Name()
	}
	return names
}
