package di

import (
	"github.com/google/uuid"
)

// Scope is a retention lifetime. Scopes are compared by identity: two
// scopes created with the same name are different scopes.
type Scope struct {
	id   uuid.UUID
	name string
}

var (
	// None never retains; every resolve invokes the factory.
	None = Scope{}
	// App retains instances for the lifetime of the process.
	App = NewScope("app")
)

// NewScope mints a new retention scope. The name is only used for display
// and for ResetByName.
func NewScope(name string) Scope {
	return Scope{id: uuid.New(), name: name}
}

// IsNone reports whether s is the non-retaining scope.
func (s Scope) IsNone() bool {
	return s.id == uuid.Nil
}

// ID returns the unique token of the scope.
func (s Scope) ID() uuid.UUID {
	return s.id
}

// Name returns the display name of the scope.
func (s Scope) Name() string {
	if s.IsNone() {
		return "none"
	}
	return s.name
}

func (s Scope) String() string {
	if name := s.Name(); name != "" {
		return name
	}
	return s.id.String()
}
