package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/scopekit/di"
)

// Summary renders the registry layout after startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a summary for a service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Render writes the service header followed by the registrations of reg
// grouped by scope.
func (s *Summary) Render(w io.Writer, reg *di.Registry) {
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	infos := reg.Registrations()
	if len(infos) == 0 {
		fmt.Fprintf(w, "📦 Registry %q\n   └── No providers registered\n\n", reg.Name())
		return
	}

	fmt.Fprintf(w, "📦 Registry %q (%d providers)\n", reg.Name(), len(infos))

	groups := groupByScope(infos)
	for gi, g := range groups {
		prefix, child := "├──", "│  "
		if gi == len(groups)-1 {
			prefix, child = "└──", "   "
		}
		fmt.Fprintf(w, "   %s %s %s\n", prefix, scopeIcon(g.scope), g.scope)
		for i, info := range g.infos {
			branch := "├──"
			if i == len(g.infos)-1 {
				branch = "└──"
			}
			state := ""
			if info.Retained {
				state = " (retained)"
			}
			fmt.Fprintf(w, "   %s %s %s%s\n", child, branch, info.Key, state)
		}
	}
	fmt.Fprintf(w, "\n")
}

type scopeGroup struct {
	scope di.Scope
	infos []di.RegistrationInfo
}

// groupByScope keeps the key order of infos within each group. Groups
// appear in order of first occurrence.
func groupByScope(infos []di.RegistrationInfo) []scopeGroup {
	var groups []scopeGroup
	index := make(map[di.Scope]int)
	for _, info := range infos {
		i, ok := index[info.Scope]
		if !ok {
			i = len(groups)
			index[info.Scope] = i
			groups = append(groups, scopeGroup{scope: info.Scope})
		}
		groups[i].infos = append(groups[i].infos, info)
	}
	return groups
}

func scopeIcon(s di.Scope) string {
	switch {
	case s.IsNone():
		return "⚡"
	case s == di.App:
		return "📌"
	default:
		return "⏳"
	}
}
