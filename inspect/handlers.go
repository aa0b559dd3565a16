package inspect

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/scopekit/di"
	"github.com/kbukum/scopekit/errors"
	"github.com/kbukum/scopekit/logger"
	"github.com/kbukum/scopekit/version"
)

// Registration is the JSON view of di.RegistrationInfo.
type Registration struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Label    string `json:"label,omitempty"`
	Scope    string `json:"scope"`
	ScopeID  string `json:"scope_id,omitempty"`
	Retained bool   `json:"retained"`
}

// Scope is the JSON view of a di.Scope.
type Scope struct {
	Name          string `json:"name"`
	ID            string `json:"id"`
	Registrations int    `json:"registrations"`
	Retained      int    `json:"retained"`
}

// ResetResult reports a reset by name.
type ResetResult struct {
	Scope string `json:"scope"`
	Reset int    `json:"reset"`
}

// Info summarizes the build and the registry.
type Info struct {
	Build         version.Info `json:"build"`
	Registry      string       `json:"registry"`
	Registrations int          `json:"registrations"`
	Scopes        int          `json:"scopes"`
}

// Mount registers the inspect routes on rg. A nil log uses the "inspect"
// component logger.
func Mount(rg gin.IRoutes, reg *di.Registry, log *logger.Logger) {
	if log == nil {
		log = logger.Get("inspect")
	}
	rg.Use(RequestID(), RequestLogger(log))
	rg.GET("/info", InfoHandler(reg))
	rg.GET("/registrations", Registrations(reg))
	rg.GET("/scopes", Scopes(reg))
	rg.DELETE("/scopes/:name", ResetScope(reg, log))
}

// InfoHandler reports build information and registry counts.
func InfoHandler(reg *di.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos := reg.Registrations()
		respondOK(c, Info{
			Build:         version.Get(),
			Registry:      reg.Name(),
			Registrations: len(infos),
			Scopes:        len(scopeViews(infos)),
		})
	}
}

// Registrations lists every registration sorted by key. The optional
// "scope" query parameter filters by scope name.
func Registrations(reg *di.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := c.Query("scope")
		out := make([]Registration, 0)
		for _, info := range reg.Registrations() {
			if filter != "" && info.Scope.Name() != filter {
				continue
			}
			out = append(out, toRegistration(info))
		}
		respondOK(c, out)
	}
}

// Scopes lists retaining scopes with their registration and retained
// instance counts.
func Scopes(reg *di.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, scopeViews(reg.Registrations()))
	}
}

// scopeViews groups one registration snapshot by retaining scope, sorted
// by name and then id.
func scopeViews(infos []di.RegistrationInfo) []Scope {
	index := make(map[di.Scope]int)
	out := make([]Scope, 0)
	for _, info := range infos {
		if info.Scope.IsNone() {
			continue
		}
		i, ok := index[info.Scope]
		if !ok {
			i = len(out)
			index[info.Scope] = i
			out = append(out, Scope{Name: info.Scope.Name(), ID: info.Scope.ID().String()})
		}
		out[i].Registrations++
		if info.Retained {
			out[i].Retained++
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ResetScope resets every scope carrying the name in the path. It answers
// 404 SCOPE_NOT_FOUND when no known scope matches.
func ResetScope(reg *di.Registry, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param("name"))
		if name == "" || name == di.None.Name() {
			respondError(c, errors.Validation("scope name must name a retaining scope"))
			return
		}

		n := reg.ResetByName(name)
		if n == 0 {
			respondError(c, errors.ScopeNotFound(name))
			return
		}

		log.WithContext(c.Request.Context()).Info("scope reset over http", logger.Fields(
			logger.FieldScope, name,
			logger.FieldCount, n,
		))
		respondOK(c, ResetResult{Scope: name, Reset: n})
	}
}

func toRegistration(info di.RegistrationInfo) Registration {
	r := Registration{
		Key:      info.Key.String(),
		Type:     info.Key.TypeName(),
		Label:    string(info.Key.Label),
		Scope:    info.Scope.Name(),
		Retained: info.Retained,
	}
	if !info.Scope.IsNone() {
		r.ScopeID = info.Scope.ID().String()
	}
	return r
}
