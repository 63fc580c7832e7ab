package urlutil

import "slices"

// Component names one part of a URL.
type Component int

const (
	ComponentScheme Component = iota
	ComponentUser
	ComponentPassword
	ComponentHost
	ComponentPort
	ComponentPath
	ComponentQuery
	ComponentFragment
)

var componentNames = [...]string{
	ComponentScheme:   "scheme",
	ComponentUser:     "user",
	ComponentPassword: "password",
	ComponentHost:     "host",
	ComponentPort:     "port",
	ComponentPath:     "path",
	ComponentQuery:    "query",
	ComponentFragment: "fragment",
}

func (c Component) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return "unknown"
	}
	return componentNames[c]
}

// Handler post-processes one normalized component. It receives the
// normalized value and the value as parsed, and returns the value to use.
// Returning keep == false removes the component from the rebuilt URL.
type Handler[T any] func(normalized, original T) (value T, keep bool)

// Handlers holds at most one Handler per component. A nil field passes the
// normalized value through unchanged.
type Handlers struct {
	Scheme   Handler[string]
	User     Handler[string]
	Password Handler[string]
	Host     Handler[string]
	Port     Handler[int]
	Path     Handler[string]
	Query    Handler[string]
	Fragment Handler[string]
}

// Merge returns h with every non-nil field of override applied on top.
func (h Handlers) Merge(override Handlers) Handlers {
	mergeHandler(&h.Scheme, override.Scheme)
	mergeHandler(&h.User, override.User)
	mergeHandler(&h.Password, override.Password)
	mergeHandler(&h.Host, override.Host)
	mergeHandler(&h.Port, override.Port)
	mergeHandler(&h.Path, override.Path)
	mergeHandler(&h.Query, override.Query)
	mergeHandler(&h.Fragment, override.Fragment)
	return h
}

// Registered lists the components that have a handler.
func (h Handlers) Registered() []Component {
	set := [...]bool{
		ComponentScheme:   h.Scheme != nil,
		ComponentUser:     h.User != nil,
		ComponentPassword: h.Password != nil,
		ComponentHost:     h.Host != nil,
		ComponentPort:     h.Port != nil,
		ComponentPath:     h.Path != nil,
		ComponentQuery:    h.Query != nil,
		ComponentFragment: h.Fragment != nil,
	}
	var out []Component
	for c, ok := range set {
		if ok {
			out = append(out, Component(c))
		}
	}
	return out
}

func mergeHandler[T any](dst *Handler[T], src Handler[T]) {
	if src != nil {
		*dst = src
	}
}

// invoke applies h to a present value. Absent values stay absent and h is
// not called for them.
func invoke[T any](h Handler[T], normalized, original T, present bool) (T, bool) {
	if !present {
		var zero T
		return zero, false
	}
	if h == nil {
		return normalized, true
	}
	return h(normalized, original)
}

// invokeString treats the empty string as absent, both before and after
// the handler runs.
func invokeString(h Handler[string], normalized, original string) string {
	v, keep := invoke(h, normalized, original, normalized != "")
	if !keep {
		return ""
	}
	return v
}

// Drop returns a handler that removes its component.
func Drop[T any]() Handler[T] {
	return func(T, T) (T, bool) {
		var zero T
		return zero, false
	}
}

// DropPorts returns a port handler that removes the listed ports, for
// example DropPorts(80, 443) to strip the usual web defaults.
func DropPorts(ports ...int) Handler[int] {
	drop := slices.Clone(ports)
	return func(normalized, _ int) (int, bool) {
		if slices.Contains(drop, normalized) {
			return 0, false
		}
		return normalized, true
	}
}
