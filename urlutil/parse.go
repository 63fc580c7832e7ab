package urlutil

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Components holds the parts of a URL. An empty string marks an absent
// component and a nil Port an absent port.
type Components struct {
	Scheme   string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	User     string `json:"user,omitempty" yaml:"user,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     *int   `json:"port,omitempty" yaml:"port,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Query    string `json:"query,omitempty" yaml:"query,omitempty"`
	Fragment string `json:"fragment,omitempty" yaml:"fragment,omitempty"`
}

// Schemes whose URLs always carry a host.
var hostSchemes = []string{"http", "https", "ws", "wss", "ftp"}

const maxPort = 65535

// splitURL runs raw through net/url and returns its components as found,
// without any normalization beyond what the parser itself does.
func splitURL(raw string) (Components, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Components{}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Components{}, malformed(raw, "parse", err)
	}

	var c Components
	c.Scheme = u.Scheme

	if u.User != nil {
		user, password, _ := strings.Cut(u.User.String(), ":")
		c.User = user
		c.Password = password
	}

	c.Host = escapeZone(u.Host)
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port > maxPort {
			return Components{}, malformed(raw, "port out of range", err)
		}
		c.Port = &port
		c.Host = strings.TrimSuffix(c.Host, ":"+p)
	}
	c.Host = strings.TrimSuffix(c.Host, ":")

	if u.Opaque != "" {
		c.Path = u.Opaque
	} else {
		c.Path = u.EscapedPath()
	}
	c.Query = u.RawQuery
	c.Fragment = u.EscapedFragment()

	c = c.withoutBlanks()

	if c.Scheme != "" && c.Host == "" {
		if c.Path == "" && c.Query == "" && c.Fragment == "" {
			return Components{}, malformed(raw, "scheme without authority, path, query or fragment", nil)
		}
		if slices.Contains(hostSchemes, strings.ToLower(c.Scheme)) {
			return Components{}, malformed(raw, "missing host", nil)
		}
	}

	return c, nil
}

// withoutBlanks turns whitespace-only values into absent ones.
func (c Components) withoutBlanks() Components {
	for _, s := range []*string{&c.Scheme, &c.User, &c.Password, &c.Host, &c.Path, &c.Query, &c.Fragment} {
		if strings.TrimSpace(*s) == "" {
			*s = ""
		}
	}
	return c
}
