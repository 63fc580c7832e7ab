package urlutil

import "strings"

// Normalizer canonicalizes URLs under a fixed configuration and set of
// handlers. A Normalizer is read-only after New and safe for concurrent use.
type Normalizer struct {
	cfg      Config
	handlers Handlers
}

// New resolves o over DefaultConfig and returns a Normalizer that applies h
// after the built-in component normalization. An unknown fingerprint
// algorithm is reported here rather than on first use.
func New(o Overrides, h Handlers) (*Normalizer, error) {
	cfg, err := Resolve(DefaultConfig(), o)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Algorithm.newHash(); err != nil {
		return nil, err
	}
	return &Normalizer{cfg: cfg, handlers: h}, nil
}

// Default returns a Normalizer with the built-in configuration and no handlers.
func Default() *Normalizer {
	return &Normalizer{cfg: DefaultConfig()}
}

var defaultNormalizer = Default()

// Normalize normalizes rawURL with the built-in configuration.
func Normalize(rawURL string) (string, error) {
	return defaultNormalizer.Normalize(rawURL)
}

// Config returns a copy of the resolved configuration.
func (n *Normalizer) Config() Config {
	return n.cfg.Clone()
}

// Handlers returns the registered component handlers.
func (n *Normalizer) Handlers() Handlers {
	return n.handlers
}

// Normalize returns the canonical form of rawURL. The empty string
// normalizes to itself.
//
// Normalization includes:
//   - Lowercasing the scheme and host, with IDNA for non-ASCII hosts
//   - Resolving dot segments, folding repeated slashes and dropping the
//     trailing slash
//   - Removing duplicate, empty and tracking query parameters and sorting
//     the rest
//   - Running the registered handlers
func (n *Normalizer) Normalize(rawURL string) (string, error) {
	c, err := n.normalize(rawURL, n.cfg)
	if err != nil {
		return "", err
	}
	return Build(c), nil
}

// Parse splits rawURL into normalized components.
func (n *Normalizer) Parse(rawURL string) (Components, error) {
	return n.normalize(rawURL, n.cfg)
}

// Build assembles c into a URL string. It is the same as the package-level Build.
func (n *Normalizer) Build(c Components) string {
	return Build(c)
}

// Details describes one URL in every form the Normalizer produces.
type Details struct {
	Fingerprint   string     `json:"fingerprint" yaml:"fingerprint"`
	OriginalURL   string     `json:"original_url" yaml:"original_url"`
	NormalizedURL string     `json:"normalized_url" yaml:"normalized_url"`
	Components    Components `json:"components" yaml:"components"`
}

// Details parses rawURL once for display and once more for its fingerprint.
func (n *Normalizer) Details(rawURL string) (Details, error) {
	c, err := n.Parse(rawURL)
	if err != nil {
		return Details{}, err
	}
	fp, err := n.Fingerprint(rawURL)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Fingerprint:   fp,
		OriginalURL:   rawURL,
		NormalizedURL: Build(c),
		Components:    c,
	}, nil
}

// Equals reports whether all urls share one fingerprint. It needs at least
// two URLs, and a URL that fails to parse is an error rather than a mismatch.
func (n *Normalizer) Equals(urls ...string) (bool, error) {
	if len(urls) < 2 {
		return false, &InvalidArgumentError{Op: "equals", Reason: "at least two URLs are required"}
	}

	first, err := n.Fingerprint(urls[0])
	if err != nil {
		return false, err
	}
	equal := true
	for _, u := range urls[1:] {
		fp, err := n.Fingerprint(u)
		if err != nil {
			return false, err
		}
		if fp != first {
			equal = false
		}
	}
	return equal, nil
}

// normalize parses rawURL and runs every component through its normalizer
// and handler under cfg. cfg is passed in so fingerprinting can use its own
// policy without touching n.
func (n *Normalizer) normalize(rawURL string, cfg Config) (Components, error) {
	raw, err := splitURL(rawURL)
	if err != nil {
		return Components{}, err
	}

	h := n.handlers
	var c Components

	c.Scheme = invokeString(h.Scheme, strings.ToLower(raw.Scheme), raw.Scheme)
	c.User = invokeString(h.User, raw.User, raw.User)
	c.Password = invokeString(h.Password, raw.Password, raw.Password)

	if raw.Host != "" {
		host, err := normalizeHost(raw.Host)
		if err != nil {
			return Components{}, malformed(rawURL, "invalid host", err)
		}
		c.Host = invokeString(h.Host, host, raw.Host)
	}

	if raw.Port != nil {
		if port, keep := invoke(h.Port, *raw.Port, *raw.Port, true); keep {
			c.Port = &port
		}
	}

	c.Path = invokeString(h.Path, normalizePath(raw.Path, cfg.Path), raw.Path)
	c.Query = invokeString(h.Query, normalizeQuery(raw.Query, cfg.Query), raw.Query)
	c.Fragment = invokeString(h.Fragment, raw.Fragment, raw.Fragment)

	return c.withoutBlanks(), nil
}
