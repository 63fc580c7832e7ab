package urlutil

import (
	"maps"
	"slices"
)

// defaultTrackingParams lists query keys that identify a campaign, click or
// session rather than the resource itself.
var defaultTrackingParams = []string{
	// analytics
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"utm_cpc", "utm_device", "utm_placement", "utm_network",

	// ad and social click ids
	"gclid", "fbclid", "twclid", "msclkid", "dclid",
	"yclid", "wickedid", "mtm_source", "mtm_medium",

	// email marketing
	"mc_cid", "mc_eid", "campaignid", "adgroupid",
	"mailtrack", "pk_campaign", "pk_kwd",

	// affiliate and referral
	"ref", "referrer", "aff", "affiliate", "affiliate_id",

	// session tracking
	"_ga", "_gl", "__hssc", "__hstc", "hsCtaTracking",

	// ad platforms
	"ad_id", "ad_name", "adset_id", "adset_name", "campaign_id",

	// A/B testing
	"ab", "experiment", "variation", "test_group",

	"cid", "scid", "sid", "tap_a", "tap_s", "vgo_ee",
}

// DefaultTrackingParams returns a copy of the built-in tracking parameter list.
func DefaultTrackingParams() []string {
	return slices.Clone(defaultTrackingParams)
}

// QueryPolicy controls query string normalization.
type QueryPolicy struct {
	WithoutDuplicates     bool
	WithoutEmptyPairs     bool
	WithoutNumericIndices bool
	WithSortedParams      bool
	WithoutTrackingParams bool
	TrackingParams        []string
}

// PathPolicy controls path normalization.
type PathPolicy struct {
	WithoutDotSegments   bool
	WithoutEmptySegments bool
	WithoutTrailingSlash bool
}

// Config is a fully resolved normalizer configuration.
type Config struct {
	Algorithm Algorithm
	Query     QueryPolicy
	Path      PathPolicy
	// Extra holds configuration keys the built-in normalizers do not use.
	Extra map[string]any
}

// DefaultConfig returns the built-in configuration: sha256 fingerprints and
// every query and path normalization enabled.
func DefaultConfig() Config {
	return Config{
		Algorithm: DefaultAlgorithm,
		Query:     defaultQueryPolicy(),
		Path:      defaultPathPolicy(),
	}
}

func defaultQueryPolicy() QueryPolicy {
	return QueryPolicy{
		WithoutDuplicates:     true,
		WithoutEmptyPairs:     true,
		WithoutNumericIndices: true,
		WithSortedParams:      true,
		WithoutTrackingParams: true,
		TrackingParams:        DefaultTrackingParams(),
	}
}

func defaultPathPolicy() PathPolicy {
	return PathPolicy{
		WithoutDotSegments:   true,
		WithoutEmptySegments: true,
		WithoutTrailingSlash: true,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Query.TrackingParams = slices.Clone(c.Query.TrackingParams)
	c.Extra = maps.Clone(c.Extra)
	return c
}

// Overrides is a partial Config. Nil fields keep the default value.
type Overrides struct {
	Fingerprint *string        `mapstructure:"fingerprint"`
	Query       QueryOverrides `mapstructure:"query"`
	Path        PathOverrides  `mapstructure:"path"`
	Extra       map[string]any `mapstructure:",remain"`
}

// QueryOverrides is a partial QueryPolicy. A non-nil TrackingParams,
// even an empty one, replaces the default list.
type QueryOverrides struct {
	WithoutDuplicates     *bool    `mapstructure:"withoutDuplicates"`
	WithoutEmptyPairs     *bool    `mapstructure:"withoutEmptyPairs"`
	WithoutNumericIndices *bool    `mapstructure:"withoutNumericIndices"`
	WithSortedParams      *bool    `mapstructure:"withSortedParams"`
	WithoutTrackingParams *bool    `mapstructure:"withoutTrackingParams"`
	TrackingParams        []string `mapstructure:"trackingParamsList"`
}

// PathOverrides is a partial PathPolicy.
type PathOverrides struct {
	WithoutDotSegments   *bool `mapstructure:"withoutDotSegments"`
	WithoutEmptySegments *bool `mapstructure:"withoutEmptySegments"`
	WithoutTrailingSlash *bool `mapstructure:"withoutTrailingSlash"`
}

// Resolve merges o over defaults leaf by leaf. Lists are replaced, not
// appended to. The only failure is an unknown fingerprint algorithm.
func Resolve(defaults Config, o Overrides) (Config, error) {
	cfg := defaults.Clone()

	if o.Fingerprint != nil {
		algo, err := ParseAlgorithm(*o.Fingerprint)
		if err != nil {
			return Config{}, err
		}
		cfg.Algorithm = algo
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}

	q := &cfg.Query
	setBool(&q.WithoutDuplicates, o.Query.WithoutDuplicates)
	setBool(&q.WithoutEmptyPairs, o.Query.WithoutEmptyPairs)
	setBool(&q.WithoutNumericIndices, o.Query.WithoutNumericIndices)
	setBool(&q.WithSortedParams, o.Query.WithSortedParams)
	setBool(&q.WithoutTrackingParams, o.Query.WithoutTrackingParams)
	if o.Query.TrackingParams != nil {
		q.TrackingParams = slices.Clone(o.Query.TrackingParams)
	}

	p := &cfg.Path
	setBool(&p.WithoutDotSegments, o.Path.WithoutDotSegments)
	setBool(&p.WithoutEmptySegments, o.Path.WithoutEmptySegments)
	setBool(&p.WithoutTrailingSlash, o.Path.WithoutTrailingSlash)

	if len(o.Extra) > 0 {
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]any, len(o.Extra))
		}
		maps.Copy(cfg.Extra, o.Extra)
	}

	return cfg, nil
}

// fingerprintConfig derives the fixed policy used for fingerprints. Only the
// algorithm and the tracking list come from c.
func (c Config) fingerprintConfig() Config {
	fp := Config{
		Algorithm: c.Algorithm,
		Query:     defaultQueryPolicy(),
		Path:      defaultPathPolicy(),
		Extra:     c.Extra,
	}
	fp.Query.TrackingParams = c.Query.TrackingParams
	return fp
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Bool returns a pointer to b, for building Overrides literals.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building Overrides literals.
func String(s string) *string { return &s }
