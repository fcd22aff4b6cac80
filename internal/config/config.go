package config

import (
	"fmt"
	"resultfetcher/internal/results"
	"resultfetcher/internal/scrapers/bise"
	"resultfetcher/internal/telemetry"
	"resultfetcher/lib/configutil"
	"resultfetcher/lib/restyutil"
	"time"

	"golang.org/x/time/rate"
)

const (
	RESOLVER_PORTAL = "portal"
	RESOLVER_TABLE  = "table"
	RESOLVER_RANDOM = "random"
)

type PortalConfig struct {
	Url              string `json:"url"`
	Exam             string `json:"exam"`
	Subject          string `json:"subject"`
	SubmitLabel      string `json:"submit_label"`
	UserAgent        string `json:"user_agent"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
}

type TableConfig struct {
	// Path is a json5 file of the form `{records: [...]}`, its records come
	// after the inline ones.
	Path    string               `json:"path"`
	Records []results.TableEntry `json:"records"`
}

type RandomConfig struct {
	Seed         uint64  `json:"seed"`
	NotFoundRate float64 `json:"not_found_rate"`
	MinMarks     int     `json:"min_marks"`
	MaxMarks     int     `json:"max_marks"`
	LatencyMs    int     `json:"latency_ms"`
}

type ServerConfig struct {
	Port int `json:"port"`
}

type Config struct {
	Resolver string       `json:"resolver"`
	Portal   PortalConfig `json:"portal"`
	Table    TableConfig  `json:"table"`
	Random   RandomConfig `json:"random"`
	Server   ServerConfig `json:"server"`
}

func Defaults() Config {
	return Config{
		Resolver: RESOLVER_PORTAL,
		Portal: PortalConfig{
			Url:            bise.DEFAULT_URL,
			Exam:           bise.DEFAULT_EXAM,
			Subject:        bise.DEFAULT_SUBJECT,
			SubmitLabel:    bise.DEFAULT_SUBMIT_LABEL,
			UserAgent:      bise.DEFAULT_USER_AGENT,
			TimeoutSeconds: int(bise.DEFAULT_TIMEOUT / time.Second),
		},
		Random: RandomConfig{
			NotFoundRate: 0.15,
			MinMarks:     33,
			MaxMarks:     100,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Read reads the config at `path` (and its .local override), fields that are
// left unset take their value from Defaults. A missing file is not an error.
func Read(path string) (Config, error) {
	cfg, err := configutil.ReadConfigOrDefault(path, Defaults())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

type BuildOptions struct {
	Telemetry telemetry.API
	// Dump receives the raw HTTP exchanges of the portal client, can be nil.
	Dump restyutil.InstrumentOutput
	// RequestsPerSecond throttles resolves when > 0.
	RequestsPerSecond float64
}

// NewResolver builds the resolver selected by the config.
func (c Config) NewResolver(opts BuildOptions) (results.Resolver, error) {
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewSlogAPI(nil)
	}

	var resolver results.Resolver

	switch c.Resolver {
	case RESOLVER_PORTAL, "":
		client, err := bise.NewClient(bise.ClientOptions{
			Url:              c.Portal.Url,
			Exam:             c.Portal.Exam,
			Subject:          c.Portal.Subject,
			SubmitLabel:      c.Portal.SubmitLabel,
			UserAgent:        c.Portal.UserAgent,
			Timeout:          time.Duration(c.Portal.TimeoutSeconds) * time.Second,
			CloudflareBypass: c.Portal.CloudflareBypass,
			Dump:             opts.Dump,
		}, opts.Telemetry)
		if err != nil {
			return nil, err
		}
		resolver = results.NewPortalResolver(client)
	case RESOLVER_TABLE:
		entries := c.Table.Records
		if c.Table.Path != "" {
			loaded, err := results.LoadTableEntries(c.Table.Path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, loaded...)
		}
		resolver = results.NewTableResolver(entries)
	case RESOLVER_RANDOM:
		resolver = results.NewRandomResolver(results.RandomOptions{
			Seed:         c.Random.Seed,
			NotFoundRate: c.Random.NotFoundRate,
			MinMarks:     c.Random.MinMarks,
			MaxMarks:     c.Random.MaxMarks,
			Latency:      time.Duration(c.Random.LatencyMs) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unknown resolver %q", c.Resolver)
	}

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		resolver = results.RateLimited(resolver, rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst))
	}
	return resolver, nil
}

// NewFetcher is NewResolver followed by results.NewFetcher.
func (c Config) NewFetcher(opts BuildOptions) (*results.Fetcher, error) {
	resolver, err := c.NewResolver(opts)
	if err != nil {
		return nil, err
	}
	return results.NewFetcher(results.FetcherOptions{
		Resolver:  resolver,
		Telemetry: opts.Telemetry,
	})
}
