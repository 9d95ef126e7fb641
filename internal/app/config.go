package app

import (
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home           string        // keychain directory, e.g. $HOME/.keyward
	GatewayURL     string        // signing gateway base URL
	RequestTimeout time.Duration // pending-request deadline
	RateLimitRPS   float64       // per-origin request rate; 0 disables
	RateLimitBurst int
	Origin         string // identifies this caller to the broker

	HTTP *http.Client // optional; defaults to http.DefaultClient
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		GatewayURL:     "http://127.0.0.1:8091",
		RequestTimeout: 30 * time.Second,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
		Origin:         "cli",
	}
}

// fileConfig is the yaml shape; durations are "5s"-style strings.
type fileConfig struct {
	Home           string  `yaml:"home"`
	GatewayURL     string  `yaml:"gatewayURL"`
	RequestTimeout string  `yaml:"requestTimeout"`
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`
	Origin         string  `yaml:"origin"`
}

// Load merges a yaml config file over the defaults. A missing or
// unparseable file leaves the defaults untouched; explicit flags are
// applied by the caller afterwards.
func Load(configPath string) Config {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates, "keyward.yaml", "configs/keyward.yaml")
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}
	return cfg
}

func merge(dst *Config, src fileConfig) {
	if src.Home != "" {
		dst.Home = src.Home
	}
	if src.GatewayURL != "" {
		dst.GatewayURL = src.GatewayURL
	}
	if d, err := time.ParseDuration(src.RequestTimeout); err == nil && d > 0 {
		dst.RequestTimeout = d
	}
	if src.RateLimitRPS > 0 {
		dst.RateLimitRPS = src.RateLimitRPS
	}
	if src.RateLimitBurst > 0 {
		dst.RateLimitBurst = src.RateLimitBurst
	}
	if src.Origin != "" {
		dst.Origin = src.Origin
	}
}
