package types

import (
	"fmt"
	"math"
)

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Storage
	// memory keeps everything in the process, postgres needs DATABASE_URL
	StoreDriver    string `envconfig:"STORE_DRIVER" default:"memory"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	SeedSampleData bool   `envconfig:"SEED_SAMPLE_DATA" default:"true"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values. Random keys are used when unset.
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Matching & notification policy
	RequestRadiusKm   float64            `envconfig:"REQUEST_RADIUS_KM" default:"15"`
	NotifyTopN        int                `envconfig:"NOTIFY_TOP_N" default:"10"`
	DisplayTopN       int                `envconfig:"DISPLAY_TOP_N" default:"5"`
	SearchRadiusKm    float64            `envconfig:"SEARCH_RADIUS_KM" default:"10"`
	UrgencyRadiusKm   map[string]float64 `envconfig:"URGENCY_RADIUS_KM"`    // e.g. Critical:30,High:20
	UrgencyNotifyTopN map[string]int     `envconfig:"URGENCY_NOTIFY_TOP_N"` // e.g. Critical:25

	// Gamification
	DonationPoints    int `envconfig:"DONATION_POINTS" default:"100"`
	UrgentBonusPoints int `envconfig:"URGENT_BONUS_POINTS" default:"50"`

	// Analytics report archive
	ReportBucket string `envconfig:"REPORT_BUCKET"`
	ReportPrefix string `envconfig:"REPORT_PREFIX" default:"reports"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// NotificationPolicy decides how far a request reaches and how many donors
// are notified for it.
type NotificationPolicy struct {
	RadiusKm        float64
	NotifyTopN      int
	UrgencyRadiusKm map[Urgency]float64
	UrgencyTopN     map[Urgency]int
}

func (p NotificationPolicy) Radius(u Urgency) float64 {
	if r, ok := p.UrgencyRadiusKm[u]; ok && r >= 0 {
		return r
	}
	return p.RadiusKm
}

func (p NotificationPolicy) TopN(u Urgency) int {
	if n, ok := p.UrgencyTopN[u]; ok && n >= 0 {
		return n
	}
	return p.NotifyTopN
}

// Policy builds the notification policy from the configured values. Unknown
// urgency keys are ignored.
func (c *Config) Policy() NotificationPolicy {
	p := NotificationPolicy{
		RadiusKm:        c.RequestRadiusKm,
		NotifyTopN:      c.NotifyTopN,
		UrgencyRadiusKm: make(map[Urgency]float64),
		UrgencyTopN:     make(map[Urgency]int),
	}

	for k, v := range c.UrgencyRadiusKm {
		if u, err := ParseUrgency(k); err == nil {
			p.UrgencyRadiusKm[u] = v
		}
	}

	for k, v := range c.UrgencyNotifyTopN {
		if u, err := ParseUrgency(k); err == nil {
			p.UrgencyTopN[u] = v
		}
	}

	return p
}

// Validate rejects radius settings the matching engine would refuse at
// request time.
func (c *Config) Validate() error {
	if invalidRadius(c.RequestRadiusKm) {
		return fmt.Errorf("%w: REQUEST_RADIUS_KM %v", ErrInvalidRadius, c.RequestRadiusKm)
	}

	if invalidRadius(c.SearchRadiusKm) {
		return fmt.Errorf("%w: SEARCH_RADIUS_KM %v", ErrInvalidRadius, c.SearchRadiusKm)
	}

	for k, v := range c.UrgencyRadiusKm {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: URGENCY_RADIUS_KM %s=%v", ErrInvalidRadius, k, v)
		}
	}

	if c.NotifyTopN < 0 {
		return fmt.Errorf("NOTIFY_TOP_N must not be negative, got %d", c.NotifyTopN)
	}

	return nil
}

func invalidRadius(r float64) bool {
	return math.IsNaN(r) || math.IsInf(r, 0) || r < 0
}
