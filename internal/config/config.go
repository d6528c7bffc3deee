package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	VariantBasic    = "basic"
	VariantEnhanced = "enhanced"

	EnvPrefix  = "AIRSEED"
	ConfigName = "airseed.config"
	DateLayout = "2006-01-02"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Scale      int        `json:"scale" mapstructure:"scale" validate:"gte=1,lte=1000"`
	Seed       int64      `json:"seed" mapstructure:"seed"`
	Variant    string     `json:"variant" mapstructure:"variant" validate:"oneof=basic enhanced"`
	BaseDate   string     `json:"base_date,omitempty" mapstructure:"base_date" validate:"omitempty,datetime=2006-01-02"`
	LogLevel   string     `json:"log_level" mapstructure:"log_level"`
	Output     Output     `json:"output" mapstructure:"output"`
	Catalog    Catalog    `json:"catalog" mapstructure:"catalog"`
	Generation Generation `json:"generation" mapstructure:"generation"`
}

type Output struct {
	Dir       string `json:"dir" mapstructure:"dir" validate:"required"`
	Format    string `json:"format" mapstructure:"format" validate:"oneof=csv sql json sqlite"`
	ChunkSize int    `json:"chunk_size" mapstructure:"chunk_size" validate:"gte=1"`
	S3        S3     `json:"s3" mapstructure:"s3"`
}

// S3 enables publishing committed files when Bucket is set.
type S3 struct {
	Bucket   string `json:"bucket,omitempty" mapstructure:"bucket"`
	Prefix   string `json:"prefix,omitempty" mapstructure:"prefix"`
	Region   string `json:"region,omitempty" mapstructure:"region" validate:"required_with=Bucket"`
	Endpoint string `json:"endpoint,omitempty" mapstructure:"endpoint" validate:"omitempty,url"`
	// Static credentials; when empty the default AWS chain is used.
	AccessKeyID     string `json:"-" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"-" mapstructure:"secret_access_key"`
}

type Catalog struct {
	Offline        bool     `json:"offline" mapstructure:"offline"`
	TimeoutSeconds int      `json:"timeout_seconds" mapstructure:"timeout_seconds" validate:"gte=1"`
	AirportsURL    string   `json:"airports_url" mapstructure:"airports_url" validate:"url"`
	AirlinesURL    string   `json:"airlines_url" mapstructure:"airlines_url" validate:"url"`
	RoutesURL      string   `json:"routes_url" mapstructure:"routes_url" validate:"url"`
	Country        string   `json:"country" mapstructure:"country" validate:"required"`
	Carriers       []string `json:"carriers" mapstructure:"carriers" validate:"min=1,dive,required"`
}

// Generation holds every knob that differs between the two generator
// variants. Presets fill it; config files may override individual fields.
type Generation struct {
	PassengersPerScale int `json:"passengers_per_scale" mapstructure:"passengers_per_scale" validate:"gte=0"`
	FlightsPerScale    int `json:"flights_per_scale" mapstructure:"flights_per_scale" validate:"gte=0"`

	Provider        string `json:"provider" mapstructure:"provider" validate:"oneof=pool faker"`
	EmailDomain     string `json:"email_domain" mapstructure:"email_domain"`
	IndexedEmails   bool   `json:"indexed_emails" mapstructure:"indexed_emails"`
	MaxEmailRetries int    `json:"max_email_retries" mapstructure:"max_email_retries" validate:"gte=1"`

	Estimator       string             `json:"estimator" mapstructure:"estimator" validate:"oneof=basic enhanced"`
	HubWeights      map[string]float64 `json:"hub_weights,omitempty" mapstructure:"hub_weights" validate:"dive,gte=0"`
	HubCeiling      float64            `json:"hub_ceiling" mapstructure:"hub_ceiling" validate:"gte=0"`
	HourWeights     []float64          `json:"hour_weights" mapstructure:"hour_weights" validate:"len=24,dive,gte=0"`
	MinuteGrid      []int              `json:"minute_grid" mapstructure:"minute_grid" validate:"min=1,dive,gte=0,lte=59"`
	HorizonDays     int                `json:"horizon_days" mapstructure:"horizon_days" validate:"gte=0"`
	FlightNumberMin int                `json:"flight_number_min" mapstructure:"flight_number_min" validate:"gte=0,lte=9999"`
	FlightNumberMax int                `json:"flight_number_max" mapstructure:"flight_number_max" validate:"gte=0,lte=9999"`
	JitterMin       int                `json:"jitter_min_minutes" mapstructure:"jitter_min_minutes"`
	JitterMax       int                `json:"jitter_max_minutes" mapstructure:"jitter_max_minutes"`
	MinBlockMinutes int                `json:"min_block_minutes" mapstructure:"min_block_minutes" validate:"gte=1"`

	Archetypes   []Archetype `json:"archetypes" mapstructure:"archetypes" validate:"min=1,dive"`
	LeadDaysMin  int         `json:"lead_days_min" mapstructure:"lead_days_min" validate:"gte=1"`
	LeadDaysMax  int         `json:"lead_days_max" mapstructure:"lead_days_max"`
	LeadHoursMax int         `json:"lead_hours_max" mapstructure:"lead_hours_max" validate:"gte=0,lte=23"`
	SeatRows     int         `json:"seat_rows" mapstructure:"seat_rows" validate:"gte=1"`
	SeatLetters  string      `json:"seat_letters" mapstructure:"seat_letters" validate:"required,alpha"`
}

// Archetype maps a traveler category to its share of passengers and the
// inclusive range of bookings each of them makes.
type Archetype struct {
	Name   string  `json:"name" mapstructure:"name" validate:"required"`
	Weight float64 `json:"weight" mapstructure:"weight" validate:"gte=0"`
	Min    int     `json:"min" mapstructure:"min" validate:"gte=1"`
	Max    int     `json:"max" mapstructure:"max"`
}

// SetDefaults registers every scalar key so env overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scale", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("variant", VariantEnhanced)
	v.SetDefault("base_date", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", "csv")
	v.SetDefault("output.chunk_size", 25000)
	v.SetDefault("output.s3.bucket", "")
	v.SetDefault("output.s3.prefix", "")
	v.SetDefault("output.s3.region", "")
	v.SetDefault("output.s3.endpoint", "")
	v.SetDefault("output.s3.access_key_id", "")
	v.SetDefault("output.s3.secret_access_key", "")
	v.SetDefault("catalog.offline", false)
	v.SetDefault("catalog.timeout_seconds", 30)
	v.SetDefault("catalog.airports_url", "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat")
	v.SetDefault("catalog.airlines_url", "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airlines.dat")
	v.SetDefault("catalog.routes_url", "https://raw.githubusercontent.com/jpatokal/openflights/master/data/routes.dat")
	v.SetDefault("catalog.country", "United States")
	v.SetDefault("catalog.carriers", []string{"AA", "DL", "UA", "WN", "AS", "B6", "NK", "F9"})
}

// ConfigureEnv wires AIRSEED_* variables, e.g. AIRSEED_OUTPUT_FORMAT.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom picks the variant preset first, then overlays whatever the viper
// instance holds from files, env and flags.
func LoadFrom(v *viper.Viper) (*Config, error) {
	variant := strings.ToLower(strings.TrimSpace(v.GetString("variant")))
	if variant == "" {
		variant = VariantEnhanced
	}

	cfg := Config{Variant: variant, Generation: Preset(variant)}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Variant = strings.ToLower(cfg.Variant)

	// viper lowercases map keys and Unmarshal merges into the preset map, so
	// an override replaces the whole table with upper-cased airport codes.
	if v.IsSet("generation.hub_weights") {
		var raw map[string]float64
		if err := v.UnmarshalKey("generation.hub_weights", &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hub weights: %w", err)
		}
		cfg.Generation.HubWeights = make(map[string]float64, len(raw))
		for code, w := range raw {
			cfg.Generation.HubWeights[strings.ToUpper(code)] = w
		}
	}

	if cfg.Scale == 0 && !v.IsSet("scale") {
		cfg.Scale = 1
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "csv"
	}
	if cfg.Output.ChunkSize == 0 {
		cfg.Output.ChunkSize = 25000
	}
	if cfg.Catalog.TimeoutSeconds == 0 {
		cfg.Catalog.TimeoutSeconds = 30
	}
	if cfg.Output.S3.Region == "" {
		cfg.Output.S3.Region = os.Getenv("AWS_REGION")
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	g := c.Generation
	if g.FlightNumberMin > g.FlightNumberMax {
		return fmt.Errorf("%w: flight_number_min %d exceeds flight_number_max %d", ErrInvalidConfig, g.FlightNumberMin, g.FlightNumberMax)
	}
	if g.JitterMin > g.JitterMax {
		return fmt.Errorf("%w: jitter_min_minutes %d exceeds jitter_max_minutes %d", ErrInvalidConfig, g.JitterMin, g.JitterMax)
	}
	if g.LeadDaysMin > g.LeadDaysMax {
		return fmt.Errorf("%w: lead_days_min %d exceeds lead_days_max %d", ErrInvalidConfig, g.LeadDaysMin, g.LeadDaysMax)
	}

	var archetypeWeight, hourWeight float64
	for _, a := range g.Archetypes {
		if a.Min > a.Max {
			return fmt.Errorf("%w: archetype %q min %d exceeds max %d", ErrInvalidConfig, a.Name, a.Min, a.Max)
		}
		archetypeWeight += a.Weight
	}
	if archetypeWeight <= 0 {
		return fmt.Errorf("%w: archetype weights must not all be zero", ErrInvalidConfig)
	}
	for _, w := range g.HourWeights {
		hourWeight += w
	}
	if hourWeight <= 0 {
		return fmt.Errorf("%w: hour weights must not all be zero", ErrInvalidConfig)
	}
	if len(g.HubWeights) > 0 && g.HubCeiling <= 0 {
		return fmt.Errorf("%w: hub_ceiling must be positive when hub weights are set", ErrInvalidConfig)
	}

	return nil
}

// BaseTime is the UTC midnight flights are scheduled from. An empty BaseDate
// means today.
func (c *Config) BaseTime(now time.Time) (time.Time, error) {
	if c.BaseDate == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.ParseInLocation(DateLayout, c.BaseDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: base_date %q: %v", ErrInvalidConfig, c.BaseDate, err)
	}
	return t, nil
}

func (c *Config) Passengers() int {
	return c.Scale * c.Generation.PassengersPerScale
}

func (c *Config) Flights() int {
	return c.Scale * c.Generation.FlightsPerScale
}

func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}
