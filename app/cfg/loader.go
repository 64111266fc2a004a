package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath    string `long:"db-path" env:"DB_PATH" default:"./aladin-meta.db" description:"SQLite database file holding preferences"`
	PrefsFile string `long:"prefs-file" env:"PREFS_FILE" description:"Optional YAML file overriding default preferences"`

	// Provider configuration
	TTBKey         string `long:"ttb-key" env:"ALADIN_TTB_KEY" description:"Aladin TTB API key (enables the aladinapi provider)"`
	WorkerCount    int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of workers resolving candidate detail pages"`
	MaxCandidates  int    `long:"max-candidates" env:"MAX_CANDIDATES" default:"5" description:"Maximum number of search candidates resolved per query"`
	TaskTimeout    int    `long:"task-timeout" env:"TASK_TIMEOUT" default:"30" description:"Timeout in seconds for resolving a single candidate"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"20" description:"Timeout in seconds for a single outbound HTTP request"`

	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64; rv:130.0) Gecko/20100101 Firefox/130.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Asia/Seoul" description:"Timezone used for the contents page hour parameter"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return load(nil)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, err
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		PrefsFile:      raw.PrefsFile,
		TTBKey:         raw.TTBKey,
		WorkerCount:    raw.WorkerCount,
		MaxCandidates:  raw.MaxCandidates,
		TaskTimeout:    time.Duration(raw.TaskTimeout) * time.Second,
		RequestTimeout: time.Duration(raw.RequestTimeout) * time.Second,
		Port:           raw.Port,
		APIAccessKey:   raw.APIAccessKey,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}


func validate(raw *rawCfg) error {
	positiveFields := map[string]int{
		"worker count":    raw.WorkerCount,
		"max candidates":  raw.MaxCandidates,
		"task timeout":    raw.TaskTimeout,
		"request timeout": raw.RequestTimeout,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
