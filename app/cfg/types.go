package cfg

import "time"

type Cfg struct {
	// Storage configuration
	DBPath    string
	PrefsFile string

	// Provider configuration
	TTBKey         string
	WorkerCount    int
	MaxCandidates  int
	TaskTimeout    time.Duration
	RequestTimeout time.Duration

	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
