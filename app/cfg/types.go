package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port          string
	FeedServerURL string
	APIAccessKey  string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
