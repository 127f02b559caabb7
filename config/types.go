package config

// Config represents the complete configuration structure
type Config struct {
	QBittorrent QBittorrentConfig `mapstructure:"qbittorrent"`
	Filters     FilterConfig      `mapstructure:"filters"`
	Safety      SafetyConfig      `mapstructure:"safety"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// QBittorrentConfig holds WebUI connection details
type QBittorrentConfig struct {
	URL           string `mapstructure:"url"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	BasicUser     string `mapstructure:"basic_user"`
	BasicPass     string `mapstructure:"basic_pass"`
	Timeout       int    `mapstructure:"timeout"`
	TLSSkipVerify bool   `mapstructure:"tls_skip_verify"`
	RetryMax      int    `mapstructure:"retry_max"`
	RateLimit     int    `mapstructure:"rate_limit"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	Path   string `mapstructure:"path"`
}
