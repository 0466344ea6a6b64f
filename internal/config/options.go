package config

const (
	defaultLogFile           = "librarize.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/librarize"
	defaultWorkerPoolSize    = 4
	defaultMaxUploadSize     = 100
	defaultCoverProxyBase    = ""
	defaultDictionaryAPI     = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultRateLimitRPS      = 25
	defaultRateLimitBurst    = 50
)

type Option struct {
	Key   string
	Value interface{}
}

// Viper unmarshals with mapstructure, so the field tags below are
// mapstructure tags rather than json tags.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data (database, blobs, shelf state)
	Data string `mapstructure:"data"`
	// WorkerPoolSize is the number of upload workers
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// MaxUploadSize is the maximum size of an upload, in MiB
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
	// CoverProxyBase is the base URL of the image-resizing proxy used to
	// derive cover images from stored PDFs. Empty disables covers.
	CoverProxyBase string `mapstructure:"cover_proxy_base"`
	// DictionaryAPI is the endpoint of the word-definition service
	DictionaryAPI string `mapstructure:"dictionary_api"`
	// RateLimitRPS is the per-client request rate limit
	RateLimitRPS int `mapstructure:"rate_limit_rps"`
	// RateLimitBurst is the per-client burst allowance
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		WorkerPoolSize:    defaultWorkerPoolSize,
		MaxUploadSize:     defaultMaxUploadSize,
		CoverProxyBase:    defaultCoverProxyBase,
		DictionaryAPI:     defaultDictionaryAPI,
		RateLimitRPS:      defaultRateLimitRPS,
		RateLimitBurst:    defaultRateLimitBurst,
	}
	return Opts
}
