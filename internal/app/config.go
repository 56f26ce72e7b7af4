package app

// Config holds runtime wiring options for building the app.
type Config struct {
	Workdir    string // working tree the tasks operate on, e.g. "."
	ConfigFile string // optional explicit config file path
	DryRun     bool   // resolve and log plans without executing anything
	LogLevel   string // overrides the configured log level when set
	LogFormat  string // overrides the configured log format when set
}
