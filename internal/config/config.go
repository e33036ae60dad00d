package config

import (
	"path/filepath"

	"github.com/paularlott/cli"
)

type Config struct {
	ServerURL string
	DataDir   string
	PageSize  int
	AlertDays int
	LogLevel  string
	LogFormat string
}

var (
	serverURL string
	dataDir   string
	pageSize  int
	alertDays int
	logLevel  string
	logFormat string
)

func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "server",
			Usage:        "Backend base URL",
			EnvVars:      []string{"LICTRACK_SERVER"},
			DefaultValue: "http://localhost:9090",
			AssignTo:     &serverURL,
		},
		&cli.StringFlag{
			Name:         "data-dir",
			Usage:        "Local data directory path",
			EnvVars:      []string{"LICTRACK_DATA_DIR"},
			DefaultValue: filepath.Join(".", "data"),
			AssignTo:     &dataDir,
		},
		&cli.IntFlag{
			Name:         "page-size",
			Usage:        "Rows per page for list commands",
			EnvVars:      []string{"LICTRACK_PAGE_SIZE"},
			DefaultValue: 5,
			AssignTo:     &pageSize,
		},
		&cli.IntFlag{
			Name:         "alert-days",
			Usage:        "Default expiry alert window in days",
			EnvVars:      []string{"LICTRACK_ALERT_DAYS"},
			DefaultValue: 30,
			AssignTo:     &alertDays,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (debug, info, warn, error)",
			EnvVars:      []string{"LICTRACK_LOG_LEVEL"},
			DefaultValue: "info",
			AssignTo:     &logLevel,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			EnvVars:      []string{"LICTRACK_LOG_FORMAT"},
			DefaultValue: "console",
			AssignTo:     &logFormat,
		},
	}
}

func Load() *Config {
	return &Config{
		ServerURL: serverURL,
		DataDir:   dataDir,
		PageSize:  pageSize,
		AlertDays: alertDays,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	}
}
