package config

import (
	"os"
	"strconv"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "YOZORA_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "YOZORA_CONFIG_API_BASE_URL",
		desc:  "Sets the base URL of the catalog API.  Default: https://api.yozora.app/v1",
		apply: func(c *Config, s string) { c.API.BaseURL = s },
	},
	{
		name: "YOZORA_CONFIG_API_TIMEOUT_SECONDS",
		desc: "Sets the request timeout in seconds for catalog API calls.  Default: 30",
		apply: func(c *Config, s string) {
			if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
				c.API.TimeoutSeconds = secs
			}
		},
	},
	{
		name:  "YOZORA_CONFIG_AUTH_TOKEN",
		desc:  "Set the session token.  Default: None",
		apply: func(c *Config, s string) { c.Auth.Token = s },
	},
	{
		name:  "YOZORA_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "YOZORA_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}
