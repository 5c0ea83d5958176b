package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "TABBY_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides settings from TABBY_* variables:
//
//	TABBY_LOG_LEVEL        log.level
//	TABBY_PAGE_SIZE        editor.page_size
//	TABBY_SHELL            shell.program
//	TABBY_SHELL_FLAG       shell.flag
//	TABBY_PLUGINS          plugins.enabled
//	TABBY_PLUGINS_WATCH    plugins.watch
//
// A nil lookup reads the process environment. Empty string values are
// treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "PAGE_SIZE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &ValueError{Setting: "editor.page_size", Value: v, Reason: "not an integer"}
		}
		c.Editor.PageSize = n
	}
	if v, ok := lookup(EnvPrefix + "SHELL"); ok {
		c.Shell.Program = v
	}
	if v, ok := lookup(EnvPrefix + "SHELL_FLAG"); ok {
		c.Shell.Flag = v
	}
	for key, dst := range map[string]*bool{
		"PLUGINS":       &c.Plugins.Enabled,
		"PLUGINS_WATCH": &c.Plugins.Watch,
	} {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return &ValueError{Setting: strings.ToLower(EnvPrefix + key), Value: v, Reason: "not a boolean"}
		}
		*dst = b
	}

	return c.Validate()
}
