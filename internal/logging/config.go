package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "FCMRECEIVER_LOG_LEVEL"
	EnvLogTimestamp = "FCMRECEIVER_LOG_TIMESTAMP"
	EnvLogNoColor   = "FCMRECEIVER_LOG_NOCOLOR"
	EnvLogBypass    = "FCMRECEIVER_LOG_BYPASS"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure installs the global zerolog logger for the given profile,
// applying environment overrides on top of the profile's defaults.
// Only the first call across the process does anything.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		level, timestamp, noColor, bypass := defaultSettings(profile)
		applyEnvOverrides(&level, &timestamp, &noColor, &bypass)

		if bypass {
			log.Logger = zerolog.Nop()
			return
		}

		out := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: noColor}
		ctx := zerolog.New(out).With()
		if timestamp {
			ctx = ctx.Timestamp()
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = ctx.Logger()
	})
}

func defaultSettings(profile Profile) (level zerolog.Level, timestamp, noColor, bypass bool) {
	switch profile {
	case ProfileTest:
		return zerolog.DebugLevel, false, true, false
	default:
		return zerolog.InfoLevel, true, false, false
	}
}

func applyEnvOverrides(level *zerolog.Level, timestamp, noColor, bypass *bool) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		*level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		*timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		*noColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogBypass)); ok {
		*bypass = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
