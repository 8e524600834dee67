package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/spf13/viper"
)

// Settings is the user-tunable configuration, read from an optional YAML
// file and GOADDRESSBOOK_* environment variables.
type Settings struct {
	DataFile  string           `mapstructure:"data_file"`
	Language  string           `mapstructure:"language"`
	Birthdays BirthdaySettings `mapstructure:"birthdays"`
	Log       LogSettings      `mapstructure:"log"`
}

// BirthdaySettings controls the upcoming-birthday query and calendar export.
type BirthdaySettings struct {
	WindowDays int    `mapstructure:"window_days"`
	Reminder   string `mapstructure:"reminder"` // ISO8601 duration, e.g. "-P1D"
}

// LogSettings configures the rotating log file.
type LogSettings struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// LoadSettings reads the configuration. An explicit path must exist; without
// one, a missing config.yaml simply yields the defaults.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		if dir, err := AppConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeySeparator, EnvKeySeparator))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		slog.Debug(MsgConfigDefaults, LogKeyComponent, CompConfig)
	} else {
		slog.Debug(MsgConfigLoaded,
			LogKeyComponent, CompConfig,
			LogKeyFile, v.ConfigFileUsed())
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigUnmarshal, err)
	}
	s.Birthdays.Reminder = strings.ToUpper(s.Birthdays.Reminder)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}

	return &s, nil
}

func setDefaults(v *viper.Viper) {
	dataFile := FallbackDataFile
	if dir, err := AppConfigDir(); err == nil {
		dataFile = filepath.Join(dir, DataFileName)
	}
	logFile := LogFileName
	if dir, err := AppCacheDir(); err == nil {
		logFile = filepath.Join(dir, LogFileName)
	}

	v.SetDefault(SettingDataFile, dataFile)
	v.SetDefault(SettingLanguage, DefaultLanguage)
	v.SetDefault(SettingWindowDays, DefaultWindowDays)
	v.SetDefault(SettingReminder, "")
	v.SetDefault(SettingLogFile, logFile)
	v.SetDefault(SettingLogLevel, DefaultLogLevel)
	v.SetDefault(SettingLogMaxSizeMB, DefaultLogMaxSizeMB)
	v.SetDefault(SettingLogMaxBackups, DefaultLogMaxBackups)
	v.SetDefault(SettingLogCompress, false)
}

// Validate checks the settings for values the rest of the program cannot use.
func (s *Settings) Validate() error {
	if s.DataFile == "" {
		return errors.New(ErrDataFileEmpty)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrLanguage, s.Language)
	}
	if s.Birthdays.WindowDays < 0 || s.Birthdays.WindowDays > MaxWindowDays {
		return errors.New(ErrWindowRange)
	}
	if s.Birthdays.Reminder != "" && !validReminder(s.Birthdays.Reminder) {
		return fmt.Errorf("%s: %q", ErrReminderFormat, s.Birthdays.Reminder)
	}
	switch s.Log.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%s: %q", ErrLogLevel, s.Log.Level)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l *LogSettings) SlogLevel() slog.Level {
	switch l.Level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// validReminder reports whether s parses as an RFC 5545 duration, the form
// written into the VALARM TRIGGER: P1W, -P1D, -PT2H, P1DT30M.
func validReminder(s string) bool {
	prop := ical.NewProp(PropTrigger)
	prop.Value = s
	if _, err := prop.Duration(); err != nil {
		return false
	}
	// The parser accepts a bare "P", which carries no duration element.
	return !strings.EqualFold(strings.TrimLeft(s, "+-"), ISOPeriodPrefix)
}

// AppConfigDir returns the per-user directory holding the config and data files.
func AppConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID), nil
}

// AppCacheDir returns the per-user directory holding logs.
func AppCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrCacheDir, err)
	}
	return filepath.Join(dir, AppID), nil
}
