package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/assistant"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main delegates to runMain so deferred calls (closing the log file)
// run before the process exits.
func main() {
	os.Exit(runMain())
}

// app carries the state shared by the root command and its subcommands.
type app struct {
	configPath string
	dataPath   string
	debug      bool

	settings  *config.Settings
	logCloser io.Closer
}

func runMain() int {
	a := &app{}
	root := a.rootCmd()

	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := root.ExecuteContext(ctx)
	if a.logCloser != nil {
		defer func() { _ = a.logCloser.Close() }()
	}
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     config.BinaryName,
		Short:   config.CmdShort,
		Long:    config.CmdLong,
		Version: fmt.Sprintf(config.MsgVersionOutput, config.Version, config.Commit, config.Date, runtime.GOOS, runtime.GOARCH),

		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runInteractive,
	}
	cmd.SetVersionTemplate(config.MsgVersionTemplate)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, config.FlagConfig, config.FlagConfigShort, "", config.FlagDescConfig)
	flags.StringVar(&a.dataPath, config.FlagData, "", config.FlagDescData)
	flags.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	cmd.AddCommand(a.birthdaysCmd(), a.exportCmd())
	return cmd
}

// setup loads settings and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		s.DataFile = a.dataPath
	}
	a.settings = s
	a.logCloser = setupLogging(s.Log, a.debug)
	logStartupInfo()
	return nil
}

// runInteractive is the default command: the assistant dialogue.
func (a *app) runInteractive(cmd *cobra.Command, _ []string) error {
	store := storage.NewFileStore(a.settings.DataFile)
	book, err := store.Load()
	if err != nil {
		return err
	}

	bot := a.newAssistant(book, store)
	bot.In = cmd.InOrStdin()
	bot.Out = cmd.OutOrStdout()
	return bot.Run(cmd.Context())
}

func (a *app) birthdaysCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   config.CmdBirthdaysUse,
		Short: config.CmdBirthdaysShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := storage.NewFileStore(a.settings.DataFile).Load()
			if err != nil {
				return err
			}
			bot := a.newAssistant(book, nil)
			if bot.WindowDays, err = windowFlag(cmd, days, bot.WindowDays); err != nil {
				return err
			}

			upcoming := book.UpcomingBirthdays(bot.Clock.Now(), bot.WindowDays)
			if len(upcoming) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), bot.Messages.Get(config.TKeyNoUpcoming, map[string]any{"Days": bot.WindowDays}))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), bot.FormatUpcoming(upcoming))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, config.FlagDays, config.DefaultWindowDays, config.FlagDescDays)
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var days int
	var out string
	cmd := &cobra.Command{
		Use:   config.CmdExportUse,
		Short: config.CmdExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			book, err := storage.NewFileStore(a.settings.DataFile).Load()
			if err != nil {
				return err
			}
			bot := a.newAssistant(book, nil)
			if bot.WindowDays, err = windowFlag(cmd, days, bot.WindowDays); err != nil {
				return err
			}

			data, count, err := bot.Exporter.Export(book, bot.WindowDays)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), bot.Messages.Get(config.TKeyCalendarExported, map[string]any{"Count": count, "Path": out}))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, config.FlagOut, config.DefaultCalendarFile, config.FlagDescOut)
	cmd.Flags().IntVar(&days, config.FlagDays, config.DefaultWindowDays, config.FlagDescDays)
	return cmd
}

// windowFlag returns --days when it was given, the configured window otherwise.
func windowFlag(cmd *cobra.Command, days, configured int) (int, error) {
	if !cmd.Flags().Changed(config.FlagDays) {
		return configured, nil
	}
	if days < 0 || days > config.MaxWindowDays {
		return 0, &addressbook.ValidationError{Field: config.FlagDays, Value: strconv.Itoa(days), Reason: config.ErrWindowArg}
	}
	return days, nil
}

// newAssistant applies the loaded settings to a fresh Assistant.
func (a *app) newAssistant(book *addressbook.AddressBook, store assistant.Store) *assistant.Assistant {
	bot := assistant.New(book, store, assistant.NewMessages(a.settings.Language))
	bot.WindowDays = a.settings.Birthdays.WindowDays
	bot.Exporter.ReminderTrigger = a.settings.Birthdays.Reminder
	return bot
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to a rotating
// file; stdout belongs to the dialogue, so only --debug mirrors to stderr.
func setupLogging(ls config.LogSettings, debugMode bool) io.Closer {
	var writers []io.Writer
	var closer io.Closer

	if err := os.MkdirAll(filepath.Dir(ls.File), config.DirPermUserRWX); err == nil {
		rotator := &lumberjack.Logger{
			Filename:   ls.File,
			MaxSize:    ls.MaxSizeMB,
			MaxBackups: ls.MaxBackups,
			Compress:   ls.Compress,
		}
		writers = append(writers, rotator)
		closer = rotator
	} else {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, ls.File, err)
	}

	level := ls.SlogLevel()
	if debugMode {
		level = slog.LevelDebug
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))
	return closer
}
