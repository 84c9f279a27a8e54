package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/bot"
	"github.com/tartampluch/go-assistant-bot/internal/config"
	"github.com/tartampluch/go-assistant-bot/internal/storage"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	configPath := flag.String(config.FlagConfig, config.DefaultConfigFile, config.FlagDescConfig)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err)
		return config.ExitCodeError
	}

	code := run(ctx, stop, settings, os.Stdin, os.Stdout)
	if code == config.ExitCodeSuccess {
		slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	}
	return code
}

// run loads the book, then serves the read-eval-print loop until a quitting
// command, end of input or an interrupt.
func run(ctx context.Context, stop context.CancelFunc, settings config.Settings, in io.Reader, out io.Writer) int {
	store, err := storage.Open(settings.Storage, settings.DataFile)
	if err != nil {
		return fail(out, err)
	}
	book, err := store.Load(ctx)
	if err != nil {
		return fail(out, err)
	}

	b := bot.New(&bot.Session{
		Book:     book,
		Store:    store,
		Clock:    addressbook.RealClock{},
		Settings: settings,
	})
	catalog := b.Session().Catalog

	// The reader only forwards lines; the book is touched on this goroutine alone.
	lines := make(chan string)
	go readLines(in, lines)

	fmt.Fprintln(out, catalog.Msg(config.TKeyWelcome))
	for {
		fmt.Fprint(out, config.PromptInput)

		select {
		case <-ctx.Done():
			// Restore default signal handling so a second Ctrl+C kills the process.
			stop()
			fmt.Fprintln(out)
			fmt.Fprintln(out, catalog.Msg(config.TKeyInterrupted))
			slog.Info(config.MsgInterrupted, config.LogKeyComponent, config.CompMain)
			return saveOnExit(b, out)

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return saveOnExit(b, out)
			}
			res := b.Execute(ctx, line)
			fmt.Fprintln(out, res.Reply)
			if res.Quit {
				return config.ExitCodeSuccess
			}
		}
	}
}

// readLines scans in until EOF and closes the channel.
func readLines(in io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(config.ErrReadInput,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err)
	}
}

// saveOnExit performs the one-time save of an interrupted or abandoned session.
func saveOnExit(b *bot.Bot, out io.Writer) int {
	// The signal context is already done, the save must not inherit it.
	if err := b.Save(context.Background()); err != nil {
		slog.Error(config.ErrStoreSave,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err)
		fmt.Fprintln(out, b.Session().Catalog.Msgf(config.TKeySaveFailed, map[string]any{"Error": err.Error()}))
		return config.ExitCodeError
	}
	fmt.Fprintln(out, b.Session().Catalog.Msg(config.TKeyGoodbye))
	return config.ExitCodeSuccess
}

func fail(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	slog.Error(config.ErrAppFailed,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyError, err)
	return config.ExitCodeError
}

// printVersion outputs the build information injected with -ldflags.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
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

// setupLogging sends JSON logs to the cache directory so stdout stays
// reserved for the conversation. Debug mode mirrors them to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
