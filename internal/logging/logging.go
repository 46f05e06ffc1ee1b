// Package logging provides the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/igoryan-dao/ricochet-prompt/internal/paths"
)

var (
	once sync.Once
	log  zerolog.Logger
)

const (
	logFilePrefix   = "ricochet-prompt-"
	logFileSuffix   = ".log"
	maxLogFileCount = 7
)

// GetLogLevel reads RICOCHET_LOG_LEVEL as a zerolog numeric level.
func GetLogLevel() zerolog.Level {
	level, err := strconv.Atoi(os.Getenv("RICOCHET_LOG_LEVEL"))
	if err != nil {
		return zerolog.InfoLevel
	}
	return zerolog.Level(level)
}

// Init builds the shared logger with its log file under globalDir for the
// workspace cwd. Only the first call to Init or Get takes effect.
func Init(globalDir, cwd string) zerolog.Logger {
	once.Do(func() { log = newLogger(globalDir, cwd) })
	return log
}

// Get returns the shared logger. Without a prior Init it logs for the
// process working directory under paths.GetGlobalDir().
func Get() zerolog.Logger {
	once.Do(func() {
		cwd, _ := os.Getwd()
		log = newLogger(paths.GetGlobalDir(), cwd)
	})
	return log
}

// newLogger writes to stderr, since stdout is reserved for prompt output and
// the stdio protocol, and to a daily file when the log directory is usable.
func newLogger(globalDir, cwd string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	if globalDir != "" && cwd != "" {
		if fw, err := newDailyRotatingLogWriter(paths.GetLogDir(globalDir, cwd)); err == nil {
			output = zerolog.MultiLevelWriter(output, fw)
		}
	}

	return zerolog.New(output).
		Level(GetLogLevel()).
		With().
		Timestamp().
		Logger()
}

// Component returns the shared logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

type dailyRotatingLogWriter struct {
	mu          sync.Mutex
	dir         string
	currentDate string
	file        *os.File
}

func newDailyRotatingLogWriter(dir string) (*dailyRotatingLogWriter, error) {
	if err := paths.EnsureDir(dir); err != nil {
		return nil, err
	}
	w := &dailyRotatingLogWriter{dir: dir}
	if err := w.rotateIfNeeded(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *dailyRotatingLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return w.file.Write(p)
}

func (w *dailyRotatingLogWriter) rotateIfNeeded() error {
	today := time.Now().Format("2006-01-02")
	if w.currentDate == today && w.file != nil {
		return nil
	}

	if w.file != nil {
		w.file.Close()
	}

	file, err := os.OpenFile(
		filepath.Join(w.dir, logFilePrefix+today+logFileSuffix),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return err
	}

	w.file = file
	w.currentDate = today
	cleanupOldLogFiles(w.dir)
	return nil
}

func (w *dailyRotatingLogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

var _ io.WriteCloser = (*dailyRotatingLogWriter)(nil)

func cleanupOldLogFiles(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, logFilePrefix) && strings.HasSuffix(name, logFileSuffix) {
			logFiles = append(logFiles, name)
		}
	}
	if len(logFiles) <= maxLogFileCount {
		return
	}

	sort.Strings(logFiles)
	for _, name := range logFiles[:len(logFiles)-maxLogFileCount] {
		os.Remove(filepath.Join(dir, name))
	}
}
