package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is shared by controllers and services. It writes to stderr until
// InitLogger attaches the daily log file.
var Logger = newLogger(os.Stderr)

type LogFormatter struct{}

func (m *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	b.WriteString(fmt.Sprintf("[%s] [%s] %s", timestamp, entry.Level, entry.Message))
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", key, entry.Data[key]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})
	logger.SetOutput(out)
	return logger
}

// dailyFile appends to <dir>/<date>-<name>.log and switches files when the
// date changes.
type dailyFile struct {
	mu      sync.Mutex
	dir     string
	name    string
	date    string
	file    *os.File
	nowFunc func() time.Time
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	date := d.nowFunc().Format("2006-01-02")
	if d.file == nil || d.date != date {
		if d.file != nil {
			if err := d.file.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close log file %s: %s\n", d.file.Name(), err)
			}
		}
		filename := filepath.Join(d.dir, fmt.Sprintf("%s-%s.log", date, d.name))
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		d.file = f
		d.date = date
	}
	return d.file.Write(p)
}

// InitLogger tees Logger into a daily file under logPath and routes gin's
// standard logrus usage through the same formatter.
func InitLogger(logPath string, fileName string) error {
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		return fmt.Errorf("create log dir %s: %w", logPath, err)
	}
	file := &dailyFile{dir: logPath, name: fileName, nowFunc: time.Now}
	Logger.SetOutput(io.MultiWriter(file, os.Stderr))

	logrus.SetFormatter(&LogFormatter{})
	logrus.SetOutput(Logger.Out)
	return nil
}
