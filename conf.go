package todo

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string        `env:"TODO_DB_URL"`
	LogLevel    string        `env:"TODO_LOG_LEVEL" env-default:"WARN"`
	LogPath     string        `env:"TODO_LOG_PATH"`
	TimeFormat  string        `env:"TODO_TIME_FORMAT" env-default:"Jan 2 15:04"`
	CmdTimeout  time.Duration `env:"TODO_CMD_TIMEOUT" env-default:"3s"`
	DevMode     bool          `env:"TODO_DEV_MODE"`
}

const (
	DefaultLogLevel   = "WARN"
	DefaultTimeFormat = "Jan 2 15:04"
	DefaultCmdTimeout = 3 * time.Second
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = path.Join(userHome, ".todo", "todo.db")
	DefaultLogPath     = path.Join(userHome, ".todo", "todo.log")
)

// DefaultConfFile is <user config dir>/todo/todo.conf.
func DefaultConfFile() string {
	cfgDir, _ := os.UserConfigDir()
	return path.Join(cfgDir, "todo", "todo.conf")
}

// LoadConfig reads confFile, creating it with defaults if it does not exist.
// Variables already set in the environment take precedence over the file.
func LoadConfig(confFile string) (Config, error) {
	if _, err := os.Stat(confFile); err != nil {
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, fmt.Errorf("failed creating default conf file: %w", err)
		}
	}
	if err := godotenv.Load(confFile); err != nil {
		return Config{}, fmt.Errorf("failed loading conf file %s: %w", confFile, err)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return Config{}, err
	}
	conf.DatabaseURL = coalesce(conf.DatabaseURL, DefaultDatabaseURL)
	conf.LogPath = coalesce(conf.LogPath, DefaultLogPath)
	conf.LogLevel = coalesce(conf.LogLevel, DefaultLogLevel)
	conf.TimeFormat = coalesce(conf.TimeFormat, DefaultTimeFormat)
	if conf.CmdTimeout <= 0 {
		conf.CmdTimeout = DefaultCmdTimeout
	}

	if conf.DevMode {
		conf.LogLevel = "DEBUG"
		conf.DatabaseURL = path.Join(os.TempDir(), "todo-dev.db")
		conf.LogPath = path.Join(path.Dir(DefaultLogPath), "dev.log")
		f, err := os.OpenFile(conf.DatabaseURL, os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return Config{}, err
		}
		_ = f.Close()
	}

	return conf, nil
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
		return err
	}
	lines := []string{
		"TODO_DB_URL=" + DefaultDatabaseURL,
		"TODO_LOG_LEVEL=" + DefaultLogLevel,
		"TODO_LOG_PATH=" + DefaultLogPath,
		`TODO_TIME_FORMAT="` + DefaultTimeFormat + `"`,
		"TODO_CMD_TIMEOUT=" + DefaultCmdTimeout.String(),
	}
	return os.WriteFile(confFile, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
