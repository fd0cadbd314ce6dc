package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/benjamonnguyen/todo/sqlite"
	tea "github.com/charmbracelet/bubbletea"
)

const memoryDatabaseURL = ":memory:"

var logger todo.Logger

func main() {
	// conf
	conf, err := todo.LoadConfig(todo.DefaultConfFile())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := os.MkdirAll(path.Dir(conf.LogPath), 0o744); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger = charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
		Prefix: "todo",
	})
	logger.Info("loaded config", "config", conf)

	// db
	if conf.DatabaseURL != memoryDatabaseURL {
		if err := os.MkdirAll(path.Dir(conf.DatabaseURL), 0o744); err != nil {
			panic(err)
		}
	}
	db, err := sqlite.Open(conf.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed database open", "error", err)
		fmt.Println(err)
		os.Exit(1)
	}
	if err := db.Migrate(sqlite.Migrations); err != nil {
		logger.Error("failed migration", "error", err)
		fmt.Println(err)
		_ = db.Close()
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	// repos
	taskRepo := sqlite.NewTaskRepo(db.Conn(), logger)

	// svcs
	taskSvc := NewTaskSvc(taskRepo)

	// handle initial args
	timeout, cancel := context.WithTimeout(context.Background(), conf.CmdTimeout)
	opts, err := parseProgramArgs(timeout, os.Args[1:], taskSvc)
	cancel()
	if err != nil {
		fmt.Println(err)
		_ = db.Close()
		os.Exit(1)
	}
	if opts.showHelp {
		fmt.Println(colorize(colorYellow, programUsage))
		return
	}
	if opts.shouldExit {
		return
	}

	// start program
	fmt.Println(colorize(colorYellow, logo))
	fmt.Printf("\nEnter \"/h\" for help\n\n")

	m := newModel(taskSvc, logger, conf)
	m.userinput.SetValue(opts.draft)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}

type options struct {
	draft      string
	showHelp   bool
	shouldExit bool
}

func parseProgramArgs(ctx context.Context, args []string, taskSvc TaskSvc) (options, error) {
	var opts options

	if len(args) == 0 {
		return opts, nil
	}

	var cmd, arg string
	if strings.HasPrefix(args[0], "/") {
		cmd = args[0]
		if len(args) > 1 {
			arg = strings.Join(args[1:], " ")
		}
	} else {
		arg = strings.Join(args, " ")
	}

	if logger != nil {
		logger.Debug("parsed program args", "cmd", cmd, "arg", arg)
	}
	switch cmd {
	case "":
		opts.draft = arg
		return opts, nil
	case "/a":
		id, err := taskSvc.AddTask(ctx, arg)
		if err != nil {
			return options{}, fmt.Errorf("failed to add task: %w", err)
		}
		fmt.Printf(`Added "%s" (#%d)`+"\n", strings.TrimSpace(arg), id)
		opts.shouldExit = true
		return opts, nil
	default:
		opts.showHelp = true
		return opts, nil
	}
}
