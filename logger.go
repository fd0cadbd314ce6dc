package todo

// Logger is satisfied by *log.Logger from charmbracelet/log. Arguments after
// the message are key-value pairs.
type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
	Fatal(interface{}, ...interface{})
}
