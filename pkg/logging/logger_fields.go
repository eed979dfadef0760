package logging

import (
	"strings"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers
func Component(name string) Field {
	return String("component", name)
}

func Session(id string) Field {
	return String("session", id)
}

func Command(name string) Field {
	return String("command", name)
}

func Args(args []string) Field {
	return String("args", strings.Join(args, " "))
}

func Depth(depth int) Field {
	return Int("depth", depth)
}

func Status(status string) Field {
	return String("status", status)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
