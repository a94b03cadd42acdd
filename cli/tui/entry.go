package tui

import (
	"fmt"
	"time"

	"github.com/mwantia/codeconsole/log"
)

// TimestampFormat matches the [hh:mm:ss] stamp of console lines
const TimestampFormat = "15:04:05"

// EntryKind tells how a transcript line is styled
type EntryKind int

const (
	EntryInput EntryKind = iota
	EntryOutput
	EntryError
	EntryLog
)

// Entry represents one line of the console transcript
type Entry struct {
	Time  time.Time
	Kind  EntryKind
	Text  string
	Level log.Level
	Name  string
}

// DisplayTime returns the stamp shown in front of the line
func (e *Entry) DisplayTime() string {
	return fmt.Sprintf("[%s]: ", e.Time.Format(TimestampFormat))
}

// DisplayText returns the line without timestamp
func (e *Entry) DisplayText() string {
	if e.Kind != EntryLog {
		return e.Text
	}
	if e.Name == "" {
		return fmt.Sprintf("%-5s %s", e.Level, e.Text)
	}
	return fmt.Sprintf("%-5s [%s] %s", e.Level, e.Name, e.Text)
}

func logEntry(le log.Entry) Entry {
	return Entry{
		Time:  le.Time,
		Kind:  EntryLog,
		Text:  le.Message,
		Level: le.Level,
		Name:  le.Name,
	}
}
