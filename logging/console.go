package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

var consoleTimestamp = color.New(color.FgCyan)

// ConsoleLogger writes timestamped log lines to a writer, with the timestamp
// highlighted when the writer is a terminal.
type ConsoleLogger struct {
	// Dest is where output goes. If nil, os.Stderr is used.
	Dest io.Writer

	// Prefix, if non-empty, is inserted between the timestamp and the message.
	Prefix string

	lock sync.Mutex
}

func (l *ConsoleLogger) Printf(message string, args ...interface{}) {
	dest := l.Dest
	if dest == nil {
		dest = os.Stderr
	}
	line := fmt.Sprintf(message, args...)
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.Prefix != "" {
		fmt.Fprintf(dest, "%s %s %s\n", consoleTimestamp.Sprintf("[%s]", time.Now().Format(timestampFormat)), l.Prefix, line)
	} else {
		fmt.Fprintf(dest, "%s %s\n", consoleTimestamp.Sprintf("[%s]", time.Now().Format(timestampFormat)), line)
	}
}
