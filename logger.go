package kafka

import (
	"io"
	"log"
)

// StdLogger is the minimal interface the package needs to write diagnostic
// output. *log.Logger satisfies it directly.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Logger is the instance used by this package to log informational messages
// about topology refreshes, dispatch attempts and retries. By default
// messages are discarded; set this to a real logger (e.g. log.New(os.Stderr,
// "[kafka] ", log.LstdFlags)) to see them.
var Logger StdLogger = log.New(io.Discard, "", 0)
