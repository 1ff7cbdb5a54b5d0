package logging

import (
	"log"
	"os"
)

// InitLogging sends the standard logger to stdout with microsecond timestamps
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
