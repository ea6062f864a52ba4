/******************************************************************************
 *
 *  Description :
 *    Package exposes info, warning and error loggers.
 *
 *****************************************************************************/
package logs

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

// Loggers are usable before Init is called, e.g. from package init code and
// tests.
func init() {
	Init(os.Stdout, log.LstdFlags|log.Lshortfile)
}

func Init(out io.Writer, flags int) {
	Info = log.New(out, "I", flags)
	Warning = log.New(out, "W", flags)
	Error = log.New(out, "E", flags)
}
