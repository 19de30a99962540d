package diag

import (
	"log/slog"
	"os"
)

var exit = os.Exit

// Fatal reports err to the user with a blocking alert titled caption, logs
// it and exits the process with status 1.
func Fatal(log *slog.Logger, caption string, err error) {
	log.Error(caption, "err", err)
	alert(caption, err.Error())
	exit(1)
}
