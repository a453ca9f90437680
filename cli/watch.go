package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watch runs Process once immediately, then again every time path's contents
// change, until the caller's process is killed. It returns nil only if the
// watcher's event or error channel is closed; a watcher setup failure is
// reported as an error and the loop is not entered.
func Watch(out, errOut io.Writer, prog, path string, opts Options) error {
	runOnce := func() {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(errOut, "%s: %s: %s\n", prog, path, err)
			return
		}
		Process(out, errOut, prog, path, string(source), opts)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	runOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				runOnce()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "%s: watch error: %s\n", prog, watchErr)
		}
	}
}
