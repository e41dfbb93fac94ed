// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

const watchDebounce = 100 * time.Millisecond

// watch reprocesses the inputs every time one of them changes. Directories
// are watched rather than files so that editors replacing files via rename
// keep triggering events. Every file pulled in via !include joins the
// watch set after each run.
func (o *Options) watch(ui cmdui.UI) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Creating watcher: %s", err)
	}
	defer watcher.Close()

	relevant := map[string]struct{}{}
	watchedDirs := map[string]struct{}{}
	track := func(abs string) {
		relevant[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, found := watchedDirs[dir]; found {
			return
		}
		watchedDirs[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			ui.Warnf("Watching '%s': %s\n", dir, err)
		}
	}

	for _, path := range o.Files {
		if path == "-" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		track(abs)
	}
	if len(watchedDirs) == 0 {
		return fmt.Errorf("Expected at least one non-stdin input to watch")
	}

	rerun := func() {
		if err := o.processOnce(ui, os.Stdout, track); err != nil {
			ui.Warnf("Error: %s\n", err)
		}
	}
	rerun()

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, found := relevant[abs]; !found {
				continue
			}
			ui.Debugf("change detected: %s\n", event.Name)
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ui.Warnf("Watch error: %s\n", err)

		case <-pending:
			pending = nil
			rerun()
		}
	}
}
