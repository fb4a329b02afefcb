/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

const modulePrefix = "github.com/botobag/relgraph/"

// CallerHook adds the caller location to entries logged at the hooked levels.
type CallerHook struct {
	levels []logrus.Level
}

// NewCallerHook creates a CallerHook that fires on the given levels.
func NewCallerHook(levels []logrus.Level) *CallerHook {
	return &CallerHook{
		levels: levels,
	}
}

// StandardCallerHook fires on Panic, Fatal and Error levels.
func StandardCallerHook() *CallerHook {
	return NewCallerHook([]logrus.Level{PanicLevel, FatalLevel, ErrorLevel})
}

// Levels implements logrus.Hook.
func (hook *CallerHook) Levels() []logrus.Level {
	return hook.levels
}

// Fire implements logrus.Hook.
func (hook *CallerHook) Fire(entry *logrus.Entry) error {
	if caller := findCaller(); len(caller) > 0 {
		entry.Data["caller"] = caller
	}
	return nil
}

// findCaller returns the first frame outside logrus and this package.
func findCaller() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.Contains(f.Function, "github.com/sirupsen/logrus") &&
			!strings.HasPrefix(f.Function, modulePrefix+"internal/log.") {
			return fmt.Sprintf("%s:%d %s", filepath.Base(f.File), f.Line,
				strings.TrimPrefix(f.Function, modulePrefix))
		}
		if !more {
			return ""
		}
	}
}
