/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package canvas

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// PanicError is a panic recovered while building or rendering a chart.
type PanicError struct {
	Op    string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Op, e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Guard runs fn as the chart operation op.  A failure, returned or
// panicked, is logged to logger and returned; it never propagates as a
// panic.
func Guard(logger *slog.Logger, op string, fn func() error) (err error) {
	if logger == nil {
		logger = slog.Default()
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Op: op, Value: r, Stack: debug.Stack()}
		}
		if err != nil {
			logger.Error("chart failed", slog.String("op", op), slog.Any("error", err))
		}
	}()
	return fn()
}

// Logger returns logger, or the default logger tagged with the chart
// module.
func Logger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default().With(slog.String("module", "chart"))
}

// Draw builds a canvas with build and renders it to sink, all under
// Guard.  A nil sink builds the canvas without rendering it.
func Draw(logger *slog.Logger, op string, sink Sink, build func() (*Canvas, error)) (*Canvas, error) {
	logger = Logger(logger)
	var c *Canvas
	err := Guard(logger, op, func() error {
		var err error
		if c, err = build(); err != nil {
			return err
		}
		if sink == nil {
			return nil
		}
		return c.Render(sink)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("drew chart", slog.String("op", op), slog.Int("glyphs", len(c.glyphs)))
	return c, nil
}
