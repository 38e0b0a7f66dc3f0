// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package logger configures the structured logger of the colmod CLI.
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger that writes to w. Debug enables the debug level,
// and jsonOutput switches from the human-readable console encoding to JSON.
func New(w io.Writer, debug, jsonOutput bool) *zap.Logger {
	var (
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
		ec    = zap.NewProductionEncoderConfig()
	)
	if debug {
		level.SetLevel(zap.DebugLevel)
		ec = zap.NewDevelopmentEncoderConfig()
	}
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.TimeKey = "timestamp"
	ec.MessageKey = "msg"
	enc := zapcore.NewConsoleEncoder(ec)
	if jsonOutput {
		ec.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(ec)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Named("colmod")
}
