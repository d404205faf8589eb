// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package tabqllog builds the process-wide structured logger and mints
// per-query correlation ids. A nil *zap.Logger is always a valid value
// throughout this module: callers that don't want logging pass nil
// straight through, and every consumer checks for it before use.
package tabqllog

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New builds a production zap.Logger (JSON encoding, info level and
// above). It returns a nil logger alongside the error on failure so
// callers can fall back to running unlogged rather than aborting.
func New() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// QueryID mints a fresh correlation id for one query execution, used
// to tie together the handful of log lines a single run emits.
func QueryID() string {
	return uuid.NewString()
}

// WithQuery returns a child logger with the query's correlation id and
// source path attached to every subsequent line. It is nil-safe: if
// log is nil, WithQuery returns nil.
func WithQuery(log *zap.Logger, queryID, from string) *zap.Logger {
	if log == nil {
		return nil
	}
	return log.With(zap.String("query_id", queryID), zap.String("from", from))
}
