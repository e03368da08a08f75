// Package logger provides a zap-based application logger.
package logger

import "go.uber.org/zap"

// New returns a sugared production logger. Panics when zap cannot
// initialize, which only happens with a broken config.
func New() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// NewDevelopment returns a human-readable logger for interactive use.
func NewDevelopment() *zap.SugaredLogger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}
