// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display as a
// notice.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// Sender receives messages for the running program. *tea.Program
// implements it.
type Sender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that turns records into notices
// inside a running browser. Writing to stderr would corrupt the
// alt-screen display, so background goroutines (the catalogue
// watcher, exporters) log through this handler instead.
//
// Records arriving before SetProgram are dropped. Handlers derived via
// WithAttrs/WithGroup share the root's program, so one SetProgram call
// covers all of them.
type TUILogHandler struct {
	level  slog.Level
	sender *atomic.Pointer[Sender]
	attrs  []slog.Attr
	prefix string
}

// NewTUILogHandler creates a handler that delivers records at or above
// level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:  level,
		sender: &atomic.Pointer[Sender]{},
	}
}

// SetProgram sets the program that receives notices. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetProgram(sender Sender) {
	handler.sender.Store(&sender)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as "message (key=value, ...)" and sends it.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.sender.Load()
	if sender == nil {
		return nil
	}

	parts := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, handler.prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	(*sender).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs implements slog.Handler.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	derived.attrs = append(derived.attrs, handler.attrs...)
	for _, attr := range attrs {
		attr.Key = handler.prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return &derived
}

// WithGroup implements slog.Handler. Group names prefix later keys.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.prefix = handler.prefix + name + "."
	return &derived
}
