package router

import (
	"fmt"
	"sync"

	"boardingpass-service/internal/usecase"
	"boardingpass-service/pkg/logger"
)

// FormatRouter routes payloads to handlers based on their format code
type FormatRouter struct {
	mu       sync.RWMutex
	handlers []usecase.PayloadHandler
	logger   logger.Logger
}

// NewFormatRouter creates a new format router
func NewFormatRouter(logger logger.Logger) *FormatRouter {
	return &FormatRouter{
		handlers: make([]usecase.PayloadHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler. Earlier registrations win when several accept a format.
func (r *FormatRouter) Register(handler usecase.PayloadHandler) {
	r.mu.Lock()
	r.handlers = append(r.handlers, handler)
	r.mu.Unlock()
	r.logger.Info("Registered handler", "handler", fmt.Sprint(handler))
}

// GetHandler returns the appropriate handler for a given format code
func (r *FormatRouter) GetHandler(formatCode string) usecase.PayloadHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, handler := range r.handlers {
		if handler.CanHandle(formatCode) {
			return handler
		}
	}
	r.logger.Debug("No handler for format", "format_code", formatCode)
	return nil
}
