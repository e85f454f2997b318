package utils

import (
	"context"
	"log"
	"runtime/debug"

	"golang-trading-insight/pkg/logger"
)

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// GoSafe runs fn in a goroutine and recovers from panics so a single
// misbehaving task cannot bring the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[GoSafe] recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Debug("Context done signal received", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// Chunk splits items into consecutive groups of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	var chunks [][]T
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
