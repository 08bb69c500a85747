// Package pipeline holds the gin middlewares every request passes through:
// ErrorBoundary, ResponseLogger and AuthGate, in that order.
package pipeline

import (
	"github.com/gin-gonic/gin"
)

const (
	boundaryKey   = "pipeline.boundary"
	completionKey = "pipeline.completion"
)

// OnComplete schedules fn to run once ErrorBoundary has settled the final response,
// including a 500 written for a fault. Hooks run last-registered first.
// It reports false when no ErrorBoundary is active; the caller then runs fn itself.
func OnComplete(c *gin.Context, fn func()) bool {
	if !c.GetBool(boundaryKey) {
		return false
	}
	hooks, _ := c.Get(completionKey)
	list, _ := hooks.([]func())
	c.Set(completionKey, append(list, fn))
	return true
}

func takeCompletionHooks(c *gin.Context) []func() {
	hooks, _ := c.Get(completionKey)
	list, _ := hooks.([]func())
	c.Set(completionKey, []func(){})
	return list
}
