package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	t.Run("returns handlers registered for type", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{types: []string{"A"}}
		registry.Register(handler, "A")

		assert.Len(t, registry.GetHandlers("A"), 1)
		assert.Empty(t, registry.GetHandlers("B"))
	})

	t.Run("registers one handler for multiple types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{types: []string{"A", "B"}}
		registry.Register(handler, "A", "B")

		assert.Len(t, registry.GetHandlers("A"), 1)
		assert.Len(t, registry.GetHandlers("B"), 1)
	})

	t.Run("wildcard handler matches every type", func(t *testing.T) {
		registry := NewHandlerRegistry()
		registry.Register(&recordingHandler{})

		assert.Len(t, registry.GetHandlers("Anything"), 1)
		assert.Len(t, registry.GetHandlers("Else"), 1)
	})

	t.Run("combines typed and wildcard handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		registry.Register(&recordingHandler{types: []string{"A"}}, "A")
		registry.Register(&recordingHandler{})

		assert.Len(t, registry.GetHandlers("A"), 2)
		assert.Len(t, registry.GetHandlers("B"), 1)
	})

	t.Run("unregister removes handler everywhere", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := &recordingHandler{types: []string{"A", "B"}}
		wild := &recordingHandler{}
		registry.Register(typed, "A", "B")
		registry.Register(wild)

		registry.Unregister(typed)
		registry.Unregister(wild)

		assert.Empty(t, registry.GetHandlers("A"))
		assert.Empty(t, registry.GetHandlers("B"))
	})

	t.Run("unregister of unknown handler is a no-op", func(t *testing.T) {
		registry := NewHandlerRegistry()
		registry.Register(&recordingHandler{types: []string{"A"}}, "A")

		registry.Unregister(&recordingHandler{})

		assert.Len(t, registry.GetHandlers("A"), 1)
	})
}
