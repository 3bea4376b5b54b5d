package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/librarium/lending/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeResource = "Resource"

// Event type constants
const (
	EventTypeResourceRegistered = "ResourceRegistered"
)

// ResourceRegisteredEvent is published when a builder registers a new resource
type ResourceRegisteredEvent struct {
	shared.BaseDomainEvent
	ResourceID uuid.UUID    `json:"resource_id"`
	ISBN       string       `json:"isbn"`
	Title      string       `json:"title"`
	Kind       ResourceKind `json:"kind"`
	AcquiredAt time.Time    `json:"acquired_at"`
}

// NewResourceRegisteredEvent creates a new ResourceRegisteredEvent
func NewResourceRegisteredEvent(resource Resource) *ResourceRegisteredEvent {
	return &ResourceRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResourceRegistered, AggregateTypeResource, resource.GetID()),
		ResourceID:      resource.GetID(),
		ISBN:            resource.ISBN(),
		Title:           resource.Title(),
		Kind:            resource.Kind(),
		AcquiredAt:      resource.AcquiredAt(),
	}
}
