package catalog

import (
	"github.com/librarium/lending/internal/domain/shared"
)

// Inventory is the ordered collection of catalog resources. It owns the
// catalog lifecycle; loans hold non-owning back-references into it.
type Inventory struct {
	resources []Resource
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{
		resources: make([]Resource, 0),
	}
}

// Add appends a resource to the inventory
func (inv *Inventory) Add(resource Resource) {
	inv.resources = append(inv.resources, resource)
}

// List returns a snapshot copy of the inventory in insertion order.
// Callers cannot mutate the internal storage through it.
func (inv *Inventory) List() []Resource {
	snapshot := make([]Resource, len(inv.resources))
	copy(snapshot, inv.resources)
	return snapshot
}

// FindByISBN returns the resource with the given ISBN, or
// shared.ErrNotFound when no resource matches.
func (inv *Inventory) FindByISBN(isbn string) (Resource, error) {
	for _, resource := range inv.resources {
		if resource.ISBN() == isbn {
			return resource, nil
		}
	}
	return nil, shared.ErrNotFound
}

// Count returns the number of resources in the inventory
func (inv *Inventory) Count() int {
	return len(inv.resources)
}
