package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/lending/internal/domain/shared"
)

func TestInventory(t *testing.T) {
	t.Run("finds resource by isbn", func(t *testing.T) {
		inv := NewInventory()
		book := newTestBook(t)
		inv.Add(book)

		found, err := inv.FindByISBN(book.ISBN())
		require.NoError(t, err)
		assert.Same(t, book, found)
	})

	t.Run("returns not found sentinel on miss", func(t *testing.T) {
		inv := NewInventory()
		_, err := inv.FindByISBN("missing")
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list is a snapshot copy", func(t *testing.T) {
		inv := NewInventory()
		inv.Add(newTestBook(t))

		list := inv.List()
		require.Len(t, list, 1)
		list[0] = nil

		assert.NotNil(t, inv.List()[0])
		assert.Equal(t, 1, inv.Count())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		inv := NewInventory()
		first := newTestBook(t)
		second, err := PeriodicalBuilder{Spec: PeriodicalSpec{
			Title:            "Nature",
			Author:           "Springer",
			ISBN:             "0028-0836",
			IssueNumber:      7985,
			PublicationMonth: "March",
		}}.Build()
		require.NoError(t, err)

		inv.Add(first)
		inv.Add(second)

		list := inv.List()
		require.Len(t, list, 2)
		assert.Same(t, first, list[0])
		assert.Same(t, second, list[1])
	})
}
