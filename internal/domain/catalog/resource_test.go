package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T) Resource {
	t.Helper()
	book, err := PrintedBookBuilder{Spec: PrintedBookSpec{
		Title:     "Design Patterns",
		Author:    "Gamma et al.",
		ISBN:      "978-0201633610",
		Pages:     395,
		Publisher: "Addison-Wesley",
	}}.Build()
	require.NoError(t, err)
	return book
}

func TestResourceVariants(t *testing.T) {
	t.Run("printed book has 14 day base duration", func(t *testing.T) {
		book := newTestBook(t)
		assert.Equal(t, 14, book.BaseLoanDurationDays())
		assert.Equal(t, KindPrintedBook, book.Kind())
		assert.Equal(t, "Printed Book", book.KindLabel())
	})

	t.Run("periodical has 7 day base duration", func(t *testing.T) {
		mag, err := PeriodicalBuilder{Spec: PeriodicalSpec{
			Title:            "National Geographic",
			Author:           "NatGeo Society",
			ISBN:             "0027-9358",
			IssueNumber:      245,
			PublicationMonth: "June",
		}}.Build()
		require.NoError(t, err)
		assert.Equal(t, 7, mag.BaseLoanDurationDays())
		assert.Equal(t, KindPeriodical, mag.Kind())
	})

	t.Run("digital item has 30 day base duration", func(t *testing.T) {
		item, err := DigitalItemBuilder{Spec: DigitalItemSpec{
			Title:     "Go in Action",
			Author:    "Kennedy",
			ISBN:      "978-1617291784",
			Format:    "EPUB",
			SizeMB:    4.2,
			AccessURL: "https://library.example/go-in-action",
		}}.Build()
		require.NoError(t, err)
		assert.Equal(t, 30, item.BaseLoanDurationDays())
		assert.Equal(t, KindDigitalItem, item.Kind())
	})

	t.Run("new resources start available", func(t *testing.T) {
		book := newTestBook(t)
		assert.True(t, book.Available())

		book.ChangeAvailability(false)
		assert.False(t, book.Available())

		book.ChangeAvailability(true)
		assert.True(t, book.Available())
	})

	t.Run("age in whole days since acquisition", func(t *testing.T) {
		acquired := time.Now().AddDate(0, 0, -10)
		book, err := PrintedBookBuilder{Spec: PrintedBookSpec{
			Title:      "Old Book",
			Author:     "Author",
			ISBN:       "000-1",
			AcquiredAt: acquired,
			Pages:      100,
			Publisher:  "Press",
		}}.Build()
		require.NoError(t, err)
		assert.Equal(t, 10, book.AgeDays(acquired.AddDate(0, 0, 10)))
	})

	t.Run("age never negative for future acquisition dates", func(t *testing.T) {
		book := newTestBook(t)
		assert.Equal(t, 0, book.AgeDays(book.AcquiredAt().Add(-time.Hour)))
	})

	t.Run("string includes kind label and title", func(t *testing.T) {
		book := newTestBook(t)
		assert.Equal(t, "Printed Book: Design Patterns by Gamma et al.", book.String())
	})
}

func TestResourceKind(t *testing.T) {
	assert.True(t, KindPrintedBook.IsValid())
	assert.True(t, KindPeriodical.IsValid())
	assert.True(t, KindDigitalItem.IsValid())
	assert.False(t, ResourceKind("vinyl").IsValid())
}
