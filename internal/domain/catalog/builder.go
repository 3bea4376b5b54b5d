package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/librarium/lending/internal/domain/shared"
)

// validate checks build payloads for required fields. Field values are
// taken as-is beyond presence; format checks are the caller's concern.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Builder constructs one catalog resource from a named-field payload
type Builder interface {
	Build() (Resource, error)
}

// PrintedBookSpec is the build payload for a printed book
type PrintedBookSpec struct {
	Title      string `validate:"required"`
	Author     string `validate:"required"`
	ISBN       string `validate:"required"`
	AcquiredAt time.Time
	Pages      int    `validate:"required"`
	Publisher  string `validate:"required"`
}

// PeriodicalSpec is the build payload for a periodical
type PeriodicalSpec struct {
	Title            string `validate:"required"`
	Author           string `validate:"required"`
	ISBN             string `validate:"required"`
	AcquiredAt       time.Time
	IssueNumber      int    `validate:"required"`
	PublicationMonth string `validate:"required"`
}

// DigitalItemSpec is the build payload for a digital item
type DigitalItemSpec struct {
	Title      string `validate:"required"`
	Author     string `validate:"required"`
	ISBN       string `validate:"required"`
	AcquiredAt time.Time
	Format     string  `validate:"required"`
	SizeMB     float64 `validate:"required"`
	AccessURL  string  `validate:"required"`
}

// PrintedBookBuilder builds printed books
type PrintedBookBuilder struct {
	Spec PrintedBookSpec
}

// Build validates the payload and constructs the resource
func (b PrintedBookBuilder) Build() (Resource, error) {
	if err := validateSpec(b.Spec); err != nil {
		return nil, err
	}
	return &PrintedBook{
		baseResource: newBaseResource(b.Spec.ISBN, b.Spec.Title, b.Spec.Author, acquiredAtOrNow(b.Spec.AcquiredAt)),
		pages:        b.Spec.Pages,
		publisher:    b.Spec.Publisher,
	}, nil
}

// PeriodicalBuilder builds periodicals
type PeriodicalBuilder struct {
	Spec PeriodicalSpec
}

// Build validates the payload and constructs the resource
func (b PeriodicalBuilder) Build() (Resource, error) {
	if err := validateSpec(b.Spec); err != nil {
		return nil, err
	}
	return &Periodical{
		baseResource:     newBaseResource(b.Spec.ISBN, b.Spec.Title, b.Spec.Author, acquiredAtOrNow(b.Spec.AcquiredAt)),
		issueNumber:      b.Spec.IssueNumber,
		publicationMonth: b.Spec.PublicationMonth,
	}, nil
}

// DigitalItemBuilder builds digital items
type DigitalItemBuilder struct {
	Spec DigitalItemSpec
}

// Build validates the payload and constructs the resource
func (b DigitalItemBuilder) Build() (Resource, error) {
	if err := validateSpec(b.Spec); err != nil {
		return nil, err
	}
	return &DigitalItem{
		baseResource: newBaseResource(b.Spec.ISBN, b.Spec.Title, b.Spec.Author, acquiredAtOrNow(b.Spec.AcquiredAt)),
		format:       b.Spec.Format,
		sizeMB:       b.Spec.SizeMB,
		accessURL:    b.Spec.AccessURL,
	}, nil
}

// RegisterAndBuild builds a resource through the given builder and
// publishes a creation event. The event is observability only; a
// publish failure never aborts the registration.
func RegisterAndBuild(ctx context.Context, pub shared.EventPublisher, b Builder) (Resource, error) {
	resource, err := b.Build()
	if err != nil {
		return nil, err
	}
	if pub != nil {
		_ = pub.Publish(ctx, NewResourceRegisteredEvent(resource))
	}
	return resource, nil
}

func acquiredAtOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func validateSpec(spec any) error {
	err := validate.Struct(spec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return shared.NewDomainError("MISSING_FIELD", fmt.Sprintf("%s is required", verrs[0].Field()))
	}
	return shared.ErrInvalidInput
}
