package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
	"github.com/hoang-11jjk/RealEstatePro/internal/query"
	"github.com/hoang-11jjk/RealEstatePro/internal/store"
)

// IPropertyService defines the interface for listing-related operations.
type IPropertyService interface {
	List(ctx context.Context, f query.Filter, pg query.Page) (query.Result, error)
	ListAll(ctx context.Context, f query.Filter) ([]models.Property, error)
	Get(ctx context.Context, id int64) (models.Property, error)
	Create(ctx context.Context, in PropertyInput) (models.Property, error)
	Patch(ctx context.Context, id int64, fields map[string]any) (models.Property, error)
	SetVisibility(ctx context.Context, id int64, next models.Visibility) (models.Property, error)
	Delete(ctx context.Context, id int64) error
	StatsByLocation(ctx context.Context) ([]LocationCount, error)
}

// PropertyInput is the creation payload. Numeric fields are lenient: numbers,
// numeric strings, and garbage all coerce (garbage to 0). Pointer fields
// distinguish absent from zero for the required-field check.
type PropertyInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        *models.Flex `json:"price"`
	Location     string       `json:"location"`
	Type         string       `json:"type"`
	Status       string       `json:"status"`
	Beds         models.Flex  `json:"beds"`
	Baths        models.Flex  `json:"baths"`
	Area         models.Flex  `json:"area"`
	Image        string       `json:"image"`
	Tags         []string     `json:"tags"`
	ContactName  string       `json:"contactName"`
	ContactPhone string       `json:"contactPhone"`
	OwnerEmail   string       `json:"ownerEmail"`
	OwnerName    string       `json:"ownerName"`
	Visibility   string       `json:"visibility"`
}

// ValidationError reports creation payloads missing required fields.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// LocationCount is one row of the per-location moderation aggregate.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// propertyService implements IPropertyService.
type propertyService struct {
	store store.Store
}

// NewPropertyService creates a new PropertyService backed by the given store.
func NewPropertyService(st store.Store) IPropertyService {
	return &propertyService{store: st}
}

// List returns one page of matching listings plus the pre-pagination total.
// It always reads the store's latest snapshot; there is no caching layer.
func (s *propertyService) List(ctx context.Context, f query.Filter, pg query.Page) (query.Result, error) {
	matched := query.Apply(s.store.All(), f)
	return query.Paginate(matched, pg), nil
}

// ListAll returns the bare filtered array in store order. This is the legacy
// unwrapped response shape used when a request carries no filter or
// pagination parameters at all.
func (s *propertyService) ListAll(ctx context.Context, f query.Filter) ([]models.Property, error) {
	return query.Apply(s.store.All(), f), nil
}

func (s *propertyService) Get(ctx context.Context, id int64) (models.Property, error) {
	return s.store.Get(id)
}

// Create validates required fields, fills defaults and inserts the listing.
// Visibility defaults to pending but an explicit value in the payload wins;
// the intended moderation policy around that is ambiguous, so the observed
// behavior is preserved rather than tightened.
func (s *propertyService) Create(ctx context.Context, in PropertyInput) (models.Property, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return models.Property{}, &ValidationError{Missing: missing}
	}

	visibility := models.VisibilityPending
	if in.Visibility != "" {
		visibility = models.Visibility(in.Visibility)
		if !visibility.Valid() {
			return models.Property{}, fmt.Errorf("%w: %q", models.ErrInvalidVisibility, in.Visibility)
		}
	}

	// Display fields left blank get the portal's placeholder copy.
	image := in.Image
	if image == "" {
		image = models.DefaultImageURL
	}
	description := in.Description
	if description == "" {
		description = models.DefaultDescription
	}
	contactName := in.ContactName
	if contactName == "" {
		contactName = models.DefaultContactName
	}
	contactPhone := in.ContactPhone
	if contactPhone == "" {
		contactPhone = models.DefaultContactPhone
	}
	tags := in.Tags
	if len(tags) == 0 {
		tags = models.DefaultTags()
	}

	p := models.Property{
		Title:        in.Title,
		Description:  description,
		Price:        int64(*in.Price),
		Location:     in.Location,
		Type:         models.PropertyType(in.Type),
		Status:       models.MarketStatus(in.Status),
		Beds:         int(in.Beds),
		Baths:        int(in.Baths),
		Area:         float64(in.Area),
		Image:        image,
		Tags:         tags,
		ContactName:  contactName,
		ContactPhone: contactPhone,
		OwnerEmail:   in.OwnerEmail,
		OwnerName:    in.OwnerName,
		PostedAt:     time.Now().Format("2006-01-02"),
		Visibility:   visibility,
	}

	created, err := s.store.Insert(p)
	if err != nil {
		return models.Property{}, fmt.Errorf("failed to insert listing: %w", err)
	}
	return created, nil
}

// Patch merges partial fields into an existing listing (owner edit or
// moderation). Applying the same payload twice yields the same record.
func (s *propertyService) Patch(ctx context.Context, id int64, fields map[string]any) (models.Property, error) {
	return s.store.Patch(id, fields)
}

// SetVisibility moves a listing to the given moderation state. Any state is
// reachable from any other; the last action wins and there is no audit trail.
func (s *propertyService) SetVisibility(ctx context.Context, id int64, next models.Visibility) (models.Property, error) {
	if !next.Valid() {
		return models.Property{}, fmt.Errorf("%w: %q", models.ErrInvalidVisibility, string(next))
	}
	return s.store.Patch(id, map[string]any{"visibility": string(next)})
}

func (s *propertyService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(id)
}

// StatsByLocation counts approved listings grouped by exact location string,
// computed fresh from the store on each call. Rows are ordered by count
// descending, then location ascending, for deterministic output.
func (s *propertyService) StatsByLocation(ctx context.Context) ([]LocationCount, error) {
	counts := map[string]int{}
	for _, p := range s.store.All() {
		if p.Visibility == models.VisibilityApproved {
			counts[p.Location]++
		}
	}

	out := make([]LocationCount, 0, len(counts))
	for location, count := range counts {
		out = append(out, LocationCount{Location: location, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}
