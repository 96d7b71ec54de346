package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PropertyType is the kind of real estate a listing advertises.
type PropertyType string

const (
	TypeApartment PropertyType = "Apartment"
	TypeTownhouse PropertyType = "Townhouse"
	TypeVilla     PropertyType = "Villa"
	TypeLand      PropertyType = "Land"
)

// MarketStatus is the market side of a listing (sale vs rental), independent
// of its moderation state.
type MarketStatus string

const (
	StatusForSale MarketStatus = "ForSale"
	StatusForRent MarketStatus = "ForRent"
)

// Visibility is the moderation state of a listing.
type Visibility string

const (
	VisibilityPending  Visibility = "pending"
	VisibilityApproved Visibility = "approved"
	VisibilityHidden   Visibility = "hidden"
)

// ErrInvalidVisibility is returned when a mutation carries a visibility value
// outside the known enumeration.
var ErrInvalidVisibility = errors.New("invalid visibility value")

// Valid reports whether v is one of the known moderation states.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPending, VisibilityApproved, VisibilityHidden:
		return true
	}
	return false
}

// Creation defaults fill the display fields an owner left blank. The portal
// copy is Vietnamese; the placeholders match what the frontend expects to
// show for a bare owner-submitted listing.
const (
	DefaultImageURL     = "https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=1200&q=80&sat=-30"
	DefaultDescription  = "Tin đăng do bạn tạo. Vui lòng cập nhật mô tả chi tiết để thu hút khách hàng."
	DefaultContactName  = "Chủ nhà"
	DefaultContactPhone = "Đang cập nhật"
)

// DefaultTags marks a fresh owner-submitted listing. Callers must not mutate
// the returned slice's backing array, so a fresh copy is handed out each time.
func DefaultTags() []string {
	return []string{"Tin mới", "Chủ nhà đăng"}
}

// Property represents a single real-estate advertisement record.
type Property struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"` // whole VND
	Location     string       `json:"location"`
	Type         PropertyType `json:"type"`
	Status       MarketStatus `json:"status"`
	Beds         int          `json:"beds"`
	Baths        int          `json:"baths"`
	Area         float64      `json:"area"`
	Image        string       `json:"image"`
	Tags         []string     `json:"tags"`
	ContactName  string       `json:"contactName"`
	ContactPhone string       `json:"contactPhone"`
	OwnerEmail   string       `json:"ownerEmail,omitempty"`
	OwnerName    string       `json:"ownerName,omitempty"`
	PostedAt     string       `json:"postedAt"` // display-only creation marker
	Visibility   Visibility   `json:"visibility"`
}

// Flex is a lenient number for ingestion: it accepts JSON numbers and numeric
// strings, and degrades anything else (including negatives) to 0 instead of
// failing. The creation form relies on empty numeric fields being accepted.
type Flex float64

// UnmarshalJSON never returns an error for malformed numeric input.
func (f *Flex) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = Flex(CoerceNumber(v))
	return nil
}

// CoerceNumber converts an arbitrary decoded JSON value to a non-negative
// number. Non-numeric input degrades to 0, never to an error.
func CoerceNumber(v any) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case json.Number:
		n, _ = val.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// Apply merges partial fields into the property. The id is immutable and
// silently skipped; unknown fields are ignored. Numeric fields go through the
// same lenient coercion as creation. An invalid visibility value is the one
// thing rejected at this boundary.
func (p *Property) Apply(fields map[string]any) error {
	for key, value := range fields {
		switch key {
		case "id":
			// immutable
		case "title":
			p.Title = toString(value)
		case "description":
			p.Description = toString(value)
		case "price":
			p.Price = int64(CoerceNumber(value))
		case "location":
			p.Location = toString(value)
		case "type":
			p.Type = PropertyType(toString(value))
		case "status":
			p.Status = MarketStatus(toString(value))
		case "beds":
			p.Beds = int(CoerceNumber(value))
		case "baths":
			p.Baths = int(CoerceNumber(value))
		case "area":
			p.Area = CoerceNumber(value)
		case "image":
			p.Image = toString(value)
		case "tags":
			p.Tags = toStringSlice(value)
		case "contactName":
			p.ContactName = toString(value)
		case "contactPhone":
			p.ContactPhone = toString(value)
		case "ownerEmail":
			p.OwnerEmail = toString(value)
		case "ownerName":
			p.OwnerName = toString(value)
		case "postedAt":
			p.PostedAt = toString(value)
		case "visibility":
			next := Visibility(toString(value))
			if !next.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidVisibility, toString(value))
			}
			p.Visibility = next
		}
	}
	return nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
