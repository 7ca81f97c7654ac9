package scene

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Kind tags the slot an element lives in.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "none"
	}
}

// ParseKind accepts "text" or "image".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "image", "img":
		return KindImage, nil
	}
	return KindNone, fmt.Errorf("unknown element kind %q", s)
}

// Handle identifies a placeable element. Hosts resolve handles by Kind: an
// interaction aimed at a replaced element lands on whatever element now
// occupies that kind's slot.
type Handle struct {
	Kind Kind
	ID   string
}

func (h Handle) String() string { return h.ID }

func newHandle(k Kind) Handle {
	return Handle{Kind: k, ID: typeid.MustGenerate(k.String()).String()}
}

// ValidateHandle checks that h carries a well-formed ID for its kind.
func ValidateHandle(h Handle) error {
	parsed, err := typeid.Parse(h.ID)
	if err != nil {
		return fmt.Errorf("invalid handle %q: %w", h.ID, err)
	}
	if parsed.Prefix() != h.Kind.String() {
		return fmt.Errorf("expected prefix %q but got %q in handle %q", h.Kind, parsed.Prefix(), h.ID)
	}
	return nil
}
