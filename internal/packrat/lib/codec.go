package lib

import (
	"github.com/packrat-data/packrat/internal/packrat/types"
)

// Codec translates between the in-memory Table representation and
// stored object bytes. Backends are swappable without touching the tree
// model, digesting, or manifest logic; this contract is the only
// coupling point.
type Codec interface {
	// Format returns the format tag this backend serves.
	Format() types.Format
	// SaveTable writes the serialized form of t to path (normally a
	// staged object path; the store publishes it afterwards).
	SaveTable(t *types.Table, path string) error
	// LoadTable reads a serialized table back from path.
	LoadTable(path string) (*types.Table, error)
}

// codecRegistry is the registration table mapping format tags to
// backends. Backends register themselves at init time.
var codecRegistry = make(map[types.Format]Codec)

// RegisterCodec makes a backend available for selection by its format
// tag. A later registration for the same tag replaces the earlier one.
func RegisterCodec(c Codec) {
	codecRegistry[c.Format()] = c
}

// LookupCodec resolves a format tag to its registered backend. An
// unknown tag is a hard configuration error surfaced at store
// construction, never lazily at first table access.
func LookupCodec(format types.Format) (Codec, error) {
	codec, ok := codecRegistry[format]
	if !ok {
		return nil, &MissingCodecError{Format: string(format)}
	}
	return codec, nil
}
