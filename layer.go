package kasane

import (
	"context"

	"github.com/yacchi/kasane/document"
	"github.com/yacchi/kasane/source"
)

// SourceFactory creates the source used to read and write a location.
type SourceFactory func(loc Location) source.Source

// layerEntry is one location in the load order together with the mapping
// decoded from it by the last Reload.
type layerEntry struct {
	location Location
	source   source.Source

	// data is nil until the location has been loaded successfully.
	data map[string]any
}

// load reads and decodes the location.
func (e *layerEntry) load(ctx context.Context, codec document.Codec) (map[string]any, error) {
	raw, err := e.source.Load(ctx)
	if err != nil {
		return nil, ioError("read", e.location, err)
	}

	data, err := codec.Decode(raw)
	if err != nil {
		return nil, &DecodeError{Location: e.location, Err: err}
	}
	return data, nil
}

// save replaces key in the location's on-disk document with value. The
// current content is read and validated fresh; every other key is kept.
func (e *layerEntry) save(ctx context.Context, codec document.Codec, key string, value any) error {
	err := e.source.Save(ctx, func(current []byte) ([]byte, error) {
		doc, err := codec.Decode(current)
		if err != nil {
			return nil, &DecodeError{Location: e.location, Err: err}
		}

		var out []byte
		if p, ok := codec.(document.Patcher); ok {
			out, err = p.Patch(current, key, value)
		} else {
			doc[key] = value
			out, err = codec.Encode(doc)
		}
		if err != nil {
			return nil, &EncodeError{Location: e.location, Key: key, Err: err}
		}
		return out, nil
	})
	if err != nil {
		return ioError("write", e.location, err)
	}
	return nil
}
