package kasane

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yacchi/kasane/internal/maputil"
)

// WriteOption is a functional option for configuring Write.
type WriteOption func(*writeOptions)

// writeOptions holds the options for Write.
type writeOptions struct {
	target Location
}

// WithTarget writes to loc instead of the default location. loc does not have
// to be one of the store's locations, but the file must exist.
func WithTarget(loc Location) WriteOption {
	return func(o *writeOptions) {
		o.target = loc
	}
}

// Write sets key to value in the target file and updates the merged view.
//
// The target is the WithTarget location if given, else the default location.
// With neither, Write returns a ConfigurationError wrapping ErrNoTarget and
// touches no file.
//
// The target's current content is read fresh from disk, so only key changes
// in the file; every other key keeps its value (and, for YAML, its position
// and comments). The target must already exist.
//
// After the file has been written the merged view is updated to what a
// Reload would produce: every registered location naming the same file as
// the target (compared after filepath.Clean, so "./a.yml" matches "a.yml")
// gets the new value for key, and key is resolved again by priority. A
// higher-priority location defining the same key therefore keeps winning,
// and a target matching no registered location does not affect the merged
// view at all. Paths reaching the same file through symlinks are not
// matched. If Write fails the merged view is left unchanged.
//
// Example:
//
//	err := store.Write(ctx, "theme", "dark")
//	err = store.Write(ctx, "theme", "dark", kasane.WithTarget("team.yml"))
func (s *Store) Write(ctx context.Context, key string, value any, opts ...WriteOption) error {
	var options writeOptions
	for _, opt := range opts {
		opt(&options)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := options.target
	if target == "" {
		target = s.defaultLocation
	}
	if target == "" {
		return &ConfigurationError{Op: "write", Err: ErrNoTarget}
	}

	value = maputil.CloneValue(value)

	entry := s.findLayerLocked(target)
	if entry == nil {
		entry = &layerEntry{location: target, source: s.newSource(target)}
	}

	if err := entry.save(ctx, s.codec, key, value); err != nil {
		s.log.WithFields(logrus.Fields{
			"location": target,
			"key":      key,
			"error":    err,
		}).Debug("failed to write key")
		return err
	}

	registered := false
	for _, layer := range s.layers {
		if !sameFile(layer.location, target) {
			continue
		}
		if layer.data == nil {
			layer.data = make(map[string]any)
		}
		layer.data[key] = value
		registered = true
	}
	if registered {
		s.resolveKeyLocked(key)
	}

	s.log.WithFields(logrus.Fields{
		"location":   target,
		"key":        key,
		"registered": registered,
	}).Debug("wrote key")
	return nil
}
