package kasane

import (
	"context"
	"io"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yacchi/kasane/document"
	"github.com/yacchi/kasane/format/yaml"
	"github.com/yacchi/kasane/internal/maputil"
	"github.com/yacchi/kasane/source"
	"github.com/yacchi/kasane/source/fs"
)

// StoreOption is a functional option for configuring Store creation.
type StoreOption func(*storeOptions)

// storeOptions holds the options for New.
type storeOptions struct {
	locations       []Location
	defaultLocation Location
	codec           document.Codec
	newSource       SourceFactory
	logger          logrus.FieldLogger
}

// WithLocations registers locations to load. May be given more than once.
func WithLocations(locs ...Location) StoreOption {
	return func(o *storeOptions) {
		o.locations = append(o.locations, locs...)
	}
}

// WithDefaultLocation sets the location that is loaded last, and so always
// wins, and that Write uses when no target is given. It does not need to be
// listed in WithLocations.
func WithDefaultLocation(loc Location) StoreOption {
	return func(o *storeOptions) {
		o.defaultLocation = loc
	}
}

// WithCodec sets the document codec. The default is YAML.
func WithCodec(codec document.Codec) StoreOption {
	return func(o *storeOptions) {
		o.codec = codec
	}
}

// WithSourceFactory sets how locations are read and written.
// The default opens them on the local file system.
func WithSourceFactory(f SourceFactory) StoreOption {
	return func(o *storeOptions) {
		o.newSource = f
	}
}

// WithLogger sets the logger used for debug output. The default discards it.
func WithLogger(l logrus.FieldLogger) StoreOption {
	return func(o *storeOptions) {
		o.logger = l
	}
}

func fileSource(loc Location) source.Source {
	return fs.New(string(loc))
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Store merges settings files into a single mapping and writes single keys
// back to them.
//
// Values handed out by Get, Lookup, Resolve and All are copies; changing them
// does not affect the store.
type Store struct {
	// layers holds the locations in load order.
	layers []*layerEntry

	// defaultLocation is loaded last and is the implicit Write target.
	defaultLocation Location

	// buffer is the merged view of all loaded layers.
	buffer map[string]any

	// origins maps each key in buffer to the layer it came from.
	origins map[string]*layerEntry

	codec     document.Codec
	newSource SourceFactory
	log       logrus.FieldLogger

	// mu protects layers, buffer and origins
	mu sync.RWMutex
}

// New creates a Store, normalizes its locations and loads them.
//
// With no locations and no default location the store is simply empty.
// A location that cannot be read or decoded fails construction.
//
// Example:
//
//	store, err := kasane.New(ctx,
//	    kasane.WithLocations("defaults.yml", "/etc/app/site.yml"),
//	    kasane.WithDefaultLocation("user.yml"),
//	)
func New(ctx context.Context, opts ...StoreOption) (*Store, error) {
	options := storeOptions{
		codec:     yaml.New(),
		newSource: fileSource,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = discardLogger()
	}

	if slices.Contains(options.locations, "") {
		return nil, &ConfigurationError{Op: "new", Err: ErrEmptyLocation}
	}

	s := &Store{
		defaultLocation: options.defaultLocation,
		buffer:          make(map[string]any),
		origins:         make(map[string]*layerEntry),
		codec:           options.codec,
		newSource:       options.newSource,
		log:             options.logger,
	}
	s.setLocationsLocked(options.locations)

	if err := s.reloadLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// AddOption is a functional option for configuring AddLocation.
type AddOption func(*addOptions)

// addOptions holds the options for AddLocation.
type addOptions struct {
	skipReload bool
}

// WithoutReload registers the location without reloading. Use it to add
// several locations and call Reload once at the end.
func WithoutReload() AddOption {
	return func(o *addOptions) {
		o.skipReload = true
	}
}

// AddLocation registers loc, re-normalizes the load order and reloads all
// locations unless WithoutReload is given. Adding a location that is already
// registered does not change the load order.
//
// Example:
//
//	store.AddLocation(ctx, "a.yml", kasane.WithoutReload())
//	store.AddLocation(ctx, "b.yml", kasane.WithoutReload())
//	err := store.Reload(ctx)
func (s *Store) AddLocation(ctx context.Context, loc Location, opts ...AddOption) error {
	var options addOptions
	for _, opt := range opts {
		opt(&options)
	}

	if loc == "" {
		return &ConfigurationError{Op: "add location", Err: ErrEmptyLocation}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocationsLocked(append(s.locationsLocked(), loc))
	if options.skipReload {
		return nil
	}
	return s.reloadLocked(ctx)
}

// AddLocations registers all of locs, normalizes once and reloads once.
func (s *Store) AddLocations(ctx context.Context, locs ...Location) error {
	if slices.Contains(locs, "") {
		return &ConfigurationError{Op: "add location", Err: ErrEmptyLocation}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocationsLocked(append(s.locationsLocked(), locs...))
	return s.reloadLocked(ctx)
}

// Reload clears the merged view and loads every location again in order.
//
// On error the merged view holds only the locations loaded before the
// failing one. It stays in that state until a Reload succeeds.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reloadLocked(ctx)
}

// Get returns the effective value of key, or def if no location defines it.
//
// Example:
//
//	port := store.Get("port", 8080)
func (s *Store) Get(key string, def any) any {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Lookup returns the effective value of key and whether it exists.
func (s *Store) Lookup(key string) (any, bool) {
	rv := s.Resolve(key)
	return rv.Value, rv.Exists
}

// Resolve returns the effective value of key along with the location it
// came from.
//
// Example:
//
//	rv := store.Resolve("theme")
//	if rv.Exists {
//	  fmt.Printf("theme=%v (from %s)\n", rv.Value, rv.Location)
//	}
func (s *Store) Resolve(key string) ResolvedValue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.buffer[key]
	if !ok {
		return ResolvedValue{}
	}

	rv := ResolvedValue{
		Value:  maputil.CloneValue(v),
		Exists: true,
	}
	if entry := s.origins[key]; entry != nil {
		rv.Location = entry.location
	}
	return rv
}

// All returns a copy of the whole merged mapping. It is never nil.
func (s *Store) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maputil.Clone(s.buffer)
}

// Locations returns the locations in load order. The default location, if
// set, is last.
func (s *Store) Locations() []Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.locationsLocked()
}

// DefaultLocation returns the default location and whether one is set.
func (s *Store) DefaultLocation() (Location, bool) {
	return s.defaultLocation, s.defaultLocation != ""
}

// locationsLocked returns a copy of the current load order.
// Caller must hold the lock (read or write).
func (s *Store) locationsLocked() []Location {
	locs := make([]Location, len(s.layers))
	for i, entry := range s.layers {
		locs[i] = entry.location
	}
	return locs
}

// setLocationsLocked normalizes locs and rebuilds the layer list, keeping the
// entries (and their sources) of locations that were already registered.
// Caller must hold the write lock.
func (s *Store) setLocationsLocked(locs []Location) {
	existing := make(map[Location]*layerEntry, len(s.layers))
	for _, entry := range s.layers {
		existing[entry.location] = entry
	}

	ordered := normalizeLocations(locs, s.defaultLocation)
	layers := make([]*layerEntry, len(ordered))
	for i, loc := range ordered {
		if entry, ok := existing[loc]; ok {
			layers[i] = entry
			continue
		}
		layers[i] = &layerEntry{
			location: loc,
			source:   s.newSource(loc),
		}
	}
	s.layers = layers
}

// findLayerLocked returns the entry for loc, or nil if loc is not registered.
// Caller must hold the lock (read or write).
func (s *Store) findLayerLocked(loc Location) *layerEntry {
	for _, entry := range s.layers {
		if entry.location == loc {
			return entry
		}
	}
	return nil
}

// reloadLocked clears the merged view and loads every layer in order.
// Caller must hold the write lock.
func (s *Store) reloadLocked(ctx context.Context) error {
	clear(s.buffer)
	clear(s.origins)
	for _, entry := range s.layers {
		entry.data = nil
	}

	for _, entry := range s.layers {
		data, err := entry.load(ctx, s.codec)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"location": entry.location,
				"error":    err,
			}).Debug("failed to load location")
			return err
		}

		entry.data = data
		for key, value := range data {
			s.buffer[key] = value
			s.origins[key] = entry
		}

		s.log.WithFields(logrus.Fields{
			"location": entry.location,
			"keys":     len(data),
		}).Debug("loaded location")
	}
	return nil
}

// resolveKeyLocked recomputes the merged value of key from the loaded layers.
// The last layer defining key wins.
// Caller must hold the write lock.
func (s *Store) resolveKeyLocked(key string) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		entry := s.layers[i]
		if value, ok := entry.data[key]; ok {
			s.buffer[key] = value
			s.origins[key] = entry
			return
		}
	}
	delete(s.buffer, key)
	delete(s.origins, key)
}
