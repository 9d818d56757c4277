// Package kasane provides a layered settings store.
//
// The name comes from the Japanese word for stacking things on top of each
// other (重ね). A Store reads a list of settings files, stacks their
// top-level keys into a single mapping, and writes single keys back to one
// designated file.
//
// Merge order:
//   - Locations are deduplicated and sorted by file name, not full path, so
//     "b.yml" overrides "a.yml" whatever their directories.
//   - The default location is always loaded last and therefore always wins.
//   - Merging is shallow: a top-level key from a later file replaces the
//     earlier value wholesale, nested mappings included.
//
// Example:
//
//	store, err := kasane.New(ctx,
//	    kasane.WithLocations("/etc/app/base.yml", "team.yml"),
//	    kasane.WithDefaultLocation("~/.config/app/user.yml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	theme := store.Get("theme", "light")
//	err = store.Write(ctx, "theme", "dark") // persisted to user.yml
package kasane
