// Package themecache owns the parsed SVG images and themes,
// keyed by file path, so that each file is parsed at most once.
// It also interns the shape identifiers used by the style cascade.
//
// A Cache is not safe for concurrent use: the caller serializes
// access, typically from its render loop.
package themecache

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgtheme/intern"
	"github.com/benoitkugler/svgtheme/logging"
	"github.com/benoitkugler/svgtheme/svgicon"
	"github.com/benoitkugler/svgtheme/theme"
)

// ShapeInfo is the identity of a shape, derived from its id attribute.
type ShapeInfo struct {
	ID    intern.Key // element id, the text before the last "--"
	Class intern.Key // style class, the text after it, or ""
}

// Separator splits element ids from style classes in shape ids.
const Separator = "--"

// SplitShapeID splits id on the last Separator.
func SplitShapeID(id string) (elementID, class string) {
	i := strings.LastIndex(id, Separator)
	if i < 0 {
		return id, ""
	}
	return id[:i], id[i+len(Separator):]
}

// Cache stores images and themes. Entries are never evicted.
type Cache struct {
	sink      logging.Sink
	errorMode svgicon.ErrorMode

	interner *intern.Interner
	themes   map[string]*theme.Theme
	images   map[string]*svgicon.Icon
	shapes   map[*svgicon.Shape]ShapeInfo
}

// Option configures a Cache.
type Option func(*Cache)

// WithSink sets the channel receiving load failures and notices.
func WithSink(sink logging.Sink) Option {
	return func(c *Cache) { c.sink = sink }
}

// WithErrorMode sets how the SVG reader handles unsupported elements.
// It defaults to svgicon.WarnErrorMode.
func WithErrorMode(mode svgicon.ErrorMode) Option {
	return func(c *Cache) { c.errorMode = mode }
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		errorMode: svgicon.WarnErrorMode,
		interner:  intern.New(),
		themes:    make(map[string]*theme.Theme),
		images:    make(map[string]*svgicon.Icon),
		shapes:    make(map[*svgicon.Shape]ShapeInfo),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Theme returns the theme stored in the file at path, loading it
// on first use. The empty path is the null theme, without rules.
// Failures are reported to the sink, not cached, and return nil.
func (c *Cache) Theme(path string) *theme.Theme {
	if th, ok := c.themes[path]; ok {
		return th
	}
	if path == "" {
		th := theme.New("")
		c.themes[path] = th
		return th
	}
	th, err := theme.Load(path, c.interner, c.sink)
	if err != nil {
		return nil
	}
	c.themes[path] = th
	return th
}

// NullTheme returns the shared theme without rules.
func (c *Cache) NullTheme() *theme.Theme { return c.Theme("") }

// Image returns the SVG image stored in the file at path, parsing it
// on first use. Failures are reported to the sink, not cached, and return nil.
func (c *Cache) Image(path string) *svgicon.Icon {
	if icon, ok := c.images[path]; ok {
		return icon
	}
	icon, err := svgicon.ReadIcon(path, c.errorMode)
	if err != nil {
		c.sink.Report(logging.Warn, logging.DocumentParseFailed, fmt.Sprintf("Failed to load SVG %s: %v", path, err))
		return nil
	}
	for _, w := range icon.Warnings {
		c.sink.Report(logging.Warn, logging.Unspecified, fmt.Sprintf("%s: %s", path, w))
	}
	c.sink.Info(fmt.Sprintf("Loaded SVG %s", path))
	c.images[path] = icon
	return icon
}

// ShapeInfo returns the interned identity of shape.
// Results are memoized per shape.
func (c *Cache) ShapeInfo(shape *svgicon.Shape) ShapeInfo {
	if info, ok := c.shapes[shape]; ok {
		return info
	}
	id, class := SplitShapeID(shape.ID)
	info := ShapeInfo{ID: c.interner.Intern(id), Class: c.interner.Intern(class)}
	c.shapes[shape] = info
	return info
}

// ShapeID returns the element id of shape, without its class.
// It returns "" for a nil shape.
func (c *Cache) ShapeID(shape *svgicon.Shape) string {
	if shape == nil {
		return ""
	}
	text, _ := c.interner.Text(c.ShapeInfo(shape).ID)
	return text
}

// Interner returns the interner shared by the themes and shapes of c.
func (c *Cache) Interner() *intern.Interner { return c.interner }

// Key interns text.
func (c *Cache) Key(text string) intern.Key { return c.interner.Intern(text) }

// Text returns the text of k.
func (c *Cache) Text(k intern.Key) (string, error) { return c.interner.Text(k) }

// Len returns the number of cached images and themes.
func (c *Cache) Len() (images, themes int) { return len(c.images), len(c.themes) }
