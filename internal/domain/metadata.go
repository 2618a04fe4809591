package domain

// Well-known section names produced by the metadata reader adapters. The
// naming follows the directory names used by common extraction tools.
const (
	SectionXMP       = "XMP"
	SectionExifIFD0  = "Exif IFD0"
	SectionQuickTime = "QuickTime Metadata Header"
)

// TagValue holds one metadata tag: the raw value as extracted plus an
// optional human-readable rendering.
type TagValue struct {
	Raw         any    // e.g., 1577872800 or "Sunset over the bay"
	Description string // e.g., "Sunset over the bay"
}

// RawString returns the raw value when it is a string, otherwise "".
func (v TagValue) RawString() string {
	s, ok := v.Raw.(string)
	if !ok {
		return ""
	}
	return s
}

// MetadataSection is a named group of tags extracted from one file. XMP
// sections additionally carry properties keyed by namespaced path
// (e.g., "xmp:CreateDate"). Sections are read-only once produced.
type MetadataSection struct {
	Name  string
	Tags  map[string]TagValue
	Props map[string]string
}

// Tag looks up a tag by name.
func (s *MetadataSection) Tag(name string) (TagValue, bool) {
	v, ok := s.Tags[name]
	return v, ok
}

// Description returns the human-readable value of a tag, or "" when the
// tag is missing or carries no description.
func (s *MetadataSection) Description(name string) string {
	return s.Tags[name].Description
}

// Prop returns an XMP property value, or "" when absent.
func (s *MetadataSection) Prop(path string) string {
	return s.Props[path]
}
