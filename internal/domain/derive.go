package domain

import (
	"fmt"
	"strings"
	"time"
)

// XMP property paths consulted during derivation.
const (
	propArtworkDescription = "Iptc4xmpExt:ArtworkContentDescription"
	propCreateDate         = "xmp:CreateDate"
	propDateCreated        = "photoshop:DateCreated"
	propModifyDate         = "xmp:ModifyDate"
)

// Tag names consulted during derivation.
const (
	tagDateTime     = "Date/Time"
	tagDescription  = "Description"
	tagCreationDate = "creationdate"
)

// exifLabelTags are read from the Exif IFD0 section in this fixed order
// when gathering label candidates.
var exifLabelTags = []string{
	"Image Description",
	"Windows XP Subject",
	"Windows XP Title",
	"Windows XP Comment",
}

// AmbiguousSectionError reports more than one metadata section of a kind
// that must be singular for derivation to be trustworthy.
type AmbiguousSectionError struct {
	Section string
	Count   int
}

func (e *AmbiguousSectionError) Error() string {
	return fmt.Sprintf("ambiguous metadata: %d %q sections", e.Count, e.Section)
}

// Derive produces the label and dates for one file from its metadata
// sections. Label candidates are gathered from XMP, Exif and QuickTime in a
// fixed order, deduplicated preserving first appearance, and joined with
// newlines. Dates follow a strict source precedence; an unparsable date
// counts as absent, never as an error.
func Derive(sections []MetadataSection) (Derivation, error) {
	exif, err := singular(sections, SectionExifIFD0)
	if err != nil {
		return Derivation{}, err
	}
	quicktime, err := singular(sections, SectionQuickTime)
	if err != nil {
		return Derivation{}, err
	}

	var candidates []string
	for i := range sections {
		if sections[i].Name != SectionXMP {
			continue
		}
		if v := sections[i].Prop(propArtworkDescription); strings.TrimSpace(v) != "" {
			candidates = append(candidates, v)
		}
	}
	if exif != nil {
		for _, name := range exifLabelTags {
			if v := exif.Description(name); strings.TrimSpace(v) != "" {
				candidates = append(candidates, v)
			}
		}
	}
	if quicktime != nil {
		if tag, ok := quicktime.Tag(tagDescription); ok {
			if v := tag.RawString(); strings.TrimSpace(v) != "" {
				candidates = append(candidates, v)
			}
		}
	}

	return Derivation{
		Label:      strings.Join(dedupe(candidates), "\n"),
		TakenAt:    deriveTaken(sections, exif, quicktime),
		ModifiedAt: firstXMPTime(sections, propModifyDate),
	}, nil
}

// singular finds the only section with the given name. Absence is fine
// (nil, nil); two or more is an AmbiguousSectionError.
func singular(sections []MetadataSection, name string) (*MetadataSection, error) {
	var found *MetadataSection
	count := 0
	for i := range sections {
		if sections[i].Name != name {
			continue
		}
		count++
		if found == nil {
			found = &sections[i]
		}
	}
	if count > 1 {
		return nil, &AmbiguousSectionError{Section: name, Count: count}
	}
	return found, nil
}

// dedupe removes exact-string duplicates, preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

func deriveTaken(sections []MetadataSection, exif, quicktime *MetadataSection) *time.Time {
	if t := firstXMPTime(sections, propCreateDate); t != nil {
		return t
	}
	if t := firstXMPTime(sections, propDateCreated); t != nil {
		return t
	}
	if exif != nil {
		if t := parseTime(exif.Description(tagDateTime)); t != nil {
			return t
		}
	}
	if quicktime != nil {
		if tag, ok := quicktime.Tag(tagCreationDate); ok {
			if t := parseTime(tag.Description); t != nil {
				return t
			}
			if t := parseTime(tag.RawString()); t != nil {
				return t
			}
		}
	}
	return nil
}

// firstXMPTime returns the first parsable value of an XMP property across
// all XMP sections.
func firstXMPTime(sections []MetadataSection, path string) *time.Time {
	for i := range sections {
		if sections[i].Name != SectionXMP {
			continue
		}
		if t := parseTime(sections[i].Prop(path)); t != nil {
			return t
		}
	}
	return nil
}

// timeLayouts covers the EXIF colon format (with and without a zone) and
// the ISO-8601 shapes seen in XMP and QuickTime values. Go's parser accepts
// fractional seconds even when the layout omits them.
var timeLayouts = []string{
	"2006:01:02 15:04:05Z07:00",
	"2006:01:02 15:04:05",
	"2006:01:02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime parses a metadata timestamp, returning nil when the value is
// blank, the all-zero EXIF placeholder, or in no accepted layout.
func parseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, "0000") {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
