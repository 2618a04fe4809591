package embedded

import (
	"io"
	"strings"
	"unicode/utf16"

	"github.com/rwcarlsen/goexif/exif"

	"shoebox/internal/domain"
)

// xpTagNames maps the Windows XP* fields to the tag names the derivation
// consults. Their values are UTF-16 byte arrays, not EXIF ASCII.
var xpTagNames = map[exif.FieldName]string{
	exif.XPSubject: "Windows XP Subject",
	exif.XPTitle:   "Windows XP Title",
	exif.XPComment: "Windows XP Comment",
}

// exifSections reads the IFD0 tags the derivation consults. A file without
// EXIF data yields no sections.
func exifSections(r io.Reader) []domain.MetadataSection {
	x, err := exif.Decode(r)
	if err != nil {
		return nil
	}

	tags := make(map[string]domain.TagValue)

	if tag, err := x.Get(exif.ImageDescription); err == nil {
		if s, err := tag.StringVal(); err == nil && strings.TrimSpace(s) != "" {
			s = strings.TrimSpace(s)
			tags["Image Description"] = domain.TagValue{Raw: s, Description: s}
		}
	}

	for field, name := range xpTagNames {
		if tag, err := x.Get(field); err == nil {
			if s := decodeUTF16LE(tag.Val); strings.TrimSpace(s) != "" {
				tags[name] = domain.TagValue{Raw: s, Description: s}
			}
		}
	}

	if tag, err := x.Get(exif.DateTime); err == nil {
		if s, err := tag.StringVal(); err == nil && s != "" {
			tags["Date/Time"] = domain.TagValue{Raw: s, Description: s}
		}
	}

	if len(tags) == 0 {
		return nil
	}
	return []domain.MetadataSection{{Name: domain.SectionExifIFD0, Tags: tags}}
}

// decodeUTF16LE decodes the little-endian UTF-16 layout of the Windows
// XP* tag values, dropping the trailing NUL.
func decodeUTF16LE(b []byte) string {
	if len(b) < 2 {
		return ""
	}
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])|uint16(b[i+1])<<8)
	}
	return strings.TrimRight(string(utf16.Decode(units)), "\x00")
}
