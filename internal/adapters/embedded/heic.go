package embedded

import (
	"io"

	"github.com/evanoberholster/imagemeta"

	"shoebox/internal/domain"
)

// heicSections reads the capture date from a HEIC container. The date
// surfaces under the Exif section's Date/Time tag, which is where the
// taken-date derivation looks for it.
func heicSections(r io.ReadSeeker) []domain.MetadataSection {
	e, err := imagemeta.Decode(r)
	if err != nil {
		return nil
	}

	taken := e.DateTimeOriginal()
	if taken.IsZero() {
		taken = e.CreateDate()
	}
	if taken.IsZero() {
		return nil
	}

	value := taken.Format("2006:01:02 15:04:05")
	return []domain.MetadataSection{{
		Name: domain.SectionExifIFD0,
		Tags: map[string]domain.TagValue{
			"Date/Time": {Raw: value, Description: value},
		},
	}}
}
