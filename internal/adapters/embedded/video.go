package embedded

import (
	"io"
	"time"

	mp4 "github.com/abema/go-mp4"

	"shoebox/internal/domain"
)

// appleEpochOffset is the number of seconds between the QuickTime epoch
// (1904-01-01 00:00:00 UTC) and the Unix epoch.
const appleEpochOffset = 2082844800

// movieSections reads the creation time from the moov>mvhd box of an ISO
// BMFF container. Keys-style description metadata is left to the exiftool
// reader, so videos read here can be dated but not labeled.
func movieSections(r io.ReadSeeker) []domain.MetadataSection {
	boxes, err := mp4.ExtractBoxesWithPayload(r, nil, []mp4.BoxPath{
		{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()},
	})
	if err != nil {
		return nil
	}

	for _, box := range boxes {
		mvhd, ok := box.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		creation := mvhd.GetCreationTime()
		if creation == 0 {
			continue
		}
		t := time.Unix(int64(creation)-appleEpochOffset, 0).UTC()
		if t.Year() < 1970 {
			continue
		}

		value := t.Format(time.RFC3339)
		return []domain.MetadataSection{{
			Name: domain.SectionQuickTime,
			Tags: map[string]domain.TagValue{
				"creationdate": {Raw: value, Description: value},
			},
		}}
	}

	return nil
}
