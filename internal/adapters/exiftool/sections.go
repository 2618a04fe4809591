package exiftool

import (
	"fmt"
	"sort"
	"strings"

	"shoebox/internal/domain"
)

// exifTagNames maps exiftool's IFD0 tag names to the names the derivation
// consults.
var exifTagNames = map[string]string{
	"ImageDescription": "Image Description",
	"XPSubject":        "Windows XP Subject",
	"XPTitle":          "Windows XP Title",
	"XPComment":        "Windows XP Comment",
	"ModifyDate":       "Date/Time",
}

// xmpNamespaces maps exiftool's XMP group suffixes to the canonical
// namespace prefixes used in property paths.
var xmpNamespaces = map[string]string{
	"xmp":       "xmp",
	"photoshop": "photoshop",
	"iptcExt":   "Iptc4xmpExt",
}

// descriptionGroups are the QuickTime-family groups whose Description tag
// can label a video, in precedence order.
var descriptionGroups = []string{"Keys", "UserData", "ItemList"}

// bucketSections turns exiftool's flat "Group:Tag" map into metadata
// sections. Each XMP-* group becomes its own XMP section; IFD0 becomes the
// Exif section; the QuickTime-family groups are folded into one QuickTime
// section so a plain video never looks ambiguous.
func bucketSections(raw map[string]any) []domain.MetadataSection {
	xmpProps := make(map[string]map[string]string)
	exifTags := make(map[string]domain.TagValue)
	qtByGroup := make(map[string]map[string]domain.TagValue)

	for key, value := range raw {
		group, tag, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}

		switch {
		case group == "IFD0":
			name := exifTagNames[tag]
			if name == "" {
				name = tag
			}
			exifTags[name] = tagValue(value)

		case strings.HasPrefix(group, "XMP"):
			ns := strings.TrimPrefix(strings.TrimPrefix(group, "XMP"), "-")
			if mapped, ok := xmpNamespaces[ns]; ok {
				ns = mapped
			}
			prop := tag
			if ns != "" {
				prop = ns + ":" + tag
			}
			if xmpProps[group] == nil {
				xmpProps[group] = make(map[string]string)
			}
			xmpProps[group][prop] = describe(value)

		case group == "Keys" || group == "QuickTime" || group == "UserData" || group == "ItemList":
			if qtByGroup[group] == nil {
				qtByGroup[group] = make(map[string]domain.TagValue)
			}
			qtByGroup[group][tag] = tagValue(value)
		}
	}

	var sections []domain.MetadataSection

	groups := make([]string, 0, len(xmpProps))
	for g := range xmpProps {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		sections = append(sections, domain.MetadataSection{
			Name:  domain.SectionXMP,
			Props: xmpProps[g],
		})
	}

	if len(exifTags) > 0 {
		sections = append(sections, domain.MetadataSection{
			Name: domain.SectionExifIFD0,
			Tags: exifTags,
		})
	}

	if qt := quickTimeSection(qtByGroup); qt != nil {
		sections = append(sections, *qt)
	}

	return sections
}

// quickTimeSection merges the QuickTime-family groups into one section.
// The description comes from the first group in precedence order that has
// one; the creation date prefers the Keys timestamp (which carries a zone)
// over the movie header's.
func quickTimeSection(byGroup map[string]map[string]domain.TagValue) *domain.MetadataSection {
	if len(byGroup) == 0 {
		return nil
	}

	tags := make(map[string]domain.TagValue)
	for _, group := range descriptionGroups {
		if v, ok := byGroup[group]["Description"]; ok {
			tags["Description"] = v
			break
		}
	}
	if v, ok := byGroup["Keys"]["CreationDate"]; ok {
		tags["creationdate"] = v
	} else if v, ok := byGroup["QuickTime"]["CreateDate"]; ok {
		tags["creationdate"] = v
	}

	if len(tags) == 0 {
		return nil
	}
	return &domain.MetadataSection{
		Name: domain.SectionQuickTime,
		Tags: tags,
	}
}

func tagValue(v any) domain.TagValue {
	return domain.TagValue{Raw: v, Description: describe(v)}
}

// describe renders a decoded JSON value the way exiftool printed it.
func describe(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		// exiftool prints integers without a decimal point.
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprint(v)
	}
}
