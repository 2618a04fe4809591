package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// DefaultMaxFileNameLength bounds a synthesized filename including the
// extension, duplicate suffix and sort prefix.
const DefaultMaxFileNameLength = 260

// ErrNameBudget reports that the extension, sort prefix and duplicate
// suffix leave no room to truncate the label within MaxLength.
var ErrNameBudget = errors.New("filename length budget exhausted")

// illegalNameChars matches characters that cannot appear in a filename on
// common filesystems, including control characters.
var illegalNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// NameOptions parameterizes BuildFileName.
type NameOptions struct {
	Ordinal        int    // 1-based position in the date-ordered batch
	Total          int    // batch size; sets the zero-padding width
	AddSortPrefix  bool   // prepend "NNN. "
	DuplicateIndex int    // 0 = no " (n)" suffix
	Extension      string // leading dot and case preserved, e.g. ".JPG"
	MaxLength      int    // full-name budget; 0 means DefaultMaxFileNameLength
}

// SortPrefix returns the zero-padded ordinal prefix, e.g. ordinal 7 of a
// 150-item batch yields "007. ". The fixed width keeps lexical ordering
// chronological across the whole batch.
func SortPrefix(ordinal, total int) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("%0*d. ", width, ordinal)
}

// BuildFileName synthesizes a filesystem-safe filename from a label.
// Overlong labels are truncated to the remaining budget minus three and
// terminated with "...". Characters are counted as runes.
func BuildFileName(label string, o NameOptions) (string, error) {
	maxLength := o.MaxLength
	if maxLength == 0 {
		maxLength = DefaultMaxFileNameLength
	}
	prefix := ""
	if o.AddSortPrefix {
		prefix = SortPrefix(o.Ordinal, o.Total)
	}
	suffix := ""
	if o.DuplicateIndex > 0 {
		suffix = fmt.Sprintf(" (%d)", o.DuplicateIndex)
	}

	budget := maxLength - utf8.RuneCountInString(o.Extension) - len(suffix) - len(prefix)
	name := label
	if utf8.RuneCountInString(name) > budget {
		if budget-3 < 0 {
			return "", fmt.Errorf("%w: extension and affixes take %d of %d", ErrNameBudget, maxLength-budget, maxLength)
		}
		name = string([]rune(name)[:budget-3]) + "..."
	}
	name = illegalNameChars.ReplaceAllString(name, "_")

	return prefix + name + suffix + o.Extension, nil
}

// CandidatePath synthesizes a filename for the label and joins it onto dir.
func CandidatePath(dir, label string, o NameOptions) (string, error) {
	name, err := BuildFileName(label, o)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
