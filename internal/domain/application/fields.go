package application

import "strings"

// JoinParts concatenates multi-part field values in order. Used for the
// 12-digit my-number (4/4/4) and the 10-digit basic pension number (4/6).
// No checksum validation is performed.
func JoinParts(parts ...string) string {
	return strings.Join(parts, "")
}

// SplitParts extracts fixed-width groups from a joined value. Widths must sum
// to the expected length; a short or empty value yields empty parts so an edit
// view can always be populated.
func SplitParts(value string, widths ...int) []string {
	out := make([]string, len(widths))
	offset := 0
	for i, w := range widths {
		if offset+w > len(value) {
			break
		}
		out[i] = value[offset : offset+w]
		offset += w
	}
	return out
}

func splitMyNumber(value string) []string {
	return SplitParts(value, 4, 4, 4)
}

func splitPensionNumber(value string) []string {
	return SplitParts(value, 4, 6)
}

// FoldOther collapses an "other"-selected enum field into its stored form.
// When the primary holds the literal "other", the stored primary becomes the
// companion free text itself and the companion is kept unchanged, so both the
// detail and the fact that "other" was chosen stay recoverable.
func FoldOther(primary, companion string) (string, string) {
	if primary == OtherChoice && companion != "" {
		return companion, companion
	}
	return primary, companion
}

// UnfoldOther reverses FoldOther for an edit view: when the companion equals
// the stored primary, the primary is reconstructed as the literal "other".
func UnfoldOther(primary, companion string) (string, string) {
	if companion != "" && companion == primary {
		return OtherChoice, companion
	}
	return primary, companion
}

// clearUnless blanks a gated value when its condition is false. Stale input
// must never leak into the payload.
func clearUnless(condition bool, value string) string {
	if !condition {
		return ""
	}
	return value
}
