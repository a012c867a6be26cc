package cfn

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/imamik/repokit/internal/util/naming"
)

const (
	hashLength = 8

	// maxHumanLength keeps logical IDs within the CloudFormation limit of 255.
	maxHumanLength = 255 - hashLength

	// defaultChildID is dropped from the readable part of a logical ID.
	defaultChildID = "Resource"
)

// LogicalID derives the CloudFormation logical ID for a construct path.
//
// The stack segment is not part of the ID. The remaining segments are
// stripped of non-alphanumeric characters and concatenated, then suffixed
// with the first 8 upper-case hex characters of the SHA-256 of the joined
// segments. A single-segment path is used verbatim when it is already a
// valid logical ID.
func LogicalID(path string) string {
	ids := strings.Split(path, naming.PathSeparator)
	if len(ids) > 1 {
		ids = ids[1:]
	}

	if len(ids) == 1 && isAlphanumeric(ids[0]) {
		return ids[0]
	}

	sum := sha256.Sum256([]byte(strings.Join(ids, naming.PathSeparator)))
	suffix := strings.ToUpper(hex.EncodeToString(sum[:]))[:hashLength]

	var human strings.Builder
	for i, id := range ids {
		if id == defaultChildID && i == len(ids)-1 {
			continue
		}
		human.WriteString(alphanumeric(id))
	}

	h := human.String()
	if len(h) > maxHumanLength {
		h = h[:maxHumanLength]
	}
	return h + suffix
}

func alphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphanumericRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlphanumericRune(r) {
			return false
		}
	}
	return true
}

func isAlphanumericRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
