// Package identity derives stable ids for records and seed sections so the
// same wedding always maps to the same row and the same seed layout.
package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-microsite"

// Kinds keep ids of different entities from colliding on the same parts.
const (
	KindDocument = "document"
	KindSection  = "section"
)

// Key joins kind and parts into the namespaced string ids are hashed from.
// Parts are trimmed; blank parts make the key empty.
func Key(kind string, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, namespace, kind)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return ""
		}
		segments = append(segments, part)
	}
	return strings.Join(segments, ":")
}

// UUID hashes key into a UUID with go-hashid. A blank key yields uuid.Nil.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || id == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return id
}

// Document is the primary key of the draft stored for a wedding.
func Document(ownerID, weddingID string) uuid.UUID {
	return UUID(Key(KindDocument, ownerID, weddingID))
}

// SectionID names a seed section, for example "hero_1a2b3c4d".
func SectionID(documentID, sectionType string, position int) string {
	sectionType = strings.ToLower(strings.TrimSpace(sectionType))
	id := UUID(Key(KindSection, documentID, sectionType, strconv.Itoa(position)))
	return sectionType + "_" + id.String()[:8]
}
