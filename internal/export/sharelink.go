package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ShareRef is the payload carried inside a share link. It embeds the
// collection id plus enough display state (name, member ids) to rebuild
// the collection view on the receiving side without a backend lookup.
type ShareRef struct {
	Version      int      `json:"v"`
	CollectionID string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	CaseIDs      []string `json:"cases,omitempty"`
}

// ShareLink builds a shareable URL for the collection, or ("", false) when
// the collection is unknown. The token round-trips through
// DecodeShareToken back to the same collection id.
func (e *Encoder) ShareLink(collectionID string) (string, bool) {
	col, ok := e.collections.Get(collectionID)
	if !ok {
		return "", false
	}
	ref := ShareRef{
		Version:      FormatVersion,
		CollectionID: col.ID,
		Name:         col.Name,
		CaseIDs:      col.CaseIDs,
	}
	return fmt.Sprintf("%s/shared?c=%s", e.shareBase, EncodeShareToken(ref)), true
}

// EncodeShareToken serializes a ShareRef into a URL-safe token.
func EncodeShareToken(ref ShareRef) string {
	data, err := json.Marshal(ref)
	if err != nil {
		// ShareRef contains only strings and slices; marshal cannot fail.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeShareToken parses a token produced by EncodeShareToken.
func DecodeShareToken(token string) (ShareRef, error) {
	var ref ShareRef
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ref, fmt.Errorf("malformed share token: %w", err)
	}
	if err := json.Unmarshal(data, &ref); err != nil {
		return ref, fmt.Errorf("malformed share payload: %w", err)
	}
	if ref.CollectionID == "" {
		return ref, fmt.Errorf("share payload has no collection id")
	}
	return ref, nil
}
