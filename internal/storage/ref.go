package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImageRef is a tagged reference to a stored image. The kind is decided at
// upload time and carried through payloads, instead of re-deriving it from
// URL shape at save time.
type ImageRef struct {
	Kind      string `json:"kind"` // temporary | final
	URL       string `json:"url"`
	Namespace string `json:"namespace,omitempty"`
	AssetID   string `json:"assetId,omitempty"`
	Ext       string `json:"ext,omitempty"`
}

const (
	RefTemporary = "temporary"
	RefFinal     = "final"
)

func (r ImageRef) Temporary() bool { return r.Kind == RefTemporary }

// Key returns the bucket key a temporary ref points at.
func (r ImageRef) Key() string { return ObjectKey(r.Namespace, r.AssetID, r.Ext) }

// ParseURL classifies a bare image URL. Legacy payloads send plain strings;
// anything under a temp- folder is treated as staged.
func ParseURL(u string) ImageRef {
	marker := "/" + tempPrefix
	i := strings.LastIndex(u, marker)
	if i < 0 {
		return ImageRef{Kind: RefFinal, URL: u}
	}
	rest := u[i+1:] // temp-.../file.ext
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return ImageRef{Kind: RefFinal, URL: u}
	}
	name := parts[1]
	asset, ext := name, ""
	if j := strings.LastIndex(name, "."); j > 0 {
		asset, ext = name[:j], name[j+1:]
	}
	return ImageRef{Kind: RefTemporary, URL: u, Namespace: parts[0], AssetID: asset, Ext: ext}
}

// UnmarshalJSON accepts either a tagged object or a bare URL string.
func (r *ImageRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var u string
		if err := json.Unmarshal(b, &u); err != nil {
			return err
		}
		*r = ParseURL(u)
		return nil
	}
	type alias ImageRef
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Kind != RefTemporary && a.Kind != RefFinal {
		return fmt.Errorf("image ref: unknown kind %q", a.Kind)
	}
	*r = ImageRef(a)
	return nil
}

// ImageList accepts the three payload shapes clients send for images: an
// array of refs/URLs, or one comma-joined URL string.
type ImageList []ImageRef

func (l *ImageList) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var joined string
		if err := json.Unmarshal(b, &joined); err != nil {
			return err
		}
		var refs []ImageRef
		for _, u := range strings.Split(joined, ",") {
			if u = strings.TrimSpace(u); u != "" {
				refs = append(refs, ParseURL(u))
			}
		}
		*l = refs
		return nil
	}
	var refs []ImageRef
	if err := json.Unmarshal(b, &refs); err != nil {
		return err
	}
	*l = refs
	return nil
}
