package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tempPrefix = "temp-"

// ObjectKey maps a namespace (product id or temp folder) plus an asset id
// and extension to the bucket key {namespace}/{assetId}.{ext}.
func ObjectKey(namespace, assetID, ext string) string {
	return namespace + "/" + assetID + "." + ext
}

// PublicURL builds the externally reachable URL for a bucket key.
func PublicURL(baseURL, bucket, key string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + bucket + "/" + key
}

// NewTempNamespace returns a fresh staging folder name. One namespace is
// minted per upload batch, not per file.
func NewTempNamespace() string {
	return fmt.Sprintf("%s%d-%s", tempPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// NewAssetID returns a globally unique asset id for an uploaded file.
func NewAssetID() string {
	return uuid.NewString()
}

// IsTempNamespace reports whether a namespace belongs to the staging family.
func IsTempNamespace(ns string) bool {
	return strings.HasPrefix(ns, tempPrefix)
}
