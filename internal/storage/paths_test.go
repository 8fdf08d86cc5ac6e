package storage

import (
	"strings"
	"testing"
)

func TestObjectKeyAndURL(t *testing.T) {
	key := ObjectKey("p-123", "asset-9", "jpg")
	if key != "p-123/asset-9.jpg" {
		t.Fatalf("unexpected key: %s", key)
	}
	url := PublicURL("http://localhost:9000/", "tienda", key)
	if url != "http://localhost:9000/tienda/p-123/asset-9.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestNewTempNamespace(t *testing.T) {
	a, b := NewTempNamespace(), NewTempNamespace()
	if !IsTempNamespace(a) || !IsTempNamespace(b) {
		t.Fatalf("temp namespaces missing prefix: %s %s", a, b)
	}
	if a == b {
		t.Fatalf("namespaces must be unique per batch: %s", a)
	}
	if !strings.HasPrefix(a, "temp-") {
		t.Fatalf("wrong prefix: %s", a)
	}
}

func TestIsTempNamespace(t *testing.T) {
	if IsTempNamespace("p-123") {
		t.Fatal("product namespace misread as temp")
	}
	if !IsTempNamespace("temp-1700000000-abcd1234") {
		t.Fatal("temp namespace not recognized")
	}
}
