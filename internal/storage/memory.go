package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and local development.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memObject
	baseURL string
	bucket  string

	// FailPut and FailGet force errors on matching keys, for exercising
	// the best-effort commit path.
	FailPut map[string]bool
	FailGet map[string]bool
}

type memObject struct {
	data     []byte
	modified time.Time
}

func NewMemory(baseURL, bucket string) *Memory {
	return &Memory{
		objects: make(map[string]memObject),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		bucket:  bucket,
		FailPut: make(map[string]bool),
		FailGet: make(map[string]bool),
	}
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.FailPut[key] {
		return fmt.Errorf("storage: put %s: forced failure", key)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: b, modified: time.Now()}
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.FailGet[key] {
		return nil, fmt.Errorf("storage: get %s: forced failure", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("storage: get %s: not found", key)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ObjectInfo
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ObjectInfo{Key: k, LastModified: o.modified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) URL(key string) string {
	return PublicURL(m.baseURL, m.bucket, key)
}

func (m *Memory) KeyFromURL(u string) (string, bool) {
	prefix := m.baseURL + "/" + m.bucket + "/"
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}
	return strings.TrimPrefix(u, prefix), true
}

// Has reports whether a key currently exists.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// Touch backdates an object's modification time, for sweeper tests.
func (m *Memory) Touch(key string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.objects[key]; ok {
		o.modified = t
		m.objects[key] = o
	}
}
