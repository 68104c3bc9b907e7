package document

// Document is an ordered mapping from field name to value.
// The zero value is not usable; create documents with New.
type Document struct {
	keys   []string
	values map[string]any
}

// New creates an empty document.
func New() *Document {
	return &Document{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended to the key order;
// re-setting an existing key replaces the value in place.
func (d *Document) Set(key string, value any) *Document {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value stored under key and whether it was present.
func (d *Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// GetOr returns the value stored under key, or def when the key is absent.
func (d *Document) GetOr(key string, def any) any {
	if v, ok := d.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Object returns the nested document stored under key, or nil when the key
// is absent or holds something else.
func (d *Document) Object(key string) *Document {
	v, _ := d.Get(key)
	obj, _ := v.(*Document)
	return obj
}

// List returns the list stored under key, or nil when the key is absent or
// holds something else.
func (d *Document) List(key string) []any {
	v, _ := d.Get(key)
	list, _ := v.([]any)
	return list
}

// Objects returns the elements of the list stored under key. Elements that
// are not documents are returned as nil so indexes line up with the source.
func (d *Document) Objects(key string) []*Document {
	list := d.List(key)
	if list == nil {
		return nil
	}
	out := make([]*Document, len(list))
	for i, item := range list {
		out[i], _ = item.(*Document)
	}
	return out
}
