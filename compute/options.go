package compute

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Generic option keys understood by every backend. Backends rename them to
// their own flags (see HPCBackend.Mapping).
const (
	JobNameKey = "jobname"
	LogFileKey = "logfile"
)

// Options is an ordered set of submission options. Setting an existing key
// keeps its position; new keys are appended. The zero value and nil are
// both empty option sets, but only a non-nil value may be written to.
type Options struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewOptions returns an option set built from key, value pairs.
// A trailing key without a value is ignored.
func NewOptions(kv ...string) *Options {
	o := &Options{}
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i], kv[i+1])
	}
	return o
}

// ParseOptions builds an option set from "key=value" entries, in order.
func ParseOptions(entries []string) (*Options, error) {
	o := &Options{}
	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", e)
		}
		o.Set(k, v)
	}
	return o, nil
}

func (o *Options) pairs() *orderedmap.Pair[string, string] {
	if o == nil || o.m == nil {
		return nil
	}
	return o.m.Oldest()
}

// Len returns the number of options.
func (o *Options) Len() int {
	if o == nil || o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the option keys in order.
func (o *Options) Keys() []string {
	var keys []string
	for p := o.pairs(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the value for key.
func (o *Options) Get(key string) (string, bool) {
	if o == nil || o.m == nil {
		return "", false
	}
	return o.m.Get(key)
}

// Value returns the value for key, or "" when unset.
func (o *Options) Value(key string) string {
	v, _ := o.Get(key)
	return v
}

// Has reports whether key is set.
func (o *Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set sets key to value.
func (o *Options) Set(key, value string) {
	if o.m == nil {
		o.m = orderedmap.New[string, string]()
	}
	o.m.Set(key, value)
}

// SetInt sets key to the decimal form of value.
func (o *Options) SetInt(key string, value int) {
	o.Set(key, strconv.Itoa(value))
}

// SetDefault sets key to value only if key is unset, and returns the
// resulting value.
func (o *Options) SetDefault(key, value string) string {
	if v, ok := o.Get(key); ok {
		return v
	}
	o.Set(key, value)
	return value
}

// Pop removes key and returns its value.
func (o *Options) Pop(key string) (string, bool) {
	if o == nil || o.m == nil {
		return "", false
	}
	return o.m.Delete(key)
}

// Update sets every entry of other on o, in other's order, so values in
// other win. It returns o.
func (o *Options) Update(other *Options) *Options {
	for p := other.pairs(); p != nil; p = p.Next() {
		o.Set(p.Key, p.Value)
	}
	return o
}

// Clone returns a copy of o which shares no state with it.
func (o *Options) Clone() *Options {
	c := &Options{}
	return c.Update(o)
}

// Format serializes the options as "<prefix>key value " tokens, in order,
// e.g. "-J name -W 4:00 " or "--mem 10000 ".
func (o *Options) Format(prefix string) string {
	var b strings.Builder
	for p := o.pairs(); p != nil; p = p.Next() {
		fmt.Fprintf(&b, "%s%s %s ", prefix, p.Key, p.Value)
	}
	return b.String()
}

// String returns the options as space separated key=value entries.
func (o *Options) String() string {
	var parts []string
	for p := o.pairs(); p != nil; p = p.Next() {
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, " ")
}
