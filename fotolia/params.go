package fotolia

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Param is a single named argument of an API call.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of arguments. Order is preserved on the wire.
type Params []Param

// P builds Params from alternating keys and values. It panics on an odd
// argument count or a non-string key, which are programming errors.
func P(kv ...any) Params {
	if len(kv)%2 != 0 {
		panic("fotolia.P: odd number of arguments")
	}
	out := make(Params, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("fotolia.P: key %v is not a string", kv[i]))
		}
		out = append(out, Param{Key: key, Value: kv[i+1]})
	}
	return out
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Encode renders the params in bracket notation:
//
//	k=v                 scalars
//	(omitted)           nil values
//	k=1 / k=0           booleans
//	k[0]=a&k[1]=b       slices and arrays
//	k[sub]=v            nested Params (insertion order) and maps (sorted keys)
func (p Params) Encode() string {
	var pairs []string
	for _, kv := range p {
		pairs = appendEncoded(pairs, kv.Key, kv.Value)
	}
	return strings.Join(pairs, "&")
}

func appendEncoded(pairs []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return pairs
	case Params:
		for _, kv := range v {
			pairs = appendEncoded(pairs, key+"["+kv.Key+"]", kv.Value)
		}
		return pairs
	case string:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v))
	case bool:
		if v {
			return append(pairs, url.QueryEscape(key)+"=1")
		}
		return append(pairs, url.QueryEscape(key)+"=0")
	case fmt.Stringer:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v.String()))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return pairs
		}
		return appendEncoded(pairs, key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(string(rv.Bytes())))
		}
		for i := 0; i < rv.Len(); i++ {
			pairs = appendEncoded(pairs, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
		return pairs
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			s := fmt.Sprint(k.Interface())
			keys = append(keys, s)
			byKey[s] = k
		}
		sort.Strings(keys)
		for _, k := range keys {
			pairs = appendEncoded(pairs, key+"["+k+"]", rv.MapIndex(byKey[k]).Interface())
		}
		return pairs
	case reflect.Float32, reflect.Float64:
		return append(pairs, url.QueryEscape(key)+"="+strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	default:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(fmt.Sprint(value)))
	}
}
