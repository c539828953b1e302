package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetList deserializes a list of byte slices stored by the given key.
// Missing key is an empty list.
func GetList(ctx storage.Context, key interface{}) [][]byte {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([][]byte)
	}

	return [][]byte{}
}

// AppendToList appends an element to the list stored by the given key.
func AppendToList(ctx storage.Context, key interface{}, value []byte) {
	lst := GetList(ctx, key)
	lst = append(lst, value)
	SetSerialized(ctx, key, lst)
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetIntOrZero reads an integer stored by the given key. Missing key is zero.
func GetIntOrZero(ctx storage.Context, key interface{}) int {
	val := storage.Get(ctx, key)
	if val == nil {
		return 0
	}

	return val.(int)
}
