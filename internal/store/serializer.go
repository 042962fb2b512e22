package store

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Serializer controls how a FileStore turns values into bytes and back.
// The default is pretty-printed JSON with two-space indentation; callers
// may inject a compact or custom serializer via store.FileStoreOption.
// Record checksums are always computed over canonical JSON regardless of
// which Serializer a store uses to persist the file to disk.
type Serializer struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

// DefaultSerializer pretty-prints JSON with two-space indentation.
func DefaultSerializer() Serializer {
	return Serializer{
		Marshal: func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		Unmarshal: json.Unmarshal,
	}
}

// YAMLSerializer persists records as YAML, for projects that want
// diff-friendly, human-editable record files on disk.
func YAMLSerializer() Serializer {
	return Serializer{
		Marshal:   yaml.Marshal,
		Unmarshal: yaml.Unmarshal,
	}
}

// SerializerFor resolves a config.StoreConfig.Serializer name ("json" or
// "yaml") to a Serializer, falling back to DefaultSerializer for an unknown
// or empty name.
func SerializerFor(name string) Serializer {
	switch name {
	case "yaml":
		return YAMLSerializer()
	default:
		return DefaultSerializer()
	}
}
