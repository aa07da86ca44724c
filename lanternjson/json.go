package lanternjson

import (
	"io"
	"runtime"

	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
)

// Sonic only ships its assembly fast paths for linux/amd64; everything else
// falls back to jsoniter.
const UseSonic = runtime.GOARCH == "amd64" && runtime.GOOS == "linux"

func Unmarshal(data []byte, v any) error {
	if UseSonic {
		return sonic.Unmarshal(data, v)
	}

	return jsoniter.Unmarshal(data, v)
}

func UnmarshalReader(reader io.Reader, v any) error {
	if UseSonic {
		return sonic.ConfigDefault.NewDecoder(reader).Decode(v)
	}

	return jsoniter.NewDecoder(reader).Decode(v)
}

func Marshal(v any) ([]byte, error) {
	if UseSonic {
		return sonic.Marshal(v)
	}

	return jsoniter.Marshal(v)
}

func MarshalToWriter(writer io.Writer, v any) error {
	if UseSonic {
		return sonic.ConfigDefault.NewEncoder(writer).Encode(v)
	}

	return jsoniter.NewEncoder(writer).Encode(v)
}
