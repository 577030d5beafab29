package plugins

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Codec compresses stored data.
type Codec interface {
	Name() string
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// CodecByName returns the codec with the name passed: zstd, brotli or none.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "zstd":
		return zstdCodec{}, nil
	case "brotli":
		return brotliCodec{}, nil
	case "none":
		return noneCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

type zstdCodec struct{}

func (zstdCodec) Name() string { return "zstd" }

func (zstdCodec) Encode(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func (zstdCodec) Decode(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

type brotliCodec struct{}

func (brotliCodec) Name() string { return "brotli" }

func (brotliCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (brotliCodec) Decode(data []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
}

type noneCodec struct{}

func (noneCodec) Name() string { return "none" }

func (noneCodec) Encode(data []byte) ([]byte, error) { return append([]byte(nil), data...), nil }

func (noneCodec) Decode(data []byte) ([]byte, error) { return append([]byte(nil), data...), nil }
