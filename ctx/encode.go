package ctx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"

	"tabmend/types"
)

// EncodeBundle serializes a bundle as brotli-compressed JSON, the wire format
// handed to the prompt layer. Compression quality 1 favors speed.
func EncodeBundle(bundle *types.Bundle) ([]byte, error) {
	jsonData, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}

	var compressed bytes.Buffer
	writer := brotli.NewWriterLevel(&compressed, 1)
	if _, err := writer.Write(jsonData); err != nil {
		return nil, fmt.Errorf("failed to compress bundle: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close brotli writer: %w", err)
	}

	return compressed.Bytes(), nil
}

// DecodeBundle reverses EncodeBundle.
func DecodeBundle(data []byte) (*types.Bundle, error) {
	reader := brotli.NewReader(bytes.NewReader(data))
	jsonData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress bundle: %w", err)
	}

	var bundle types.Bundle
	if err := json.Unmarshal(jsonData, &bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle: %w", err)
	}
	return &bundle, nil
}
