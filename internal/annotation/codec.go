package annotation

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Encode serializes an annotation for storage
func Encode(a models.TripAnnotation) ([]byte, error) {
	raw, err := msgpack.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotation: %w", err)
	}
	return raw, nil
}

// Decode parses a stored annotation
func Decode(raw []byte) (models.TripAnnotation, error) {
	var a models.TripAnnotation
	if err := msgpack.Unmarshal(raw, &a); err != nil {
		return models.TripAnnotation{}, fmt.Errorf("failed to decode annotation: %w", err)
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}
