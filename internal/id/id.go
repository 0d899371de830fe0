package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a prefixed NanoID such as "col-V1StGXR8_Z5jdHi6B-myT".
// Ids are URL-safe so they can travel as path parameters unescaped.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// Generator is the seam stores use to mint ids.
type Generator func(prefix string) (string, error)
