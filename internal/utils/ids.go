package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	IDSize     = 21
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoID returns a url safe identifier of IDSize characters.
func NanoID() string {
	return NanoIDSize(IDSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = IDSize
	}

	return gonanoid.MustGenerate(idAlphabet, size)
}

// ShortID trims an identifier for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
