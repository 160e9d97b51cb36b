package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// GetFileHash calculates the SHA-256 hash of a file's content.
// Returns ErrExpectedFile if the path is a directory.
func GetFileHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameContent reports whether a and b hold byte-identical content.
// Files of different sizes are never hashed.
func SameContent(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	if ai.Size() != bi.Size() {
		return false, nil
	}
	ah, err := GetFileHash(a)
	if err != nil {
		return false, err
	}
	bh, err := GetFileHash(b)
	if err != nil {
		return false, err
	}
	return ah == bh, nil
}
