package api

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

var DefaultKeyLength = 32

func GetRandomBytes(size int) (data []byte, err error) {
	data = make([]byte, size)
	_, err = rand.Read(data)
	return
}

// DeriveKeyFromPassphrase stretches a user passphrase into an AES key.
func DeriveKeyFromPassphrase(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, DefaultKeyLength, sha256.New)
}
