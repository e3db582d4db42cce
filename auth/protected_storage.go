package auth

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/pcap-tools/pcap-sdk-golang/api"
)

var (
	protectedSaltLength = 16
	protectedIterations = 100000
)

// NewProtectedSessionStorage stores the session in an encrypted file. The
// passphrase is stretched with PBKDF2 and the session blob sealed with
// AES-GCM, so a stolen session file is useless without the passphrase.
func NewProtectedSessionStorage(filename string, passphrase string) ISessionStorage {
	if filename == "" {
		filename = "session.dat"
	}
	return NewJsonSessionStorage(&protectedSessionLoader{
		inner: &fileSessionLoader{
			filePath: api.GetPcapFileFullPath(filename),
		},
		passphrase: passphrase,
	})
}

var _ IJsonSessionLoader = &protectedSessionLoader{}

// protectedSessionLoader wraps another loader, sealing payloads as
// salt || nonce || ciphertext.
type protectedSessionLoader struct {
	inner      IJsonSessionLoader
	passphrase string
}

func (pl *protectedSessionLoader) gcm(salt []byte) (gcm cipher.AEAD, err error) {
	key := api.DeriveKeyFromPassphrase(pl.passphrase, salt, protectedIterations)
	var block cipher.Block
	if block, err = aes.NewCipher(key); err != nil {
		return
	}
	return cipher.NewGCM(block)
}

func (pl *protectedSessionLoader) LoadJson() (data []byte, err error) {
	var sealed []byte
	if sealed, err = pl.inner.LoadJson(); err != nil || len(sealed) == 0 {
		return
	}
	if len(sealed) < protectedSaltLength {
		err = api.NewPcapError("stored session is truncated")
		return
	}
	salt := sealed[:protectedSaltLength]
	var gcm cipher.AEAD
	if gcm, err = pl.gcm(salt); err != nil {
		return
	}
	rest := sealed[protectedSaltLength:]
	if len(rest) < gcm.NonceSize() {
		err = api.NewPcapError("stored session is truncated")
		return
	}
	nonce := rest[:gcm.NonceSize()]
	if data, err = gcm.Open(nil, nonce, rest[gcm.NonceSize():], nil); err != nil {
		err = api.NewPcapError("stored session cannot be decrypted: wrong passphrase or corrupt file")
	}
	return
}

func (pl *protectedSessionLoader) StoreJson(data []byte) (err error) {
	var salt []byte
	if salt, err = api.GetRandomBytes(protectedSaltLength); err != nil {
		return
	}
	var gcm cipher.AEAD
	if gcm, err = pl.gcm(salt); err != nil {
		return
	}
	var nonce []byte
	if nonce, err = api.GetRandomBytes(gcm.NonceSize()); err != nil {
		return
	}
	sealed := append(salt, nonce...)
	sealed = gcm.Seal(sealed, nonce, data, nil)
	return pl.inner.StoreJson(sealed)
}
