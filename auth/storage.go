package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pcap-tools/pcap-sdk-golang/api"
)

// ISessionStorage persists the two pieces of session state that survive a
// process restart: the CSRF token and an opaque cookie snapshot. Absent
// values mean "start a fresh session"; writes are last-write-wins.
type ISessionStorage interface {
	LoadCsrf() (string, error)
	StoreCsrf(string) error
	LoadCookies() ([]byte, error)
	StoreCookies([]byte) error
}

// IJsonSessionLoader abstracts where the serialized session blob lives so
// storage backends (plain file, encrypted file) stay interchangeable.
type IJsonSessionLoader interface {
	LoadJson() ([]byte, error)
	StoreJson([]byte) error
}

var (
	_ ISessionStorage = &inMemorySessionStorage{}
	_ ISessionStorage = &jsonSessionStorage{}
)

type inMemorySessionStorage struct {
	csrf    string
	cookies []byte
}

func NewInMemorySessionStorage() ISessionStorage {
	return &inMemorySessionStorage{}
}

func (ms *inMemorySessionStorage) LoadCsrf() (string, error) {
	return ms.csrf, nil
}
func (ms *inMemorySessionStorage) StoreCsrf(token string) error {
	ms.csrf = token
	return nil
}
func (ms *inMemorySessionStorage) LoadCookies() ([]byte, error) {
	return ms.cookies, nil
}
func (ms *inMemorySessionStorage) StoreCookies(snapshot []byte) error {
	ms.cookies = make([]byte, len(snapshot))
	copy(ms.cookies, snapshot)
	return nil
}

type sessionFile struct {
	Csrf    string `json:"csrf,omitempty"`
	Cookies []byte `json:"cookies,omitempty"`
}

type jsonSessionStorage struct {
	loader IJsonSessionLoader
}

// NewJsonSessionStorage wraps a loader into session storage. Each write
// re-reads the current blob first so csrf and cookie updates do not
// clobber each other.
func NewJsonSessionStorage(loader IJsonSessionLoader) ISessionStorage {
	return &jsonSessionStorage{
		loader: loader,
	}
}

// NewFileSessionStorage stores the session in a JSON file, by default
// ~/.pcap/session.json.
func NewFileSessionStorage(filename string) ISessionStorage {
	if filename == "" {
		filename = "session.json"
	}
	return NewJsonSessionStorage(&fileSessionLoader{
		filePath: api.GetPcapFileFullPath(filename),
	})
}

func (js *jsonSessionStorage) read() (sf *sessionFile, err error) {
	sf = new(sessionFile)
	var data []byte
	if data, err = js.loader.LoadJson(); err != nil {
		return
	}
	if len(data) > 0 {
		if err = json.Unmarshal(data, sf); err != nil {
			err = api.NewPcapError(fmt.Sprintf("parse stored session: %v", err))
		}
	}
	return
}

func (js *jsonSessionStorage) write(sf *sessionFile) (err error) {
	var data []byte
	if data, err = json.MarshalIndent(sf, "", "  "); err == nil {
		err = js.loader.StoreJson(data)
	}
	return
}

func (js *jsonSessionStorage) LoadCsrf() (token string, err error) {
	var sf *sessionFile
	if sf, err = js.read(); err == nil {
		token = sf.Csrf
	}
	return
}

func (js *jsonSessionStorage) StoreCsrf(token string) (err error) {
	var sf *sessionFile
	if sf, err = js.read(); err != nil {
		sf = new(sessionFile)
	}
	sf.Csrf = token
	return js.write(sf)
}

func (js *jsonSessionStorage) LoadCookies() (snapshot []byte, err error) {
	var sf *sessionFile
	if sf, err = js.read(); err == nil {
		snapshot = sf.Cookies
	}
	return
}

func (js *jsonSessionStorage) StoreCookies(snapshot []byte) (err error) {
	var sf *sessionFile
	if sf, err = js.read(); err != nil {
		sf = new(sessionFile)
	}
	sf.Cookies = snapshot
	return js.write(sf)
}

type fileSessionLoader struct {
	filePath string
}

func (fl *fileSessionLoader) LoadJson() (data []byte, err error) {
	if _, err = os.Stat(fl.filePath); err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return
	}
	return os.ReadFile(fl.filePath)
}

func (fl *fileSessionLoader) StoreJson(data []byte) error {
	return os.WriteFile(fl.filePath, data, 0600)
}
