package cookies

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"gotest.tools/assert"
)

var testUrl = &url.URL{Scheme: "https", Host: "home.example.com"}

func responseWithCookies(values ...string) *http.Response {
	header := http.Header{}
	for _, v := range values {
		header.Add("Set-Cookie", v)
	}
	return &http.Response{Header: header}
}

func TestEphemeralCookiesNeverEnterJar(t *testing.T) {
	jar := NewJar("home.example.com")
	jar.UpdateFromResponse(testUrl, responseWithCookies(
		"incap_ses_123=abc",
		"nlbi_456=def",
		"AWSALB=ghi",
		"PMData=keep-me",
	))

	assert.Equal(t, len(jar.Cookies()), 1)
	assert.Equal(t, jar.Header(), "PMData=keep-me")
}

func TestUpdateOverwritesSameCookie(t *testing.T) {
	jar := NewJar("home.example.com")
	jar.UpdateFromResponse(testUrl, responseWithCookies("JSESSIONID=first"))
	jar.UpdateFromResponse(testUrl, responseWithCookies("JSESSIONID=second"))

	assert.Equal(t, len(jar.Cookies()), 1)
	assert.Equal(t, jar.Header(), "JSESSIONID=second")
}

func TestNegativeMaxAgeRemovesCookie(t *testing.T) {
	jar := NewJar("home.example.com")
	jar.UpdateFromResponse(testUrl, responseWithCookies("JSESSIONID=abc"))
	jar.UpdateFromResponse(testUrl, responseWithCookies("JSESSIONID=gone; Max-Age=-1"))

	assert.Equal(t, len(jar.Cookies()), 0)
}

func TestExpiredCookieKeptButNotAttached(t *testing.T) {
	jar := NewJar("home.example.com")
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	jar.UpdateFromResponse(testUrl, responseWithCookies(
		"stale=old; Expires="+past,
		"fresh=new",
	))

	assert.Equal(t, len(jar.Cookies()), 2)
	assert.Equal(t, jar.Header(), "fresh=new")
}

func TestForeignDomainRejected(t *testing.T) {
	jar := NewJar("home.example.com")
	jar.UpdateFromResponse(testUrl, responseWithCookies(
		"evil=1; Domain=other.com",
		"suffix=1; Domain=com",
		"ok=1; Domain=example.com",
	))

	assert.Equal(t, len(jar.Cookies()), 1)
	assert.Equal(t, jar.Header(), "ok=1")
}

func TestHeaderIsNameSorted(t *testing.T) {
	jar := NewJar("home.example.com")
	jar.UpdateFromResponse(testUrl, responseWithCookies("zeta=2", "alpha=1"))

	assert.Equal(t, jar.Header(), "alpha=1; zeta=2")
}

func TestSnapshotRoundTrip(t *testing.T) {
	jar := NewJar("home.example.com")
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	jar.UpdateFromResponse(testUrl, responseWithCookies(
		"JSESSIONID=abc; Path=/; Secure",
		"PMData=device-token; Domain=example.com",
		"stale=old; Expires="+past,
	))

	snapshot, err := jar.Serialize()
	assert.NilError(t, err)

	restored, err := NewJarFromSnapshot("home.example.com", snapshot)
	assert.NilError(t, err)
	assert.DeepEqual(t, restored.Cookies(), jar.Cookies())
	assert.Equal(t, restored.Header(), jar.Header())
}

func TestSnapshotRestoreSkipsEphemeral(t *testing.T) {
	snapshot := []byte(`[
		{"name":"incap_ses_99","value":"x","domain":"home.example.com","path":"/"},
		{"name":"PMData","value":"y","domain":"home.example.com","path":"/"}
	]`)
	jar, err := NewJarFromSnapshot("home.example.com", snapshot)
	assert.NilError(t, err)
	assert.Equal(t, len(jar.Cookies()), 1)
	assert.Equal(t, jar.Cookies()[0].Name, "PMData")
}

func TestCorruptSnapshotFails(t *testing.T) {
	_, err := NewJarFromSnapshot("home.example.com", []byte("{not json"))
	assert.Assert(t, err != nil)
}

func TestIsEphemeral(t *testing.T) {
	assert.Assert(t, IsEphemeral("incap_ses_473_2129239"))
	assert.Assert(t, IsEphemeral("nlbi_2129239"))
	assert.Assert(t, IsEphemeral("AWSALBCORS"))
	assert.Assert(t, !IsEphemeral("JSESSIONID"))
}
