package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/assert"

	"github.com/pcap-tools/pcap-sdk-golang/api"
)

const (
	testCsrfToken   = "11111111-2222-3333-4444-555555555555"
	testSessionCsrf = "66666666-7777-8888-9999-000000000000"
	testCode        = "1234"
	testLoginPage   = "<html><script>var a=1;globals.csrf='" + testCsrfToken + "';</script></html>"
)

type scriptedTwoFactor struct {
	code      string
	getCalls  int
	lastEcho  *bool
	challenge bool
}

func newScriptedTwoFactor(code string) *scriptedTwoFactor {
	return &scriptedTwoFactor{code: code, challenge: true}
}

func (sp *scriptedTwoFactor) ShouldChallenge() bool {
	return sp.challenge
}
func (sp *scriptedTwoFactor) GetCode() (string, error) {
	sp.getCalls++
	return sp.code, nil
}
func (sp *scriptedTwoFactor) SetStatus(success bool) {
	sp.lastEcho = &success
}

func writeEnvelope(w http.ResponseWriter, level string, spData string, errs ...api.SpError) {
	envelope := map[string]interface{}{
		"spHeader": api.SpHeader{
			SpHeaderVersion: 1,
			Success:         len(errs) == 0,
			AuthLevel:       level,
			Csrf:            testSessionCsrf,
			Errors:          errs,
		},
	}
	if spData != "" {
		envelope["spData"] = json.RawMessage(spData)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope)
}

// fakeService emulates the remote login flow: CSRF page, identify,
// email challenge, code check, password check.
type fakeService struct {
	t              *testing.T
	identifyLevel  string
	userStatus     string
	challengeCalls int
	pageCalls      int
}

func (fs *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fs.pageCalls++
		_, _ = fmt.Fprint(w, testLoginPage)
	})
	mux.HandleFunc(identifyUserPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(fs.t, r.PostFormValue("apiClient"), "WEB")
		assert.Equal(fs.t, r.PostFormValue("csrf"), testCsrfToken)
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "session-cookie"})
		writeEnvelope(w, fs.identifyLevel,
			fmt.Sprintf(`{"userStatus":%q,"credentials":["PASSWORD"],"allCredentials":[]}`, fs.userStatus))
	})
	mux.HandleFunc(challengeEmailPath, func(w http.ResponseWriter, r *http.Request) {
		fs.challengeCalls++
		assert.Equal(fs.t, r.PostFormValue("challengeReason"), "DEVICE_AUTH")
		assert.Equal(fs.t, r.PostFormValue("challengeMethod"), "OP")
		assert.Equal(fs.t, r.PostFormValue("challengeType"), "2")
		writeEnvelope(w, "USER_IDENTIFIED", "")
	})
	mux.HandleFunc(authenticateEmailPath, func(w http.ResponseWriter, r *http.Request) {
		if r.PostFormValue("code") == testCode {
			writeEnvelope(w, "DEVICE_AUTHORIZED", "")
		} else {
			writeEnvelope(w, "USER_IDENTIFIED", "",
				api.SpError{Code: 400, Message: "incorrect code"})
		}
	})
	mux.HandleFunc(authenticatePasswordPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(fs.t, r.PostFormValue("bindDevice"), "true")
		assert.Equal(fs.t, r.PostFormValue("deviceName"), "unit-test")
		if r.PostFormValue("passwd") == "hunter2" {
			body := `{"credentials":["PASSWORD"]}`
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintf(w, `{"spHeader":{"SP_HEADER_VERSION":1,"success":true,`+
				`"authLevel":"SESSION_AUTHENTICATED","csrf":%q,`+
				`"SP_DATA_CHANGES":[{"serverChangeId":7,"details":{},"eventType":"REFRESH"}]},`+
				`"spData":%s}`, testSessionCsrf, body)
		} else {
			writeEnvelope(w, "NONE", "")
		}
	})
	return mux
}

func newTestClient(t *testing.T, baseUrl string, provider ITwoFactorProvider,
	storage ISessionStorage) *Client {
	if provider == nil {
		provider = newScriptedTwoFactor(testCode)
	}
	client, err := NewClient(ClientConfig{
		Username:         "user@example.com",
		Password:         "hunter2",
		DeviceName:       "unit-test",
		BaseUrl:          baseUrl,
		Storage:          storage,
		TwoFactor:        provider,
		TwoFactorChannel: TwoFactorChannel_Email,
	})
	assert.NilError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	var ue *api.UsageError
	_, err := NewClient(ClientConfig{Password: "p", DeviceName: "d"})
	assert.Assert(t, errors.As(err, &ue))
	_, err = NewClient(ClientConfig{Username: "u", DeviceName: "d"})
	assert.Assert(t, errors.As(err, &ue))
	_, err = NewClient(ClientConfig{Username: "u", Password: "p"})
	assert.Assert(t, errors.As(err, &ue))
}

func TestLoginFullFlow(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	provider := newScriptedTwoFactor(testCode)
	storage := NewInMemorySessionStorage()
	client := newTestClient(t, server.URL, provider, storage)

	assert.NilError(t, client.Login())
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_SessionAuthenticated)
	assert.Equal(t, fs.challengeCalls, 1)
	assert.Equal(t, provider.getCalls, 1)
	assert.Assert(t, provider.lastEcho != nil && *provider.lastEcho)

	// The rotated header token replaced the scraped one and was persisted.
	assert.Equal(t, client.Csrf(), testSessionCsrf)
	stored, err := storage.LoadCsrf()
	assert.NilError(t, err)
	assert.Equal(t, stored, testSessionCsrf)

	// The change cursor advanced from the password response header.
	assert.Equal(t, client.LastServerChangeId(), int64(7))
}

func TestLoginRememberedDeviceSkipsChallenge(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_REMEMBERED", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	provider := newScriptedTwoFactor(testCode)
	client := newTestClient(t, server.URL, provider, nil)

	assert.NilError(t, client.Login())
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_SessionAuthenticated)
	assert.Equal(t, fs.challengeCalls, 0)
	assert.Equal(t, provider.getCalls, 0)
}

func TestLoginWithPreSuppliedCodeSkipsChallengeOnly(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	// The provider already holds a code: no challenge request, but the
	// code is still collected and submitted.
	provider := newScriptedTwoFactor(testCode)
	provider.challenge = false
	client := newTestClient(t, server.URL, provider, nil)

	assert.NilError(t, client.Login())
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_SessionAuthenticated)
	assert.Equal(t, fs.challengeCalls, 0)
	assert.Equal(t, provider.getCalls, 1)
}

func TestLoginFailsWhenIdentifyAnswersNone(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "NONE", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	err := client.Login()
	assert.Assert(t, err != nil)
	// Server-side rejection, not caller misuse.
	var ue *api.UsageError
	assert.Assert(t, !errors.As(err, &ue))
	assert.Equal(t, err.Error(), "the service rejected the login")
}

func TestIdentifyRejectsInactiveUser(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "INACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	assert.NilError(t, client.EnsureCsrf())

	err := client.IdentifyUser()
	var iue *api.InactiveUserError
	assert.Assert(t, errors.As(err, &iue))
	assert.Equal(t, iue.Username(), "user@example.com")
	// The header was still applied before the payload check failed.
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_UserIdentified)
}

func TestWrongCodeSurfacesApiError(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	provider := newScriptedTwoFactor("9999")
	client := newTestClient(t, server.URL, provider, nil)

	err := client.Login()
	var ae *api.PcapApiError
	assert.Assert(t, errors.As(err, &ae))
	assert.Equal(t, ae.Code(), int64(400))
	assert.Assert(t, provider.lastEcho != nil && !*provider.lastEcho)
}

func TestSessionInvalidOn202(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fake/endpoint", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "SESSION_AUTHENTICATED", "",
			api.SpError{Code: 202, Message: "session expired"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	client.authLevel = api.AuthLevel_SessionAuthenticated

	_, err := client.ExecuteApi("/api/fake/endpoint", nil, nil)
	var sie *api.SessionInvalidError
	assert.Assert(t, errors.As(err, &sie))
}

func TestAuthLevelRegressionInvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fake/endpoint", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "USER_IDENTIFIED", "")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	client.authLevel = api.AuthLevel_SessionAuthenticated

	_, err := client.ExecuteApi("/api/fake/endpoint", nil, nil)
	var sie *api.SessionInvalidError
	assert.Assert(t, errors.As(err, &sie))
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_UserIdentified)
}

func TestUnknownAuthLevelIsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fake/endpoint", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "SUPER_AUTHENTICATED", "")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	_, err := client.ExecuteApi("/api/fake/endpoint", nil, nil)
	var ale *api.AuthLevelError
	assert.Assert(t, errors.As(err, &ale))
	assert.Equal(t, ale.Level(), "SUPER_AUTHENTICATED")
}

func TestEnsureCsrfScrapesOnce(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "ACTIVE"}
	server := httptest.NewServer(fs.handler())
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	assert.NilError(t, client.EnsureCsrf())
	assert.Equal(t, client.Csrf(), testCsrfToken)
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_Csrf)

	assert.NilError(t, client.EnsureCsrf())
	assert.Equal(t, fs.pageCalls, 1)
}

func TestEnsureCsrfUsesStoredToken(t *testing.T) {
	storage := NewInMemorySessionStorage()
	assert.NilError(t, storage.StoreCsrf(testCsrfToken))

	// No server: a network call would fail the test.
	client := newTestClient(t, "http://127.0.0.1:1", nil, storage)
	assert.NilError(t, client.EnsureCsrf())
	assert.Equal(t, client.Csrf(), testCsrfToken)
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_Csrf)
}

func TestEnsureCsrfFailsWithoutToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html>maintenance page</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(t, server.URL, nil, nil)
	err := client.EnsureCsrf()
	assert.Assert(t, err != nil)
	assert.Equal(t, client.AuthLevel(), api.AuthLevel_Null)
}

func TestTwoFactorBeforeIdentifyIsUsageError(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", nil, nil)
	var ue *api.UsageError
	assert.Assert(t, errors.As(client.TwoFactorChallenge(), &ue))
	assert.Assert(t, errors.As(client.TwoFactorAuthenticate(testCode), &ue))
	_, err := client.AuthenticatePassword()
	assert.Assert(t, errors.As(err, &ue))
}

func TestCookiesSurviveRestart(t *testing.T) {
	fs := &fakeService{t: t, identifyLevel: "USER_IDENTIFIED", userStatus: "ACTIVE"}
	mux := http.NewServeMux()
	var receivedCookie string
	mux.Handle("/", fs.handler())
	mux.HandleFunc("/api/fake/endpoint", func(w http.ResponseWriter, r *http.Request) {
		receivedCookie = r.Header.Get("Cookie")
		writeEnvelope(w, "SESSION_AUTHENTICATED", "")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	storage := NewInMemorySessionStorage()
	client := newTestClient(t, server.URL, nil, storage)
	assert.NilError(t, client.EnsureCsrf())
	assert.NilError(t, client.IdentifyUser())

	// A second client over the same storage carries the session cookie.
	restarted := newTestClient(t, server.URL, nil, storage)
	restarted.authLevel = api.AuthLevel_SessionAuthenticated
	_, err := restarted.ExecuteApi("/api/fake/endpoint", nil, nil)
	assert.NilError(t, err)
	assert.Equal(t, receivedCookie, "JSESSIONID=session-cookie")
}
