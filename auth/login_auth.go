package auth

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pcap-tools/pcap-sdk-golang/api"
	"github.com/pcap-tools/pcap-sdk-golang/cookies"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var csrfPattern = regexp.MustCompile(`globals\.csrf='([a-f0-9-]+)'`)

// PasswordResult is the outcome of a password authentication attempt that
// did not fail outright.
type PasswordResult int32

const (
	PasswordResult_Authenticated PasswordResult = iota
	PasswordResult_TwoFactorPending
)

// ClientConfig carries everything a Client needs. It is consumed once by
// NewClient; later mutation has no effect on the created client.
type ClientConfig struct {
	Username   string
	Password   string
	DeviceName string

	// BaseUrl overrides the production service URL, mainly for tests.
	BaseUrl string

	// Storage persists the CSRF token and cookies between runs. Defaults
	// to in-memory storage, which keeps nothing across restarts.
	Storage ISessionStorage

	// TwoFactor supplies device authorization codes. Defaults to a
	// console prompt.
	TwoFactor        ITwoFactorProvider
	TwoFactorChannel TwoFactorChannel

	HttpClient *http.Client
}

// Client is a session with the service. It tracks the auth level the
// server last reported and refuses operations the current level does not
// permit. A Client serializes nothing internally: callers must not issue
// overlapping calls from multiple goroutines.
type Client struct {
	httpClient *http.Client
	baseUrl    *url.URL

	username   string
	password   string
	deviceName string

	storage          ISessionStorage
	twoFactor        ITwoFactorProvider
	twoFactorChannel TwoFactorChannel

	csrf               string
	authLevel          api.AuthLevel
	jar                *cookies.Jar
	lastServerChangeId int64
}

// NewClient validates the configuration, restores any persisted session
// state, and returns a client at the Null (or restored) auth level.
func NewClient(config ClientConfig) (client *Client, err error) {
	if config.Username == "" {
		return nil, api.NewUsageError("username is required")
	}
	if config.Password == "" {
		return nil, api.NewUsageError("password is required")
	}
	if config.DeviceName == "" {
		return nil, api.NewUsageError("device name is required")
	}

	baseUrl := config.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	var u *url.URL
	if u, err = url.Parse(baseUrl); err != nil {
		return nil, api.NewUsageError(fmt.Sprintf("invalid base URL %q: %v", baseUrl, err))
	}

	storage := config.Storage
	if storage == nil {
		storage = NewInMemorySessionStorage()
	}
	twoFactor := config.TwoFactor
	if twoFactor == nil {
		twoFactor = NewConsoleTwoFactorProvider()
	}
	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client = &Client{
		httpClient:         httpClient,
		baseUrl:            u,
		username:           config.Username,
		password:           config.Password,
		deviceName:         config.DeviceName,
		storage:            storage,
		twoFactor:          twoFactor,
		twoFactorChannel:   config.TwoFactorChannel,
		authLevel:          api.AuthLevel_Null,
		lastServerChangeId: -1,
	}

	var snapshot []byte
	if snapshot, err = storage.LoadCookies(); err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		var jar *cookies.Jar
		if jar, err = cookies.NewJarFromSnapshot(u.Hostname(), snapshot); err != nil {
			api.GetLogger().Warn("discarding unreadable cookie snapshot", zap.Error(err))
			jar = cookies.NewJar(u.Hostname())
			err = nil
		}
		client.jar = jar
	} else {
		client.jar = cookies.NewJar(u.Hostname())
	}
	return
}

func (c *Client) Username() string {
	return c.username
}

func (c *Client) AuthLevel() api.AuthLevel {
	return c.authLevel
}

func (c *Client) Csrf() string {
	return c.csrf
}

// LastServerChangeId is the high-water mark of server change ids observed
// so far, or -1 before any change has been seen.
func (c *Client) LastServerChangeId() int64 {
	return c.lastServerChangeId
}

func (c *Client) endpointUrl(path string) string {
	u := *c.baseUrl
	u.Path = path
	return u.String()
}

// executeRaw performs one HTTP exchange: it attaches the stored cookies,
// folds response cookies back into the jar, and persists the jar.
func (c *Client) executeRaw(req *http.Request) (body []byte, err error) {
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", defaultUserAgent)
	if header := c.jar.Header(); header != "" {
		req.Header.Set("Cookie", header)
	}

	var rs *http.Response
	if rs, err = c.httpClient.Do(req); err != nil {
		return
	}
	defer func() {
		_ = rs.Body.Close()
	}()

	if rs.StatusCode < 200 || rs.StatusCode >= 300 {
		err = api.NewPcapError(fmt.Sprintf("%s %s returned HTTP %s", req.Method, req.URL.Path, rs.Status))
		return
	}

	c.jar.UpdateFromResponse(req.URL, rs)
	if snapshot, se := c.jar.Serialize(); se != nil {
		api.GetLogger().Warn("serialize cookies", zap.Error(se))
	} else if se = c.storage.StoreCookies(snapshot); se != nil {
		api.GetLogger().Warn("store cookies", zap.Error(se))
	}

	return io.ReadAll(rs.Body)
}

// executeApi posts a form to an API endpoint and runs the response through
// the session bookkeeping pipeline before handing the payload to the
// caller. Session state (CSRF token, auth level, change cursor) is updated
// even when the call ultimately fails.
func (c *Client) executeApi(path string, params url.Values, payload interface{}) (header *api.SpHeader, err error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("csrf", c.csrf)
	params.Set("apiClient", "WEB")

	var req *http.Request
	if req, err = http.NewRequest(http.MethodPost, c.endpointUrl(path),
		strings.NewReader(params.Encode())); err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body []byte
	if body, err = c.executeRaw(req); err != nil {
		return
	}

	var envelope *api.Envelope
	if envelope, err = api.DecodeResponse(body); err != nil {
		return
	}
	header = &envelope.SpHeader

	if header.Csrf != "" && header.Csrf != c.csrf {
		c.csrf = header.Csrf
		if se := c.storage.StoreCsrf(c.csrf); se != nil {
			api.GetLogger().Warn("store csrf token", zap.Error(se))
		}
	}

	var level api.AuthLevel
	if level, err = api.ParseAuthLevel(header.AuthLevel); err != nil {
		return
	}
	if c.authLevel == api.AuthLevel_SessionAuthenticated && level != api.AuthLevel_SessionAuthenticated {
		c.authLevel = level
		err = api.NewSessionInvalidError(fmt.Sprintf("auth level dropped to %s", level))
		return
	}
	c.authLevel = level

	if cursor := header.MaxServerChangeId(); cursor > c.lastServerChangeId {
		c.lastServerChangeId = cursor
	}

	if err = header.HeaderError(); err != nil {
		return
	}

	if payload != nil && len(envelope.SpData) > 0 && string(envelope.SpData) != "null" {
		err = api.DecodeData(envelope.SpData, payload)
	}
	return
}

// ExecuteApi performs an authenticated endpoint call. Bindings built on
// top of the client go through here.
func (c *Client) ExecuteApi(path string, params url.Values, payload interface{}) (*api.SpHeader, error) {
	return c.executeApi(path, params, payload)
}

// ExecuteApiRead is ExecuteApi for read endpoints, which carry the change
// cursor so the server can report what changed since the last call.
func (c *Client) ExecuteApiRead(path string, params url.Values, payload interface{}) (*api.SpHeader, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("lastServerChangeId", strconv.FormatInt(c.lastServerChangeId, 10))
	return c.executeApi(path, params, payload)
}

// EnsureCsrf obtains the anonymous CSRF token the service plants in its
// login page. A token already held (in memory or in storage) is reused
// without a network call.
func (c *Client) EnsureCsrf() (err error) {
	if c.csrf != "" {
		if c.authLevel == api.AuthLevel_Null {
			c.authLevel = api.AuthLevel_Csrf
		}
		return nil
	}

	var stored string
	if stored, err = c.storage.LoadCsrf(); err != nil {
		return
	}
	if stored != "" {
		c.csrf = stored
		if c.authLevel == api.AuthLevel_Null {
			c.authLevel = api.AuthLevel_Csrf
		}
		return nil
	}

	var req *http.Request
	if req, err = http.NewRequest(http.MethodGet, c.baseUrl.String(), nil); err != nil {
		return
	}
	var body []byte
	if body, err = c.executeRaw(req); err != nil {
		return
	}
	m := csrfPattern.FindSubmatch(body)
	if m == nil {
		return api.NewPcapError("no CSRF token found in the login page")
	}
	c.csrf = string(m[1])
	if se := c.storage.StoreCsrf(c.csrf); se != nil {
		api.GetLogger().Warn("store csrf token", zap.Error(se))
	}
	c.authLevel = api.AuthLevel_Csrf
	return nil
}

// IdentifyUser tells the service which user is signing in. On success the
// server answers with UserIdentified, or UserRemembered when it already
// trusts this device.
func (c *Client) IdentifyUser() (err error) {
	if c.csrf == "" {
		return api.NewUsageError("no CSRF token: call EnsureCsrf first")
	}
	var data IdentifyUserData
	if _, err = c.executeApi(identifyUserPath, identifyUserParams(c.username), &data); err != nil {
		return
	}
	if data.UserStatus == userStatusInactive {
		return api.NewInactiveUserError(c.username)
	}
	return
}

// TwoFactorChallenge asks the service to deliver a verification code over
// the configured channel. It is a no-op when the device is already
// remembered.
func (c *Client) TwoFactorChallenge() (err error) {
	switch c.authLevel {
	case api.AuthLevel_UserRemembered:
		return nil
	case api.AuthLevel_UserIdentified:
	default:
		return api.NewUsageError("two-factor challenge requires an identified user")
	}
	_, err = c.executeApi(challengePath(c.twoFactorChannel), twoFactorChallengeParams(c.twoFactorChannel), nil)
	return
}

// TwoFactorAuthenticate submits a verification code. On success the server
// reports DeviceAuthorized.
func (c *Client) TwoFactorAuthenticate(code string) (err error) {
	switch c.authLevel {
	case api.AuthLevel_UserRemembered:
		return nil
	case api.AuthLevel_UserIdentified:
	default:
		return api.NewUsageError("two-factor authentication requires an identified user")
	}
	_, err = c.executeApi(authenticateCodePath(c.twoFactorChannel), twoFactorAuthenticateParams(code), nil)
	return
}

// AuthenticatePassword submits the password and binds the device. The
// result distinguishes a fully authenticated session from the server
// demanding another round of two-factor.
func (c *Client) AuthenticatePassword() (result PasswordResult, err error) {
	switch c.authLevel {
	case api.AuthLevel_UserRemembered, api.AuthLevel_DeviceAuthorized:
	default:
		return 0, api.NewUsageError("password authentication requires a remembered or authorized device")
	}

	var data AuthenticatePasswordData
	if _, err = c.executeApi(authenticatePasswordPath,
		authenticatePasswordParams(c.password, c.deviceName), &data); err != nil {
		return
	}

	switch c.authLevel {
	case api.AuthLevel_SessionAuthenticated, api.AuthLevel_UserRemembered:
		result = PasswordResult_Authenticated
	case api.AuthLevel_UserIdentified:
		result = PasswordResult_TwoFactorPending
	case api.AuthLevel_None:
		err = api.NewPcapError("the service rejected the login")
	default:
		err = api.NewAuthLevelError(c.authLevel.String(), "after password authentication")
	}
	return
}

// Login runs the whole sign-in sequence: CSRF token, user identification,
// two-factor device authorization, and password. It is a no-op on an
// already authenticated session.
func (c *Client) Login() (err error) {
	if c.authLevel == api.AuthLevel_SessionAuthenticated {
		return nil
	}
	if err = c.EnsureCsrf(); err != nil {
		return
	}
	if err = c.IdentifyUser(); err != nil {
		return
	}
	if c.authLevel == api.AuthLevel_None {
		return api.NewPcapError("the service rejected the login")
	}
	if err = c.runTwoFactor(); err != nil {
		return
	}

	var result PasswordResult
	if result, err = c.AuthenticatePassword(); err != nil {
		return
	}
	if result == PasswordResult_TwoFactorPending {
		// The server dropped the device trust mid-flight; run another
		// code round before retrying the password.
		if err = c.runTwoFactor(); err != nil {
			return
		}
		if result, err = c.AuthenticatePassword(); err != nil {
			return
		}
	}
	if result != PasswordResult_Authenticated {
		return api.NewAuthLevelError(c.authLevel.String(), "at the end of login")
	}
	if c.authLevel != api.AuthLevel_SessionAuthenticated {
		return api.NewAuthLevelError(c.authLevel.String(), "at the end of login")
	}
	return nil
}

func (c *Client) runTwoFactor() (err error) {
	if c.authLevel != api.AuthLevel_UserIdentified {
		return nil
	}
	if c.twoFactor == nil {
		return api.NewUsageError("the service requires a verification code but no two-factor provider is configured")
	}
	// A provider that already holds a code declines the challenge request;
	// the code itself is still collected and submitted.
	if c.twoFactor.ShouldChallenge() {
		if err = c.TwoFactorChallenge(); err != nil {
			return
		}
	}
	var code string
	if code, err = c.twoFactor.GetCode(); err != nil {
		return
	}
	err = c.TwoFactorAuthenticate(code)
	c.twoFactor.SetStatus(err == nil)
	return
}
