// Package cookies implements the domain-scoped cookie jar the client uses
// for the finance service. It differs from net/http/cookiejar in two ways
// the service requires: known-ephemeral CDN cookies are dropped on arrival,
// and the full retained set (expired included) round-trips through an
// opaque snapshot so device trust survives process restarts.
package cookies

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pcap-tools/pcap-sdk-golang/api"
	"golang.org/x/net/publicsuffix"
)

// Prefixes of cookies that are reissued on every response and are dead on
// arrival. Persisting them churns the store without ever being useful.
var ephemeralPrefixes = []string{
	"incap_ses_",
	"nlbi_",
	"AWSALB",
}

func IsEphemeral(name string) bool {
	for _, prefix := range ephemeralPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HostOnly bool      `json:"hostOnly,omitempty"`
}

// Expired reports whether the cookie has an expiry in the past. Session
// cookies (zero Expires) never expire within a process.
func (c *Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func (c *Cookie) key() string {
	return c.Domain + ";" + c.Path + ";" + c.Name
}

// Jar stores cookies for a single service host.
type Jar struct {
	host    string
	cookies map[string]*Cookie
}

func NewJar(host string) *Jar {
	return &Jar{
		host:    strings.ToLower(host),
		cookies: make(map[string]*Cookie),
	}
}

// NewJarFromSnapshot restores a jar from a snapshot produced by Serialize.
func NewJarFromSnapshot(host string, snapshot []byte) (jar *Jar, err error) {
	jar = NewJar(host)
	if len(snapshot) == 0 {
		return
	}
	var restored []*Cookie
	if err = json.Unmarshal(snapshot, &restored); err != nil {
		err = api.NewPcapError(fmt.Sprintf("restore cookie snapshot: %v", err))
		jar = nil
		return
	}
	for _, c := range restored {
		if IsEphemeral(c.Name) {
			continue
		}
		jar.cookies[c.key()] = c
	}
	return
}

// UpdateFromResponse parses every Set-Cookie header of the response into
// the jar. Ephemeral cookies are skipped entirely; a cookie with a
// negative Max-Age removes its stored counterpart.
func (j *Jar) UpdateFromResponse(u *url.URL, rs *http.Response) {
	var now = time.Now()
	for _, hc := range rs.Cookies() {
		j.setCookie(u, hc, now)
	}
}

func (j *Jar) setCookie(u *url.URL, hc *http.Cookie, now time.Time) {
	if hc.Name == "" || IsEphemeral(hc.Name) {
		return
	}
	var c = &Cookie{
		Name:   hc.Name,
		Value:  hc.Value,
		Secure: hc.Secure,
	}
	if hc.Domain != "" {
		var domain = strings.ToLower(strings.TrimPrefix(hc.Domain, "."))
		if !domainMatch(j.host, domain) {
			return
		}
		// A cookie scoped to a bare public suffix would leak across
		// every site under that suffix; browsers refuse it and so do we.
		if ps, _ := publicsuffix.PublicSuffix(domain); ps == domain {
			return
		}
		c.Domain = domain
	} else {
		c.Domain = hostFromURL(u, j.host)
		c.HostOnly = true
	}
	if hc.Path != "" {
		c.Path = hc.Path
	} else {
		c.Path = "/"
	}
	if hc.MaxAge < 0 {
		delete(j.cookies, c.key())
		return
	}
	if hc.MaxAge > 0 {
		c.Expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
	} else if !hc.Expires.IsZero() {
		c.Expires = hc.Expires
	}
	j.cookies[c.key()] = c
}

// Header builds the Cookie request header value from every unexpired
// cookie, in name order for stable output.
func (j *Jar) Header() string {
	var now = time.Now()
	var attachable = api.SliceWhere(j.Cookies(), func(c *Cookie) bool {
		return !c.Expired(now)
	})
	sort.Slice(attachable, func(i, k int) bool {
		return attachable[i].Name < attachable[k].Name
	})
	return strings.Join(api.SliceSelect(attachable, func(c *Cookie) string {
		return c.Name + "=" + c.Value
	}), "; ")
}

// Cookies returns every retained cookie, expired ones included.
func (j *Jar) Cookies() []*Cookie {
	var all = make([]*Cookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		all = append(all, c)
	}
	sort.Slice(all, func(i, k int) bool {
		return all[i].key() < all[k].key()
	})
	return all
}

// Serialize snapshots the full retained set. Expired-but-not-pruned
// cookies are kept so a restart resumes with exactly the state this jar
// had, not a filtered view of it.
func (j *Jar) Serialize() ([]byte, error) {
	return json.Marshal(j.Cookies())
}

func domainMatch(host string, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func hostFromURL(u *url.URL, fallback string) string {
	if u != nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	return fallback
}
