package api

import (
	"encoding/json"
	"fmt"
)

// Auth levels the service reports in response headers, plus the two client
// side states (Null, Csrf) that exist before the server has said anything.
type AuthLevel int32

const (
	AuthLevel_Null AuthLevel = iota
	AuthLevel_Csrf
	AuthLevel_UserRemembered
	AuthLevel_UserIdentified
	AuthLevel_DeviceAuthorized
	AuthLevel_SessionAuthenticated
	AuthLevel_None
)

func (l AuthLevel) String() string {
	switch l {
	case AuthLevel_Null:
		return "NULL"
	case AuthLevel_Csrf:
		return "CSRF"
	case AuthLevel_UserRemembered:
		return "USER_REMEMBERED"
	case AuthLevel_UserIdentified:
		return "USER_IDENTIFIED"
	case AuthLevel_DeviceAuthorized:
		return "DEVICE_AUTHORIZED"
	case AuthLevel_SessionAuthenticated:
		return "SESSION_AUTHENTICATED"
	case AuthLevel_None:
		return "NONE"
	}
	return fmt.Sprintf("AuthLevel(%d)", int32(l))
}

// ParseAuthLevel maps a header auth level onto the closed set of known
// states. Anything else is an AuthLevelError: the vocabulary is part of
// the remote contract and must never be coerced.
func ParseAuthLevel(level string) (AuthLevel, error) {
	switch level {
	case "USER_REMEMBERED":
		return AuthLevel_UserRemembered, nil
	case "USER_IDENTIFIED":
		return AuthLevel_UserIdentified, nil
	case "DEVICE_AUTHORIZED":
		return AuthLevel_DeviceAuthorized, nil
	case "SESSION_AUTHENTICATED":
		return AuthLevel_SessionAuthenticated, nil
	case "NONE":
		return AuthLevel_None, nil
	}
	return AuthLevel_Null, NewAuthLevelError(level, "not a known server auth level")
}

// SessionInvalidErrorCode is the header error code the service uses to
// declare the session dead.
const SessionInvalidErrorCode int64 = 202

// Envelope is the two-part wrapper every endpoint response uses. SpData
// stays raw until the header has been checked for errors.
type Envelope struct {
	SpHeader SpHeader        `json:"spHeader"`
	SpData   json.RawMessage `json:"spData"`
}

type SpHeader struct {
	SpHeaderVersion  int64            `json:"SP_HEADER_VERSION"`
	UserStage        string           `json:"userStage,omitempty"`
	IsDelegate       *bool            `json:"isDelegate,omitempty"`
	SpDataChanges    []SpDataChange   `json:"SP_DATA_CHANGES,omitempty"`
	BetaTester       *bool            `json:"betaTester,omitempty"`
	AccountsMetaData []string         `json:"accountsMetaData,omitempty"`
	Success          bool             `json:"success"`
	AccountsSummary  *AccountsSummary `json:"accountsSummary,omitempty"`
	QualifiedLead    *bool            `json:"qualifiedLead,omitempty"`
	Developer        *bool            `json:"developer,omitempty"`
	UserGuid         string           `json:"userGuid,omitempty"`
	AuthLevel        string           `json:"authLevel"`
	Username         string           `json:"username,omitempty"`
	Status           string           `json:"status,omitempty"`
	DeviceName       string           `json:"deviceName,omitempty"`
	Csrf             string           `json:"csrf,omitempty"`
	Errors           []SpError        `json:"errors,omitempty"`
	PersonId         *int64           `json:"personId,omitempty"`
}

type SpDataChange struct {
	ServerChangeId int64           `json:"serverChangeId"`
	Details        SpChangeDetails `json:"details"`
	EventType      string          `json:"eventType"`
}

type SpChangeDetails struct {
	Id    *int64 `json:"id,omitempty"`
	Cause string `json:"cause,omitempty"`
}

type SpError struct {
	Code    int64           `json:"code"`
	Details *SpErrorDetails `json:"details,omitempty"`
	Message string          `json:"message"`
}

type SpErrorDetails struct {
	FieldName     string `json:"fieldName,omitempty"`
	OriginalValue string `json:"originalValue,omitempty"`
}

type AccountsSummary struct {
	HasCredit     *bool `json:"hasCredit,omitempty"`
	HasAggregated *bool `json:"hasAggregated,omitempty"`
	HasCash       *bool `json:"hasCash,omitempty"`
	HasInvestment *bool `json:"hasInvestment,omitempty"`
	HasOnUs       *bool `json:"hasOnUs,omitempty"`
}

// HeaderError converts the header error list into the library error
// taxonomy. The first error wins; code 202 is the session-invalid signal
// and gets its own type.
func (h *SpHeader) HeaderError() error {
	if len(h.Errors) == 0 {
		return nil
	}
	var first = h.Errors[0]
	if first.Code == SessionInvalidErrorCode {
		return NewSessionInvalidError(first.Message)
	}
	var fieldName string
	if first.Details != nil {
		fieldName = first.Details.FieldName
	}
	return NewPcapApiError(first.Code, first.Message, fieldName)
}

// MaxServerChangeId returns the largest change cursor in the header, or
// -1 when the header carried none.
func (h *SpHeader) MaxServerChangeId() int64 {
	var max int64 = -1
	for _, c := range h.SpDataChanges {
		if c.ServerChangeId > max {
			max = c.ServerChangeId
		}
	}
	return max
}

// DecodeResponse parses the outer envelope. The payload stays raw.
func DecodeResponse(body []byte) (envelope *Envelope, err error) {
	envelope = new(Envelope)
	if err = json.Unmarshal(body, envelope); err != nil {
		err = wrapDecodeError(err, body)
		envelope = nil
	}
	return
}

// contextWindow is the number of raw payload bytes shown on each side of a
// failing offset. The service's JSON is large and undocumented; without
// the surrounding text a schema mismatch is almost impossible to diagnose.
const contextWindow = 160

// DecodeData forces a raw payload into the caller's expected shape. On
// failure the error carries a bounded slice of the payload text around the
// failing byte.
func DecodeData(data []byte, v interface{}) (err error) {
	if err = json.Unmarshal(data, v); err != nil {
		err = wrapDecodeError(err, data)
	}
	return
}

func wrapDecodeError(err error, raw []byte) error {
	var offset int64 = -1
	switch e := err.(type) {
	case *json.SyntaxError:
		offset = e.Offset
	case *json.UnmarshalTypeError:
		offset = e.Offset
	}
	if offset < 0 {
		return NewPcapError(fmt.Sprintf("decode response: %v", err))
	}
	return NewPcapError(fmt.Sprintf("decode response: %v; near: %q",
		err, JsonContext(raw, offset)))
}

// JsonContext clips a window of the raw text centered on offset. Never
// panics on short inputs or out-of-range offsets.
func JsonContext(raw []byte, offset int64) string {
	if len(raw) == 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}
	var begin = offset - contextWindow
	if begin < 0 {
		begin = 0
	}
	var end = offset + contextWindow
	if end > int64(len(raw)) {
		end = int64(len(raw))
	}
	return string(raw[begin:end])
}
