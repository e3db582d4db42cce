package auth

import (
	"net/url"
)

const (
	DefaultBaseUrl = "https://home.personalcapital.com"

	identifyUserPath         = "/api/login/identifyUser"
	challengeSmsPath         = "/api/credential/challengeSms"
	authenticateSmsPath      = "/api/credential/authenticateSmsByCode"
	challengeEmailPath       = "/api/credential/challengeEmail"
	authenticateEmailPath    = "/api/credential/authenticateEmailByCode"
	authenticatePasswordPath = "/api/credential/authenticatePassword"
)

// The service tags identified users who can no longer sign in with this
// status in the identifyUser payload.
const userStatusInactive = "INACTIVE"

func challengePath(channel TwoFactorChannel) string {
	if channel == TwoFactorChannel_Sms {
		return challengeSmsPath
	}
	return challengeEmailPath
}

func authenticateCodePath(channel TwoFactorChannel) string {
	if channel == TwoFactorChannel_Sms {
		return authenticateSmsPath
	}
	return authenticateEmailPath
}

// challengeType is the service's numeric encoding of the delivery channel.
func challengeType(channel TwoFactorChannel) string {
	if channel == TwoFactorChannel_Sms {
		return "0"
	}
	return "2"
}

func identifyUserParams(username string) url.Values {
	return url.Values{
		"bindDevice":      {"false"},
		"skipLinkAccount": {"false"},
		"redirectTo":      {""},
		"skipFirstUse":    {""},
		"referrerId":      {""},
		"username":        {username},
	}
}

func twoFactorChallengeParams(channel TwoFactorChannel) url.Values {
	return url.Values{
		"challengeReason": {"DEVICE_AUTH"},
		"challengeMethod": {"OP"},
		"challengeType":   {challengeType(channel)},
		"bindDevice":      {"false"},
	}
}

func twoFactorAuthenticateParams(code string) url.Values {
	return url.Values{
		"challengeReason": {"DEVICE_AUTH"},
		"challengeMethod": {"OP"},
		"bindDevice":      {"false"},
		"code":            {code},
	}
}

func authenticatePasswordParams(password string, deviceName string) url.Values {
	return url.Values{
		"bindDevice":      {"true"},
		"skipLinkAccount": {"false"},
		"passwd":          {password},
		"deviceName":      {deviceName},
	}
}

// Credential describes one authentication method the service knows for a
// user.
type Credential struct {
	Name       *string `json:"name,omitempty"`
	Status     *string `json:"status,omitempty"`
	CreateDate *string `json:"createDate,omitempty"`
}

// IdentifyUserData is the payload of /api/login/identifyUser.
type IdentifyUserData struct {
	UserStatus     string       `json:"userStatus,omitempty"`
	Credentials    []string     `json:"credentials,omitempty"`
	AllCredentials []Credential `json:"allCredentials,omitempty"`
}

// AuthenticatePasswordData is the payload of
// /api/credential/authenticatePassword.
type AuthenticatePasswordData struct {
	Credentials    []string     `json:"credentials,omitempty"`
	AllCredentials []Credential `json:"allCredentials,omitempty"`
}
