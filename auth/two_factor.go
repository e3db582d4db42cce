package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type TwoFactorChannel int32

const (
	TwoFactorChannel_Email TwoFactorChannel = iota
	TwoFactorChannel_Sms
)

func (tc TwoFactorChannel) String() string {
	switch tc {
	case TwoFactorChannel_Email:
		return "email"
	case TwoFactorChannel_Sms:
		return "sms"
	}
	return "unknown"
}

// ITwoFactorProvider supplies the verification code for device
// authorization. ShouldChallenge lets a provider opt out of requesting a
// challenge (for example when it already holds a fresh code); SetStatus
// reports whether the last code was accepted.
type ITwoFactorProvider interface {
	ShouldChallenge() bool
	GetCode() (string, error)
	SetStatus(success bool)
}

var _ ITwoFactorProvider = &consoleTwoFactorProvider{}

// NewConsoleTwoFactorProvider prompts for the code on standard input.
func NewConsoleTwoFactorProvider() ITwoFactorProvider {
	return &consoleTwoFactorProvider{
		reader: bufio.NewReader(os.Stdin),
	}
}

type consoleTwoFactorProvider struct {
	reader *bufio.Reader
}

func (cp *consoleTwoFactorProvider) ShouldChallenge() bool {
	return true
}

func (cp *consoleTwoFactorProvider) GetCode() (code string, err error) {
	fmt.Print("Enter verification code: ")
	if code, err = cp.reader.ReadString('\n'); err == nil {
		code = strings.TrimSpace(code)
	}
	return
}

func (cp *consoleTwoFactorProvider) SetStatus(success bool) {
	if !success {
		fmt.Println("The verification code was not accepted.")
	}
}
