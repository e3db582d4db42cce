package pcap

import (
	"net/url"
	"time"

	"github.com/pcap-tools/pcap-sdk-golang/api"
)

const (
	getAccountsPath         = "/api/newaccount/getAccounts2"
	getUserTransactionsPath = "/api/transaction/getUserTransactions"
	getUserSpendingPath     = "/api/account/getUserSpending"
	getHoldingsPath         = "/api/invest/getHoldings"
	getCategoriesPath       = "/api/transactioncategory/getCategories"
	getTagsPath             = "/api/transactiontag/getTags"
	getHistoriesPath        = "/api/account/getHistories"
	querySessionPath        = "/api/login/querySession"
)

const dateFormat = "2006-01-02"

// ISession is the authenticated session the bindings run against.
// auth.Client implements it.
type ISession interface {
	ExecuteApi(path string, params url.Values, payload interface{}) (*api.SpHeader, error)
	ExecuteApiRead(path string, params url.Values, payload interface{}) (*api.SpHeader, error)
}

// Service exposes one method per data endpoint. Every method assumes the
// session is authenticated; the service answers a 202 header error
// otherwise, which the pipeline surfaces as a session-invalid error.
type Service struct {
	session ISession
}

func NewService(session ISession) *Service {
	return &Service{
		session: session,
	}
}

func (s *Service) Accounts() (result *Accounts, err error) {
	result = new(Accounts)
	if _, err = s.session.ExecuteApiRead(getAccountsPath, nil, result); err != nil {
		result = nil
	}
	return
}

func (s *Service) UserTransactions(startDate time.Time, endDate time.Time) (result *UserTransactions, err error) {
	params := url.Values{
		"startDate": {startDate.Format(dateFormat)},
		"endDate":   {endDate.Format(dateFormat)},
	}
	result = new(UserTransactions)
	if _, err = s.session.ExecuteApiRead(getUserTransactionsPath, params, result); err != nil {
		result = nil
	}
	return
}

func (s *Service) UserSpending(intervals ...Interval) (result *UserSpending, err error) {
	params := url.Values{}
	for _, iv := range intervals {
		params.Add("intervalTypes[]", string(iv))
	}
	result = new(UserSpending)
	if _, err = s.session.ExecuteApiRead(getUserSpendingPath, params, result); err != nil {
		result = nil
	}
	return
}

func (s *Service) Holdings() (result *Holdings, err error) {
	result = new(Holdings)
	if _, err = s.session.ExecuteApiRead(getHoldingsPath, nil, result); err != nil {
		result = nil
	}
	return
}

func (s *Service) Categories() (result []Category, err error) {
	if _, err = s.session.ExecuteApiRead(getCategoriesPath, nil, &result); err != nil {
		result = nil
	}
	return
}

func (s *Service) Tags() (result []Tag, err error) {
	if _, err = s.session.ExecuteApiRead(getTagsPath, nil, &result); err != nil {
		result = nil
	}
	return
}

func (s *Service) Histories(types []HistoryType, startDate time.Time, endDate time.Time,
	interval Interval) (result *Histories, err error) {
	params := url.Values{
		"startDate":    {startDate.Format(dateFormat)},
		"endDate":      {endDate.Format(dateFormat)},
		"intervalType": {string(interval)},
	}
	for _, ht := range types {
		params.Add("types[]", string(ht))
	}
	result = new(Histories)
	if _, err = s.session.ExecuteApiRead(getHistoriesPath, params, result); err != nil {
		result = nil
	}
	return
}

// QuerySession keeps the session alive and reports the server's desired
// polling interval.
func (s *Service) QuerySession() (result *QuerySession, err error) {
	result = new(QuerySession)
	if _, err = s.session.ExecuteApi(querySessionPath, nil, result); err != nil {
		result = nil
	}
	return
}
