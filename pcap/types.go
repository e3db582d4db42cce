// Package pcap contains the typed bindings for the service's data
// endpoints and the JSON shapes they decode into. The shapes mirror what
// the service actually sends: most fields are optional, and values the
// service treats as open-ended vocabularies (account types, transaction
// types, aggregation errors) are kept as string types so an unknown value
// decodes instead of failing.
package pcap

import (
	"encoding/json"
)

// Open vocabularies. Constants cover the values the service is known to
// send; anything else still decodes.
type (
	UserStatus        string
	TransactionStatus string
	TransactionType   string
	InvestmentType    string
	ResultType        string
	Interval          string
	CategoryType      string
	HistoryType       string
	HoldingType       string
	PriceSource       string
	HoldingSource     string
)

const (
	UserStatus_Active   UserStatus = "ACTIVE"
	UserStatus_Inactive UserStatus = "INACTIVE"
	UserStatus_Locked   UserStatus = "LOCKED"
	UserStatus_None     UserStatus = "NONE"
)

const (
	TransactionStatus_Posted  TransactionStatus = "posted"
	TransactionStatus_Pending TransactionStatus = "pending"
)

const (
	InvestmentType_Dividend InvestmentType = "Dividend"
	InvestmentType_Transfer InvestmentType = "Transfer"
	InvestmentType_Buy      InvestmentType = "Buy"
	InvestmentType_Sell     InvestmentType = "Sell"
	InvestmentType_MgmtFees InvestmentType = "Mgmt Fees"
	InvestmentType_Interest InvestmentType = "Interest"
)

const (
	Interval_Year  Interval = "YEAR"
	Interval_Month Interval = "MONTH"
	Interval_Week  Interval = "WEEK"
	Interval_Day   Interval = "DAY"
)

const (
	CategoryType_Expense              CategoryType = "EXPENSE"
	CategoryType_Income               CategoryType = "INCOME"
	CategoryType_Transfer             CategoryType = "TRANSFER"
	CategoryType_Uncategorized        CategoryType = "UNCATEGORIZED"
	CategoryType_DeferredCompensation CategoryType = "DEFERRED_COMPENSATION"
)

// History report names as the server spells them in the types parameter.
const (
	HistoryType_Balances          HistoryType = "balances"
	HistoryType_Networth          HistoryType = "networth"
	HistoryType_DailyChangeAmount HistoryType = "dailychangeamount"
	HistoryType_OneDaySummaries   HistoryType = "oneDaySummaries"
	HistoryType_CashFlows         HistoryType = "cashflows"
)

type CustomTags struct {
	SystemTags []int64 `json:"systemTags"`
	UserTags   []int64 `json:"userTags"`
}

type Split struct {
	Amount            float64     `json:"amount"`
	CustomTags        *CustomTags `json:"customTags,omitempty"`
	UserTransactionId string      `json:"userTransactionId"`
	CategoryId        int64       `json:"categoryId"`
}

type Transaction struct {
	UserTransactionId    int64             `json:"userTransactionId"`
	TransactionDate      string            `json:"transactionDate"`
	AccountId            string            `json:"accountId"`
	UserAccountId        int64             `json:"userAccountId"`
	AccountName          string            `json:"accountName"`
	Description          string            `json:"description"`
	OriginalDescription  string            `json:"originalDescription"`
	SimpleDescription    *string           `json:"simpleDescription,omitempty"`
	Amount               float64           `json:"amount"`
	OriginalAmount       *float64          `json:"originalAmount,omitempty"`
	Currency             string            `json:"currency"`
	Status               TransactionStatus `json:"status"`
	TransactionType      TransactionType   `json:"transactionType"`
	TransactionTypeId    int64             `json:"transactionTypeId"`
	CategoryId           int64             `json:"categoryId"`
	OriginalCategoryId   *int64            `json:"originalCategoryId,omitempty"`
	CatKeyword           *string           `json:"catKeyword,omitempty"`
	Merchant             *string           `json:"merchant,omitempty"`
	MerchantId           string            `json:"merchantId"`
	ResultType           *ResultType       `json:"resultType,omitempty"`
	InvestmentType       *InvestmentType   `json:"investmentType,omitempty"`
	Symbol               *string           `json:"symbol,omitempty"`
	CusipNumber          *string           `json:"cusipNumber,omitempty"`
	Price                *float64          `json:"price,omitempty"`
	Quantity             *float64          `json:"quantity,omitempty"`
	NetCost              *float64          `json:"netCost,omitempty"`
	RunningBalance       *float64          `json:"runningBalance,omitempty"`
	HasSplits            *bool             `json:"hasSplits,omitempty"`
	Splits               []Split           `json:"splits,omitempty"`
	CustomTags           *CustomTags       `json:"customTags,omitempty"`
	IsCredit             bool              `json:"isCredit"`
	IsInterest           bool              `json:"isInterest"`
	IsEditable           bool              `json:"isEditable"`
	IsCashOut            bool              `json:"isCashOut"`
	IsCashIn             bool              `json:"isCashIn"`
	IsDuplicate          bool              `json:"isDuplicate"`
	IsSpending           bool              `json:"isSpending"`
	IsIncome             bool              `json:"isIncome"`
	IsCost               bool              `json:"isCost"`
	IsNew                bool              `json:"isNew"`
	HasViewed            bool              `json:"hasViewed"`
	IncludeInCashManager bool              `json:"includeInCashManager"`
}

type UserTransactions struct {
	IntervalType *Interval     `json:"intervalType,omitempty"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	MoneyIn      *float64      `json:"moneyIn,omitempty"`
	MoneyOut     *float64      `json:"moneyOut,omitempty"`
	AverageIn    *float64      `json:"averageIn,omitempty"`
	AverageOut   *float64      `json:"averageOut,omitempty"`
	NetCashflow  *float64      `json:"netCashflow,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

type UserSpending struct {
	Intervals []SpendingInterval `json:"intervals"`
}

type SpendingInterval struct {
	Type    Interval         `json:"type"`
	Current float64          `json:"current"`
	Target  float64          `json:"target"`
	Average *float64         `json:"average,omitempty"`
	Details []SpendingDetail `json:"details"`
}

type SpendingDetail struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type Accounts struct {
	Networth                      float64   `json:"networth"`
	Assets                        float64   `json:"assets"`
	Liabilities                   float64   `json:"liabilities"`
	CashAccountsTotal             float64   `json:"cashAccountsTotal"`
	InvestmentAccountsTotal       float64   `json:"investmentAccountsTotal"`
	CreditCardAccountsTotal       float64   `json:"creditCardAccountsTotal"`
	LoanAccountsTotal             float64   `json:"loanAccountsTotal"`
	MortgageAccountsTotal         float64   `json:"mortgageAccountsTotal"`
	OtherAssetAccountsTotal       float64   `json:"otherAssetAccountsTotal"`
	OtherLiabilitiesAccountsTotal float64   `json:"otherLiabilitiesAccountsTotal"`
	Accounts                      []Account `json:"accounts"`
}

type ContactInfo struct {
	Url   *string `json:"url,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type NextAction struct {
	Action               *string           `json:"action,omitempty"`
	IconType             *string           `json:"iconType,omitempty"`
	ReportAction         *string           `json:"reportAction,omitempty"`
	NextActionMessage    *string           `json:"nextActionMessage,omitempty"`
	StatusMessage        *string           `json:"statusMessage,omitempty"`
	Prompts              []json.RawMessage `json:"prompts,omitempty"`
	AggregationErrorType *string           `json:"aggregationErrorType,omitempty"`
}

type LoginPart struct {
	Id        string  `json:"id"`
	Type      string  `json:"type"`
	Name      *string `json:"name,omitempty"`
	Size      *int64  `json:"size,omitempty"`
	MaxLength *int64  `json:"maxLength,omitempty"`
	Mask      *string `json:"mask,omitempty"`
}

type LoginField struct {
	Label      string      `json:"label"`
	Hint       *string     `json:"hint,omitempty"`
	IsUsername *bool       `json:"isUsername,omitempty"`
	IsPassword *bool       `json:"isPassword,omitempty"`
	IsRequired *bool       `json:"isRequired,omitempty"`
	Parts      []LoginPart `json:"parts"`
}

// Account is the service's single account shape for every product it
// aggregates. Banks, cards, loans, investments, and manually tracked
// homes all arrive through this one struct, hence the breadth of optional
// fields.
type Account struct {
	AccountId             string   `json:"accountId"`
	UserAccountId         *int64   `json:"userAccountId,omitempty"`
	Name                  *string  `json:"name,omitempty"`
	AccountName           *string  `json:"accountName,omitempty"`
	UserAccountName       *string  `json:"userAccountName,omitempty"`
	OriginalName          *string  `json:"originalName,omitempty"`
	FirmName              string   `json:"firmName"`
	OriginalFirmName      string   `json:"originalFirmName"`
	CustomProductName     *string  `json:"customProductName,omitempty"`
	AccountHolder         *string  `json:"accountHolder,omitempty"`
	AccountNumber         *string  `json:"accountNumber,omitempty"`
	AccountType           string   `json:"accountType,omitempty"`
	AccountTypeNew        string   `json:"accountTypeNew,omitempty"`
	AccountTypeGroup      string   `json:"accountTypeGroup,omitempty"`
	AccountTypeSubtype    string   `json:"accountTypeSubtype,omitempty"`
	ProductType           *string  `json:"productType,omitempty"`
	ProductId             *int64   `json:"productId,omitempty"`
	UserProductId         *int64   `json:"userProductId,omitempty"`
	SiteId                int64    `json:"siteId"`
	UserSiteId            int64    `json:"userSiteId"`
	Currency              *string  `json:"currency,omitempty"`
	Balance               *float64 `json:"balance,omitempty"`
	CurrentBalance        *float64 `json:"currentBalance,omitempty"`
	AvailableBalance      *float64 `json:"availableBalance,omitempty"`
	PriorBalance          *float64 `json:"priorBalance,omitempty"`
	RunningBalance        *float64 `json:"runningBalance,omitempty"`
	AvailableCash         *string  `json:"availableCash,omitempty"`
	AvailableCredit       *float64 `json:"availableCredit,omitempty"`
	CreditLimit           *float64 `json:"creditLimit,omitempty"`
	CreditUtilization     *float64 `json:"creditUtilization,omitempty"`
	Apr                   *float64 `json:"apr,omitempty"`
	InterestRate          *float64 `json:"interestRate,omitempty"`
	InterestPaidYtd       *float64 `json:"interestPaidYtd,omitempty"`
	InterestEarnedYtd     *float64 `json:"interestEarnedYtd,omitempty"`
	OriginalLoanAmount    *float64 `json:"originalLoanAmount,omitempty"`
	PrincipalBalance      *float64 `json:"principalBalance,omitempty"`
	AccruedInterest       *float64 `json:"accruedInterest,omitempty"`
	Lender                *string  `json:"lender,omitempty"`
	BillingCycle          *string  `json:"billingCycle,omitempty"`
	Description           *string  `json:"description,omitempty"`
	Memo                  *string  `json:"memo,omitempty"`
	DueDate               *int64   `json:"dueDate,omitempty"`
	AmountDue             *float64 `json:"amountDue,omitempty"`
	MinPaymentDue         *float64 `json:"minPaymentDue,omitempty"`
	LastPaymentAmount     *float64 `json:"lastPaymentAmount,omitempty"`
	LastPaymentDate       *int64   `json:"lastPaymentDate,omitempty"`
	LastRefreshed         *int64   `json:"lastRefreshed,omitempty"`
	CreatedDate           *int64   `json:"createdDate,omitempty"`
	ClosedDate            *string  `json:"closedDate,omitempty"`
	ClosedComment         *string  `json:"closedComment,omitempty"`
	OldestTransactionDate *string  `json:"oldestTransactionDate,omitempty"`
	PayoffDate            *int64   `json:"payoffDate,omitempty"`
	OriginationDate       *int64   `json:"originationDate,omitempty"`

	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
	NextAction  *NextAction  `json:"nextAction,omitempty"`
	LoginFields []LoginField `json:"loginFields,omitempty"`
	HomeUrl     *string      `json:"homeUrl,omitempty"`
	LoginUrl    *string      `json:"loginUrl,omitempty"`
	Link        *string      `json:"link,omitempty"`
	LogoPath    *string      `json:"logoPath,omitempty"`
	MfaType     *string      `json:"mfaType,omitempty"`

	RoutingNumber                *string `json:"routingNumber,omitempty"`
	RoutingNumberSource          *string `json:"routingNumberSource,omitempty"`
	IsRoutingNumberValidated     *bool   `json:"isRoutingNumberValidated,omitempty"`
	IsAccountNumberValidated     *bool   `json:"isAccountNumberValidated,omitempty"`
	PcbEnrollmentState           *string `json:"pcbEnrollmentState,omitempty"`
	EnrollmentConciergeRequested *int64  `json:"enrollmentConciergeRequested,omitempty"`
	AccountProperties            []int64 `json:"accountProperties,omitempty"`
	DisbursementType             *string `json:"disbursementType,omitempty"`

	AdvisoryFeePercentage *float64 `json:"advisoryFeePercentage,omitempty"`
	DefaultAdvisoryFee    *float64 `json:"defaultAdvisoryFee,omitempty"`
	FundFees              *float64 `json:"fundFees,omitempty"`
	FeesPerYear           *string  `json:"feesPerYear,omitempty"`
	TotalFee              *float64 `json:"totalFee,omitempty"`

	// Manually tracked property fields.
	UseHomeValuation *bool    `json:"useHomeValuation,omitempty"`
	IsHome           *bool    `json:"isHome,omitempty"`
	ZillowStatus     *string  `json:"zillowStatus,omitempty"`
	PropertyType     *string  `json:"propertyType,omitempty"`
	Addressline      *string  `json:"addressline,omitempty"`
	City             *string  `json:"city,omitempty"`
	State            *string  `json:"state,omitempty"`
	Zip              *string  `json:"zip,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`

	Aggregating                  bool  `json:"aggregating"`
	IsOnUs                       bool  `json:"isOnUs"`
	IsOnUsBank                   bool  `json:"isOnUsBank"`
	IsOnUs401K                   bool  `json:"isOnUs401K"`
	IsAsset                      bool  `json:"isAsset"`
	IsLiability                  bool  `json:"isLiability"`
	IsManual                     bool  `json:"isManual"`
	IsManualPortfolio            bool  `json:"isManualPortfolio"`
	IsCrypto                     bool  `json:"isCrypto"`
	IsPartner                    bool  `json:"isPartner"`
	IsEsog                       bool  `json:"isEsog"`
	IsExcludeFromHousehold       bool  `json:"isExcludeFromHousehold"`
	IsAccountUsedInFunding       bool  `json:"isAccountUsedInFunding"`
	IsPaymentToCapable           bool  `json:"isPaymentToCapable"`
	IsPaymentFromCapable         bool  `json:"isPaymentFromCapable"`
	PaymentToStatus              bool  `json:"paymentToStatus"`
	PaymentFromStatus            bool  `json:"paymentFromStatus"`
	IsRefetchTransactionEligible bool  `json:"isRefetchTransactionEligible"`
	Is365DayTransactionEligible  bool  `json:"is365DayTransactionEligible"`
	IsCustomManual               *bool `json:"isCustomManual,omitempty"`
	IsIAVEligible                *bool `json:"isIAVEligible,omitempty"`
	IsIAVAccountNumberValid      *bool `json:"isIAVAccountNumberValid,omitempty"`
	IsStatementDownloadEligible  *bool `json:"isStatementDownloadEligible,omitempty"`
	Is401KEligible               *bool `json:"is401KEligible,omitempty"`
	IsTransferEligible           *bool `json:"isTransferEligible,omitempty"`
	IsTransferPending            *bool `json:"isTransferPending,omitempty"`
	IsSelectedForTransfer        *bool `json:"isSelectedForTransfer,omitempty"`
	IsTaxDeferredOrNonTaxable    *bool `json:"isTaxDeferredOrNonTaxable,omitempty"`
	TreatedAsInvestment          *bool `json:"treatedAsInvestment,omitempty"`
	ExcludeFromProposal          *bool `json:"excludeFromProposal,omitempty"`
	IsAdvised                    *bool `json:"isAdvised,omitempty"`
}

type Category struct {
	TransactionCategoryId  int64        `json:"transactionCategoryId"`
	TransactionCategoryKey *string      `json:"transactionCategoryKey,omitempty"`
	Name                   string       `json:"name"`
	ShortDescription       *string      `json:"shortDescription,omitempty"`
	Type                   CategoryType `json:"type"`
	IsEditable             bool         `json:"isEditable"`
	IsCustom               bool         `json:"isCustom"`
	IsOverride             bool         `json:"isOverride"`
}

type Tag struct {
	TagId   int64  `json:"tagId"`
	TagName string `json:"tagName"`
}

type Holdings struct {
	Holdings           []Holding         `json:"holdings"`
	HoldingsTotalValue float64           `json:"holdingsTotalValue"`
	Classifications    []json.RawMessage `json:"classifications,omitempty"`
}

type Holding struct {
	UserAccountId                int64         `json:"userAccountId"`
	AccountName                  *string       `json:"accountName,omitempty"`
	Ticker                       *string       `json:"ticker,omitempty"`
	OriginalTicker               *string       `json:"originalTicker,omitempty"`
	Cusip                        *string       `json:"cusip,omitempty"`
	OriginalCusip                *string       `json:"originalCusip,omitempty"`
	Description                  *string       `json:"description,omitempty"`
	OriginalDescription          *string       `json:"originalDescription,omitempty"`
	Quantity                     float64       `json:"quantity"`
	Price                        float64       `json:"price"`
	Value                        float64       `json:"value"`
	Change                       float64       `json:"change"`
	OneDayValueChange            float64       `json:"oneDayValueChange"`
	OneDayPercentChange          float64       `json:"oneDayPercentChange"`
	HoldingPercentage            float64       `json:"holdingPercentage"`
	CostBasis                    *float64      `json:"costBasis,omitempty"`
	TaxCost                      *float64      `json:"taxCost,omitempty"`
	TradingRatio                 *float64      `json:"tradingRatio,omitempty"`
	FundFees                     *float64      `json:"fundFees,omitempty"`
	FeesPerYear                  *float64      `json:"feesPerYear,omitempty"`
	Exchange                     *string       `json:"exchange,omitempty"`
	Currency                     *string       `json:"currency,omitempty"`
	Type                         *string       `json:"type,omitempty"`
	HoldingType                  HoldingType   `json:"holdingType"`
	Source                       HoldingSource `json:"source"`
	PriceSource                  PriceSource   `json:"priceSource"`
	SourceAssetId                string        `json:"sourceAssetId"`
	External                     *string       `json:"external,omitempty"`
	MarketType                   int64         `json:"marketType"`
	ManualClassification         string        `json:"manualClassification"`
	IsMarketMover                bool          `json:"isMarketMover"`
	ValueSortIndex               int64         `json:"valueSortIndex"`
	ChangeSortIndex              int64         `json:"changeSortIndex"`
	OneDayValueChangeSortIndex   int64         `json:"oneDayValueChangeSortIndex"`
	OneDayPercentChangeSortIndex int64         `json:"oneDayPercentChangeSortIndex"`
}

type Histories struct {
	IntervalType      *Interval         `json:"intervalType,omitempty"`
	Histories         []History         `json:"histories,omitempty"`
	AccountSummaries  []AccountSummary  `json:"accountSummaries,omitempty"`
	NetworthSummary   map[string]int64  `json:"networthSummary,omitempty"`
	NetworthHistories []NetworthHistory `json:"networthHistories,omitempty"`
	OneDaySummaries   *OneDaySummaries  `json:"oneDaySummaries,omitempty"`
}

type History struct {
	Date                       string                 `json:"date"`
	AggregateBalance           float64                `json:"aggregateBalance"`
	AggregateDailyChangeAmount *float64               `json:"aggregateDailyChangeAmount,omitempty"`
	AggregateCashIn            *float64               `json:"aggregateCashIn,omitempty"`
	AggregateCashOut           *float64               `json:"aggregateCashOut,omitempty"`
	AggregateIncome            *float64               `json:"aggregateIncome,omitempty"`
	AggregateExpense           *float64               `json:"aggregateExpense,omitempty"`
	Balances                   map[string]json.Number `json:"balances"`
	DailyChangeAmount          map[string]float64     `json:"dailyChangeAmount,omitempty"`
	Cashflows                  map[string]Cashflow    `json:"cashflows,omitempty"`
}

type Cashflow struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	CashIn  float64 `json:"cashIn"`
	CashOut float64 `json:"cashOut"`
}

type AccountSummary struct {
	UserAccountId                    int64   `json:"userAccountId"`
	AccountName                      string  `json:"accountName"`
	SiteName                         string  `json:"siteName"`
	CurrentBalance                   float64 `json:"currentBalance"`
	BalanceAsOfEndDate               float64 `json:"balanceAsOfEndDate"`
	Income                           float64 `json:"income"`
	Expense                          float64 `json:"expense"`
	CashFlow                         float64 `json:"cashFlow"`
	PercentOfTotal                   float64 `json:"percentOfTotal"`
	ClosedDate                       string  `json:"closedDate"`
	OneDayBalanceValueChange         float64 `json:"oneDayBalanceValueChange"`
	OneDayBalancePercentageChange    float64 `json:"oneDayBalancePercentageChange"`
	OneDayPerformanceValueChange     float64 `json:"oneDayPerformanceValueChange"`
	DateRangeBalanceValueChange      float64 `json:"dateRangeBalanceValueChange"`
	DateRangeBalancePercentageChange float64 `json:"dateRangeBalancePercentageChange"`
	DateRangePerformanceValueChange  float64 `json:"dateRangePerformanceValueChange"`
}

type NetworthHistory struct {
	Date                           string  `json:"date"`
	Networth                       float64 `json:"networth"`
	TotalAssets                    float64 `json:"totalAssets"`
	TotalLiabilities               float64 `json:"totalLiabilities"`
	TotalCash                      float64 `json:"totalCash"`
	TotalInvestment                float64 `json:"totalInvestment"`
	TotalCredit                    float64 `json:"totalCredit"`
	TotalLoan                      float64 `json:"totalLoan"`
	TotalMortgage                  float64 `json:"totalMortgage"`
	TotalOtherAssets               float64 `json:"totalOtherAssets"`
	TotalOtherLiabilities          float64 `json:"totalOtherLiabilities"`
	TotalEmpower                   float64 `json:"totalEmpower"`
	OneDayNetworthChange           float64 `json:"oneDayNetworthChange"`
	OneDayNetworthPercentageChange float64 `json:"oneDayNetworthPercentageChange"`
}

type OneDaySummaries struct {
	AggregatedOneDayValueChange      float64 `json:"aggregatedOneDayValueChange"`
	AggregatedOneDayPercentageChange float64 `json:"aggregatedOneDayPercentageChange"`
}

// QuerySession is the payload of the keep-alive endpoint: how often the
// server wants to be pinged, in seconds.
type QuerySession struct {
	Interval int64 `json:"interval"`
}
