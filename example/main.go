package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pcap-tools/pcap-sdk-golang/api"
	"github.com/pcap-tools/pcap-sdk-golang/auth"
	"github.com/pcap-tools/pcap-sdk-golang/pcap"
)

// Signs in (prompting for a verification code when the service asks for
// one), then prints the net worth and the last month of transactions in
// UI order.
//
// PCAP_USERNAME, PCAP_PASSWORD, and PCAP_DEVICE_NAME must be set. Session
// state is kept in ~/.pcap/session.json, so a second run on the same
// machine skips the verification code.
func main() {
	api.SetNoLogger()

	client, err := auth.NewClient(auth.ClientConfig{
		Username:         os.Getenv("PCAP_USERNAME"),
		Password:         os.Getenv("PCAP_PASSWORD"),
		DeviceName:       os.Getenv("PCAP_DEVICE_NAME"),
		Storage:          auth.NewFileSessionStorage("session.json"),
		TwoFactorChannel: auth.TwoFactorChannel_Email,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err = client.Login(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	service := pcap.NewService(client)

	var accounts *pcap.Accounts
	if accounts, err = service.Accounts(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Net worth: %.2f (%d accounts)\n", accounts.Networth, len(accounts.Accounts))

	endDate := time.Now()
	startDate := endDate.AddDate(0, -1, 0)
	var transactions *pcap.UserTransactions
	if transactions, err = service.UserTransactions(startDate, endDate); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pcap.SortTransactions(transactions.Transactions)
	for _, t := range transactions.Transactions {
		fmt.Printf("%s  %-32s %10.2f  %s\n", t.TransactionDate, t.AccountName, t.Amount, t.Description)
	}
}
