// Command listings prints the state of a Ticketplace Marketplace contract
// and every Event Ticket listing it has deployed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/ticketplace/ticketplace-contract/rpc/marketplace"
	"github.com/ticketplace/ticketplace-contract/rpc/ticket"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	marketplaceAddr := flag.String("marketplace", "", "Address of the Marketplace contract (LE hex or Neo address)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *marketplaceAddr == "":
		log.Fatal("missing Marketplace contract address")
	}

	marketplaceHash, err := parseAddress(*marketplaceAddr)
	if err != nil {
		log.Fatal(fmt.Errorf("parse Marketplace contract address: %w", err))
	}

	err = printListings(*neoRPCEndpoint, marketplaceHash)
	if err != nil {
		log.Fatal(err)
	}
}

func parseAddress(s string) (util.Uint160, error) {
	h, err := util.Uint160DecodeStringLE(s)
	if err == nil {
		return h, nil
	}
	return address.StringToUint160(s)
}

func printListings(neoRPCEndpoint string, marketplaceHash util.Uint160) error {
	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	defer c.Close()

	if err := c.Init(); err != nil {
		return fmt.Errorf("init RPC client connection: %w", err)
	}

	inv := invoker.New(c, nil)
	m := marketplace.NewReader(inv, marketplaceHash)

	halted, err := m.IsHalted()
	if err != nil {
		return fmt.Errorf("read circuit breaker state: %w", err)
	}
	terminated, err := m.IsTerminated()
	if err != nil {
		return fmt.Errorf("read terminal state: %w", err)
	}
	listingFee, err := m.ListingFee()
	if err != nil {
		return fmt.Errorf("read listing fee: %w", err)
	}
	withdrawFeePercent, err := m.WithdrawFeePercent()
	if err != nil {
		return fmt.Errorf("read withdrawal fee percent: %w", err)
	}
	heartbank, err := m.Heartbank()
	if err != nil {
		return fmt.Errorf("read heartbank balance: %w", err)
	}

	fmt.Printf("Marketplace %s\n", marketplaceHash.StringLE())
	fmt.Printf("  halted: %t, terminated: %t\n", halted, terminated)
	fmt.Printf("  listing fee: %s, withdrawal fee: %s%%, heartbank: %s\n",
		listingFee, withdrawFeePercent, heartbank)

	tickets, err := m.Listings()
	if err != nil {
		return fmt.Errorf("read listings: %w", err)
	}

	for _, h := range tickets {
		r := ticket.NewReader(inv, h)

		l, err := r.GetListing()
		if err != nil {
			return fmt.Errorf("read listing %s: %w", h.StringLE(), err)
		}
		sales, err := r.CumulativeSales()
		if err != nil {
			return fmt.Errorf("read cumulative sales of %s: %w", h.StringLE(), err)
		}
		fund, err := r.EscrowedFund()
		if err != nil {
			return fmt.Errorf("read escrowed fund of %s: %w", h.StringLE(), err)
		}

		fmt.Printf("Listing %s (%s)\n", l.Name, h.StringLE())
		fmt.Printf("  owner: %s, location: %s\n", address.Uint160ToString(l.Owner), l.Location)
		fmt.Printf("  sales end: %s, available: %s, price: %s, supply: %s\n",
			l.EndTime, l.Available, l.Price, l.Supply)
		fmt.Printf("  cumulative sales: %s, escrowed fund: %s\n", sales, fund)
	}

	return nil
}
