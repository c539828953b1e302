package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	listingFeePrefix = []byte{0x01}
	salePrefix       = []byte{0x02}
	withdrawPrefix   = []byte{0x03}
)

// ListingFeeDetails marks a fee-token transfer charged for creating a listing.
func ListingFeeDetails(ticket []byte) []byte {
	return append(listingFeePrefix, ticket...)
}

// SaleDetails marks a GAS payment pulled by a marketplace ticket sale.
func SaleDetails(ticket []byte) []byte {
	return append(salePrefix, ticket...)
}

// WithdrawDetails marks a GAS release from escrowed sale proceeds.
func WithdrawDetails(memo []byte) []byte {
	return append(withdrawPrefix, memo...)
}

// AbortWithMessage calls `runtime.Log` with passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
