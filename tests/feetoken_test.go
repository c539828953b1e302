package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/feetoken/feetokenconst"
)

func newFeeTokenInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, feeTokenPath, path.Join(feeTokenPath, "config.yml"))
	e.DeployContract(t, ctr, []any{e.CommitteeHash})

	return e.CommitteeInvoker(ctr.Hash)
}

func TestFeeTokenGeneric(t *testing.T) {
	c := newFeeTokenInvoker(t)

	c.Invoke(t, feetokenconst.Symbol, "symbol")
	c.Invoke(t, feetokenconst.Decimals, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, common.Version, "version")
	c.Invoke(t, c.CommitteeHash, "admin")
}

func TestFeeTokenMint(t *testing.T) {
	c := newFeeTokenInvoker(t)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()

	c.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "mint", accHash, 100)
	c.InvokeFail(t, "amount must be positive", "mint", accHash, 0)

	c.Invoke(t, stackitem.Null{}, "mint", accHash, 100)
	c.Invoke(t, 100, "balanceOf", accHash)
	c.Invoke(t, 100, "totalSupply")

	c.Invoke(t, stackitem.Null{}, "mint", accHash, 50)
	c.Invoke(t, 150, "balanceOf", accHash)
	c.Invoke(t, 150, "totalSupply")
}

func TestFeeTokenTransfer(t *testing.T) {
	c := newFeeTokenInvoker(t)

	from := c.NewAccount(t)
	to := c.NewAccount(t)
	fromHash, toHash := from.ScriptHash(), to.ScriptHash()

	c.Invoke(t, stackitem.Null{}, "mint", fromHash, 100)

	cFrom := c.WithSigners(from)
	cFrom.Invoke(t, true, "transfer", fromHash, toHash, 30, nil)
	c.Invoke(t, 70, "balanceOf", fromHash)
	c.Invoke(t, 30, "balanceOf", toHash)

	cFrom.Invoke(t, false, "transfer", fromHash, toHash, 71, nil)

	// No witness of the token owner.
	c.WithSigners(to).Invoke(t, false, "transfer", fromHash, toHash, 10, nil)
}

func TestFeeTokenAuthorize(t *testing.T) {
	c := newFeeTokenInvoker(t)

	acc := c.NewAccount(t)
	marketplace := acc.ScriptHash()

	c.Invoke(t, false, "isAuthorized", marketplace)
	c.WithSigners(acc).InvokeFail(t, common.ErrAdminWitnessFailed, "authorize", marketplace)

	c.Invoke(t, stackitem.Null{}, "authorize", marketplace)
	c.Invoke(t, true, "isAuthorized", marketplace)

	c.Invoke(t, stackitem.Null{}, "deauthorize", marketplace)
	c.Invoke(t, false, "isAuthorized", marketplace)
}

func TestFeeTokenChargeFeeDirect(t *testing.T) {
	c := newFeeTokenInvoker(t)

	acc := c.NewAccount(t)
	accHash := acc.ScriptHash()
	c.Invoke(t, stackitem.Null{}, "mint", accHash, 100)

	// Transaction scripts are not on the allowlist, only deployed
	// marketplace contracts can be.
	c.InvokeFail(t, feetokenconst.ErrNotAuthorized, "chargeFee",
		accHash, c.CommitteeHash, 10, []byte("details"))
}
