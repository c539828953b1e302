// Package deploy provides Ticketplace contract suite deployment functionality.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// ticketNamePlaceholder substitutes the per-listing contract name in the
// ticket template manifest before it is split for on-chain storage. The
// marketplace contract splices the actual listing name between the two
// halves on every deployment.
const ticketNamePlaceholder = "ticket-template-name"

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Ticketplace deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// FeeTokenPrm groups deployment parameters of the Ticketplace Fee Token
// contract.
type FeeTokenPrm struct {
	Common CommonDeployPrm
}

// MarketplacePrm groups deployment parameters of the Ticketplace Marketplace
// contract.
type MarketplacePrm struct {
	Common CommonDeployPrm

	ListingFee         int64
	WithdrawFeePercent int64
}

// TicketTemplatePrm groups parameters of the Event Ticket contract template
// uploaded into the marketplace for per-listing deployments.
type TicketTemplatePrm struct {
	Common CommonDeployPrm
}

// Prm groups all parameters of the Ticketplace deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to be used.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the admin of both deployed contracts.
	LocalAccount *wallet.Account

	FeeToken       FeeTokenPrm
	Marketplace    MarketplacePrm
	TicketTemplate TicketTemplatePrm
}

// Deploy initializes Ticketplace contract suite on the given Neo blockchain:
// it deploys the fee token and the marketplace contracts, uploads the ticket
// contract template into the marketplace and authorizes the marketplace to
// charge listing fees. Deploy is tolerant to restarts: contracts already
// present on the chain are left as they are.
func Deploy(ctx context.Context, prm Prm) error {
	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender: %w", err)
	}

	mgmt := management.New(act)
	admin := prm.LocalAccount.ScriptHash()

	feeTokenHash, err := syncContract(ctx, prm.Logger, prm.Blockchain, act, mgmt,
		prm.FeeToken.Common, []any{admin})
	if err != nil {
		return fmt.Errorf("deploy fee token contract: %w", err)
	}

	marketplaceHash, err := syncContract(ctx, prm.Logger, prm.Blockchain, act, mgmt,
		prm.Marketplace.Common, []any{
			admin,
			feeTokenHash,
			prm.Marketplace.ListingFee,
			prm.Marketplace.WithdrawFeePercent,
		})
	if err != nil {
		return fmt.Errorf("deploy marketplace contract: %w", err)
	}

	err = uploadTicketTemplate(ctx, prm.Logger, act, marketplaceHash, prm.TicketTemplate.Common)
	if err != nil {
		return fmt.Errorf("upload ticket contract template: %w", err)
	}

	err = authorizeMarketplace(ctx, prm.Logger, act, feeTokenHash, marketplaceHash)
	if err != nil {
		return fmt.Errorf("authorize marketplace in the fee token contract: %w", err)
	}

	prm.Logger.Info("Ticketplace contract suite is deployed and ready to use",
		zap.Stringer("fee token", feeTokenHash), zap.Stringer("marketplace", marketplaceHash))

	return nil
}

// syncContract deploys the contract unless it is already present on the
// chain, and returns its address in both cases.
func syncContract(ctx context.Context, l *zap.Logger, b Blockchain, act *actor.Actor,
	mgmt *management.Contract, prm CommonDeployPrm, deployArgs []any) (util.Uint160, error) {
	h := state.CreateContractHash(act.Sender(), prm.NEF.Checksum, prm.Manifest.Name)
	l = l.With(zap.String("contract", prm.Manifest.Name), zap.Stringer("expected address", h))

	stateOnChain, err := b.GetContractStateByHash(h)
	if err == nil {
		l.Info("contract is already on the chain, skip deployment",
			zap.Uint16("update counter", stateOnChain.UpdateCounter))
		return h, nil
	} else if !strings.Contains(err.Error(), "Unknown contract") {
		return util.Uint160{}, fmt.Errorf("read contract state: %w", err)
	}

	l.Info("contract is missing on the chain, deploying...")

	txHash, vub, err := mgmt.Deploy(&prm.NEF, &prm.Manifest, deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	if err := waitTx(ctx, act, txHash, vub); err != nil {
		return util.Uint160{}, err
	}

	l.Info("contract is deployed on the chain")

	return h, nil
}

// uploadTicketTemplate stores the Event Ticket contract template in the
// marketplace. The template is re-uploaded on every run: setTicketTemplate
// is idempotent for an unchanged template, and an admin may legitimately
// roll out a newer one.
func uploadTicketTemplate(ctx context.Context, l *zap.Logger, act *actor.Actor,
	marketplace util.Uint160, prm CommonDeployPrm) error {
	rawNEF, err := prm.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	prefix, suffix, err := SplitTicketManifest(prm.Manifest)
	if err != nil {
		return fmt.Errorf("split manifest: %w", err)
	}

	txHash, vub, err := act.SendCall(marketplace, "setTicketTemplate", rawNEF, prefix, suffix)
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	if err := waitTx(ctx, act, txHash, vub); err != nil {
		return err
	}

	l.Info("ticket contract template is uploaded into the marketplace",
		zap.Stringer("marketplace", marketplace))

	return nil
}

// authorizeMarketplace puts the marketplace on the fee token allowlist
// unless it is already there.
func authorizeMarketplace(ctx context.Context, l *zap.Logger, act *actor.Actor,
	feeToken, marketplace util.Uint160) error {
	l = l.With(zap.Stringer("fee token", feeToken), zap.Stringer("marketplace", marketplace))

	authorized, err := unwrap.Bool(act.Call(feeToken, "isAuthorized", marketplace))
	if err != nil {
		return fmt.Errorf("read allowlist: %w", err)
	}
	if authorized {
		l.Info("marketplace is already authorized to charge fees")
		return nil
	}

	txHash, vub, err := act.SendCall(feeToken, "authorize", marketplace)
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	if err := waitTx(ctx, act, txHash, vub); err != nil {
		return err
	}

	l.Info("marketplace is authorized to charge fees")

	return nil
}

func waitTx(ctx context.Context, act *actor.Actor, txHash util.Uint256, vub uint32) error {
	res, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}
	if res.VMState.HasFlag(vmstate.Fault) {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}
	return nil
}

// SplitTicketManifest serializes the ticket contract template manifest into
// JSON split in two around the contract name. The marketplace contract
// splices a unique per-listing name between the halves on each deployment so
// that resulting contract addresses never collide.
func SplitTicketManifest(m manifest.Manifest) (prefix []byte, suffix []byte, err error) {
	m.Name = ticketNamePlaceholder

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, nil, fmt.Errorf("encode manifest to JSON: %w", err)
	}

	parts := bytes.SplitN(raw, []byte(`"`+ticketNamePlaceholder+`"`), 2)
	if len(parts) != 2 {
		return nil, nil, errors.New("contract name placeholder not found in the encoded manifest")
	}

	return parts[0], parts[1], nil
}
