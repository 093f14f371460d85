// Deploy command compiles the token contract from source and deploys it to
// the given Neo network. If the contract is already on the chain, it is
// updated instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractPath := flag.String("contract", "contracts/token", "Path to the contract source")
	tokenURI := flag.String("uri", "", "Metadata URI template set on initial deployment")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	}

	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer l.Sync()

	err = deploy(l, *neoRPCEndpoint, *walletPath, *walletPassword, *contractPath, *tokenURI)
	if err != nil {
		l.Fatal("deployment failed", zap.Error(err))
	}
}

func deploy(l *zap.Logger, endpoint, walletPath, walletPassword, contractPath, tokenURI string) error {
	ctx := context.Background()

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("wallet '%s' has no usable account", walletPath)
	}

	err = acc.Decrypt(walletPassword, w.Scrypt)
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("create RPC client: %w", err)
	}
	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("initialize RPC client: %w", err)
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		return fmt.Errorf("init transaction sender from deployer account: %w", err)
	}

	ctr, err := compileContract(acc.ScriptHash(), contractPath)
	if err != nil {
		return fmt.Errorf("compile contract from '%s': %w", contractPath, err)
	}

	l.Info("contract compiled",
		zap.String("name", ctr.Manifest.Name),
		zap.Stringer("hash", ctr.Hash))

	_, err = c.GetContractStateByHash(ctr.Hash)
	if err == nil {
		return update(l, act, ctr)
	}

	l.Info("contract is not on the chain yet, deploying",
		zap.Stringer("hash", ctr.Hash))

	txHash, vub, err := management.New(act).Deploy(ctr.NEF, ctr.Manifest,
		[]any{acc.ScriptHash(), tokenURI})
	aer, err := act.Wait(txHash, vub, err)
	if err != nil {
		return fmt.Errorf("deploy contract: %w", err)
	}
	if aer.VMState != vmstate.Halt {
		return fmt.Errorf("deploy transaction faulted: %s", aer.FaultException)
	}

	l.Info("contract deployed",
		zap.Stringer("hash", ctr.Hash),
		zap.Stringer("tx", txHash))
	return nil
}

func update(l *zap.Logger, act *actor.Actor, ctr *contractArtifacts) error {
	l.Info("contract is already on the chain, updating",
		zap.Stringer("hash", ctr.Hash))

	nefBytes, err := ctr.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	manifestBytes, err := json.Marshal(ctr.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	txHash, vub, err := act.SendCall(ctr.Hash, "update", nefBytes, manifestBytes, nil)
	aer, err := act.Wait(txHash, vub, err)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if aer.VMState != vmstate.Halt {
		return fmt.Errorf("update transaction faulted: %s", aer.FaultException)
	}

	l.Info("contract updated",
		zap.Stringer("hash", ctr.Hash),
		zap.Stringer("tx", txHash))
	return nil
}
