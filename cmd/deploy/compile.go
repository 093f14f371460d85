package main

import (
	"path"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// contractArtifacts contains contract info for deployment.
type contractArtifacts struct {
	Hash     util.Uint160
	NEF      *nef.File
	Manifest *manifest.Manifest
}

// compileContract compiles the contract from ctrPath (expecting config.yml
// next to the source) and returns its NEF, manifest and the hash it would
// have when deployed by sender.
func compileContract(sender util.Uint160, ctrPath string) (*contractArtifacts, error) {
	// nef.NewFile() cares about version a lot. It must be fixed, otherwise
	// rebuilding the tool changes the NEF checksum and the contract hash.
	config.Version = "1.0.0"

	ne, di, err := compiler.CompileWithOptions(ctrPath, nil, nil)
	if err != nil {
		return nil, err
	}

	conf, err := smartcontract.ParseContractConfig(path.Join(ctrPath, "config.yml"))
	if err != nil {
		return nil, err
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods
	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nil, err
	}

	return &contractArtifacts{
		Hash:     state.CreateContractHash(sender, ne.Checksum, m.Name),
		NEF:      ne,
		Manifest: m,
	}, nil
}
