// Package factory builds fully-formed, validated records from partial
// input: filling defaults, generating ids, running the type's detailed
// validator, and — for envelope factories — signing the result.
package factory

import (
	"github.com/gitgovernance/core/internal/canonical"
	"github.com/gitgovernance/core/internal/crypto"
	"github.com/gitgovernance/core/internal/record"
)

// SignEnvelope computes payload's checksum, signs it once with the given
// keypair/role/notes, and wraps the result in an Envelope[T] of the given
// type. Every envelope factory in this package is a thin wrapper around
// this plus its type's payload-construction logic.
func SignEnvelope[T any](payload T, typ record.Type, privateKey, keyID, role, notes string) (record.Envelope[T], error) {
	checksum, err := canonical.Checksum(payload)
	if err != nil {
		return record.Envelope[T]{}, err
	}

	sig, err := crypto.Sign(payload, privateKey, keyID, role, notes)
	if err != nil {
		return record.Envelope[T]{}, err
	}

	return record.Envelope[T]{
		Header: record.Header{
			Version:         record.ProtocolVersion,
			Type:            typ,
			PayloadChecksum: checksum,
			Signatures:      []crypto.Signature{sig},
		},
		Payload: payload,
	}, nil
}
