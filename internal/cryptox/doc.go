// Package cryptox holds the stateless primitives behind the contract store:
// content fingerprints, per-record key material and authenticated sealing of
// structured payloads with AES-256-GCM.
//
// Wire formats: fingerprints, ciphertexts and tags are lowercase hex; keys and
// IVs are standard base64.
package cryptox
