package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDesign = "sgdesign/design/v1"
	DomainParams = "sgdesign/params/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DesignID computes the content-addressed ID of an isomorphism class from
// its canonical certificate. Two designs share an ID iff they share a
// certificate.
func DesignID(certificate []byte) string {
	return hashWithDomain(DomainDesign, certificate)
}

// ParamsHash computes a stable hash of enumeration parameters, used to tell
// runs with identical settings apart from runs that differ.
// Returns error if params cannot be canonically marshaled.
func ParamsHash(params IRObject) (string, error) {
	canonical, err := MarshalCanonical(params)
	if err != nil {
		return "", fmt.Errorf("ParamsHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainParams, canonical), nil
}

// MustParamsHash is like ParamsHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParamsHash(params IRObject) string {
	h, err := ParamsHash(params)
	if err != nil {
		panic(err)
	}
	return h
}
