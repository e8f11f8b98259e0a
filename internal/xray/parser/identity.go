package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// CalculateHash returns an identifier for the server a profile points at.
// Remarks are ignored, so the same server shared under two names hashes equal.
func (p *Profile) CalculateHash() string {
	var parts []string

	// --- 1. Basic Protocol & Endpoint ---
	parts = append(parts, string(p.Protocol))
	parts = append(parts, strings.ToLower(p.Address))
	parts = append(parts, fmt.Sprintf("%d", p.Port))

	// --- 2. Authentication ---
	parts = append(parts, Str(p.Username))
	parts = append(parts, Str(p.UUID))
	parts = append(parts, strings.ToLower(Str(p.Method)))

	// VLESS "none" is the default encryption
	encryption := strings.ToLower(Str(p.Encryption))
	if encryption == "none" {
		encryption = ""
	}
	parts = append(parts, encryption)

	// --- 3. Transport ---
	// Empty network means tcp, header "none" means no header
	network := strings.ToLower(Str(p.Network))
	if network == "" {
		network = "tcp"
	}
	parts = append(parts, network)

	header := strings.ToLower(Str(p.HeaderType))
	if header == "none" {
		header = ""
	}
	parts = append(parts, header)

	parts = append(parts, Str(p.Host))
	parts = append(parts, Str(p.Path))
	parts = append(parts, Str(p.Mode))
	parts = append(parts, Str(p.ServiceName))
	parts = append(parts, Str(p.Seed))

	// --- 4. Security ---
	parts = append(parts, Str(p.Security))
	parts = append(parts, Str(p.SNI))
	parts = append(parts, Str(p.Flow))

	// Reality keys are case-sensitive
	parts = append(parts, Str(p.PublicKey))
	parts = append(parts, Str(p.ShortID))

	signature := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(hash[:])
}
