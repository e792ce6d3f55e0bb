package upstream

import (
	"crypto/sha256"
	"encoding/hex"
)

// GatewayDigest derives the mobile-money gateway password for a timestamp:
// sha256 over username + accountno + partnerpassword + timestamp, hex
// encoded. The callback handler uses it to verify the caller when gateway
// credentials are configured.
func GatewayDigest(username, accountNo, partnerPassword, timestamp string) string {
	sum := sha256.Sum256([]byte(username + accountNo + partnerPassword + timestamp))
	return hex.EncodeToString(sum[:])
}
