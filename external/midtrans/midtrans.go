package midtrans

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

func NewSnapClient(serverKey string) *snap.Client {
	var client snap.Client
	client.New(serverKey, midtrans.Sandbox)
	return &client
}

// VerifySignature checks a midtrans notification signature:
// sha512(order_id + status_code + gross_amount + server key).
func VerifySignature(orderID, statusCode, grossAmount, signature, serverKey string) bool {
	raw := orderID + statusCode + grossAmount + serverKey
	hash := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(hash[:]) == signature
}
