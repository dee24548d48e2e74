package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	const secret = "test_key_secret"
	const gatewayOrderID = "order_Nq7x1"
	const paymentID = "pay_Lm3z9"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	good := hex.EncodeToString(mac.Sum(nil))

	if !VerifySignature(secret, gatewayOrderID, paymentID, good) {
		t.Error("valid signature rejected")
	}
	if VerifySignature(secret, gatewayOrderID, paymentID, good[:len(good)-1]+"0") {
		t.Error("tampered signature accepted")
	}
	if VerifySignature(secret, gatewayOrderID, "pay_other", good) {
		t.Error("signature for another payment accepted")
	}
	if VerifySignature("wrong_secret", gatewayOrderID, paymentID, good) {
		t.Error("signature verified under the wrong secret")
	}
	if VerifySignature(secret, gatewayOrderID, paymentID, "") {
		t.Error("empty signature accepted")
	}
}
