package go_payhost

// Merchant holds PayHost merchant credentials.
//
// The ID is signed into every request; the SecretKey is the HMAC key and is
// never transmitted.
type Merchant struct {
	ID        string
	SecretKey string
}

func NewMerchant(id, secretKey string) Merchant {
	return Merchant{ID: id, SecretKey: secretKey}
}
