package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"order_abc123","amount":2500,"currency":"INR","receipt":"rcpt-1","status":"created"}`))
	}))
	defer srv.Close()

	client := NewClient("key", "secret", srv.URL)

	resp, err := client.CreateOrder(CreateOrderRequest{Amount: 2500, Currency: "INR", Receipt: "rcpt-1"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", resp.ID)
	assert.Equal(t, int64(2500), resp.Amount)
	assert.Equal(t, "created", resp.Status)
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("key", "secret", srv.URL)

	_, err := client.CreateOrder(CreateOrderRequest{Amount: 100, Currency: "INR", Receipt: "rcpt-2"})
	assert.Error(t, err)
}

func TestClient_VerifySignature(t *testing.T) {
	client := NewClient("key", "secret", "http://unused")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc123|pay_def456"))
	valid := hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{"корректная подпись", valid, true},
		{"искажённая подпись", "deadbeef" + valid[8:], false},
		{"пустая подпись", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.VerifySignature("order_abc123", "pay_def456", tt.signature))
		})
	}
}
