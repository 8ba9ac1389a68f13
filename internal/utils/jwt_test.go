package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "digest-auth"
	testSignKey = "test-sign-key"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(testIssuer, 42, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.OwnerID)
}

func TestGenerateToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		signKey  string
	}{
		{name: "empty issuer", issuer: "", duration: time.Hour, signKey: testSignKey},
		{name: "zero duration", issuer: testIssuer, duration: 0, signKey: testSignKey},
		{name: "empty sign key", issuer: testIssuer, duration: time.Hour, signKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateToken(tt.issuer, 1, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testIssuer, 42, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseToken(token.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseToken_WrongIssuer(t *testing.T) {
	token, err := GenerateToken(testIssuer, 42, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseToken(token.SignedString, testSignKey, "someone-else")
	assert.Error(t, err)
}

func TestValidateAndParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testIssuer, 42, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseToken(token.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing token", header: "Bearer", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
