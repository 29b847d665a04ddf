package client_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/needhomes/needhomes-go/client"
)

func TestExtractMessageString(t *testing.T) {
	env := client.Envelope{Message: json.RawMessage(`"property not found"`)}
	require.Equal(t, "property not found", env.ExtractMessage("fallback"))
}

func TestExtractMessageFieldErrorArray(t *testing.T) {
	env := client.Envelope{Message: json.RawMessage(`["email must be valid","password too short"]`)}
	require.Equal(t, "email must be valid, password too short", env.ExtractMessage("fallback"))
}

func TestExtractMessageFallbacks(t *testing.T) {
	require.Equal(t, "fallback", (&client.Envelope{}).ExtractMessage("fallback"))
	require.Equal(t, "fallback", (&client.Envelope{Message: json.RawMessage(`""`)}).ExtractMessage("fallback"))
	require.Equal(t, "fallback", (&client.Envelope{Message: json.RawMessage(`[]`)}).ExtractMessage("fallback"))
	require.Equal(t, "fallback", (&client.Envelope{Message: json.RawMessage(`42`)}).ExtractMessage("fallback"))
}
