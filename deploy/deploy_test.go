package deploy

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/stretchr/testify/require"
)

func TestSplitTicketManifest(t *testing.T) {
	m := manifest.NewManifest("anything")
	m.SupportedStandards = []string{"NEP-17"}

	prefix, suffix, err := SplitTicketManifest(*m)
	require.NoError(t, err)

	var spliced manifest.Manifest
	raw := append(prefix, []byte(`"Event Ticket 42"`)...)
	raw = append(raw, suffix...)
	require.NoError(t, json.Unmarshal(raw, &spliced))
	require.Equal(t, "Event Ticket 42", spliced.Name)
	require.Equal(t, m.SupportedStandards, spliced.SupportedStandards)
}
