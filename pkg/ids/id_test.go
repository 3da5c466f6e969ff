// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	require := require.New(t)

	id := GenerateTestID()
	require.False(id.IsEmpty())

	parsed, err := FromString(id.String())
	require.NoError(err)
	require.Equal(id, parsed)

	// Prefix is optional on parse.
	parsed, err = FromString(id.String()[2:])
	require.NoError(err)
	require.Equal(id, parsed)

	parsed, err = FromBytes(id.Bytes())
	require.NoError(err)
	require.Equal(id, parsed)
}

func TestIDParseErrors(t *testing.T) {
	require := require.New(t)

	_, err := FromString("0x1234")
	require.Error(err)

	_, err = FromString("zz")
	require.Error(err)

	_, err = FromBytes([]byte{1, 2, 3})
	require.Error(err)
}

func TestIDJSON(t *testing.T) {
	require := require.New(t)

	id := GenerateTestID()
	data, err := json.Marshal(id)
	require.NoError(err)

	var decoded ID
	require.NoError(json.Unmarshal(data, &decoded))
	require.Equal(id, decoded)
}
