package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func gjsonArray(t *testing.T, doc, path string) []string {
	t.Helper()
	res := gjson.Get(doc, path)
	require.True(t, res.IsArray(), "%s is not an array in %s", path, doc)

	var out []string
	for _, v := range res.Array() {
		out = append(out, v.String())
	}
	return out
}
