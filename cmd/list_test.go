package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runList(t *testing.T, file, marker string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, file, marker))
	return buf.String()
}

func TestList_ProceduresFromOneFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFile(t, "login.catchr", loginScenario)
	runSync(t)

	out := runList(t, "", "")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Test_login__section_login__when_the_password_is_right__then_the_user_is_signed_in")
	assert.Contains(t, lines[0], "login.catchr")
	assert.Contains(t, lines[0], "sync")
	assert.Contains(t, lines[1], "then_a_session_is_created")
}

func TestList_OrderedByFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFile(t, "login.catchr", loginScenario)
	writeFile(t, "cart.catchr", cartScenario)
	runSync(t)

	out := runList(t, "", "")

	assert.Less(t, strings.Index(out, "Test_cart__given_an_empty_cart__then_the_total_is_zero"), strings.Index(out, "Test_login__"))
}

func TestList_FileFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFile(t, "login.catchr", loginScenario)
	writeFile(t, "cart.catchr", cartScenario)
	runSync(t)

	out := runList(t, "cart.catchr", "")

	assert.Contains(t, out, "Test_cart__given_an_empty_cart__then_the_total_is_zero")
	assert.NotContains(t, out, "Test_login__")
}

func TestList_ModeFilter(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFile(t, "login.catchr", loginScenario)
	runSync(t)

	assert.Empty(t, runList(t, "", "parallel"))
	assert.NotEmpty(t, runList(t, "", "sync"))
}

func TestList_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)
	runSync(t)

	assert.Empty(t, runList(t, "", ""))
}

func TestList_WithoutInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	assert.ErrorContains(t, RunList(&buf, "", ""), "run `catchr init` first")
}
