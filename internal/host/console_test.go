package host

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/gameloop"
)

func newTestConsole() (*Console, *gameloop.Loop, *bytes.Buffer) {
	loop := gameloop.New(time.Millisecond)
	out := &bytes.Buffer{}
	return NewConsole(loop, out), loop, out
}

func TestConnectLine_DispatchesOnLoop(t *testing.T) {
	c, loop, _ := newTestConsole()

	var gotSlot int
	var gotName, gotAddr string
	c.RegisterConnectHandler(func(slot int, name, addr string) {
		gotSlot, gotName, gotAddr = slot, name, addr
	})

	require.True(t, c.handleLine("connect 3 alice 198.51.100.1:27005"))
	assert.Zero(t, gotSlot, "handler must not run before the loop ticks")

	loop.Tick()
	assert.Equal(t, 3, gotSlot)
	assert.Equal(t, "alice", gotName)
	assert.Equal(t, "198.51.100.1:27005", gotAddr)
}

func TestIdentifyAndDisconnect_IdentityLifecycle(t *testing.T) {
	c, loop, _ := newTestConsole()
	c.RegisterDisconnectHandler(func(int) {})

	c.handleLine("identify 3 76561198000000001")
	loop.Tick()

	user, ok := c.UserIdentity(3)
	require.True(t, ok)
	assert.EqualValues(t, 76561198000000001, user)

	c.handleLine("disconnect 3")
	loop.Tick()

	_, ok = c.UserIdentity(3)
	assert.False(t, ok)
}

func TestCmdLine_DispatchesRegisteredCommand(t *testing.T) {
	c, loop, _ := newTestConsole()

	var gotUser culture.UserID
	var gotArgv []string
	c.RegisterCommand("lang", func(user culture.UserID, argv []string) {
		gotUser, gotArgv = user, argv
	})

	c.handleLine("identify 1 42")
	c.handleLine("cmd 1 lang de-DE")
	loop.Tick()

	assert.EqualValues(t, 42, gotUser)
	assert.Equal(t, []string{"lang", "de-DE"}, gotArgv)
}

func TestCmdLine_UnknownCommand(t *testing.T) {
	c, loop, out := newTestConsole()

	c.handleLine("identify 1 42")
	c.handleLine("cmd 1 nosuch")
	loop.Tick()

	assert.Contains(t, out.String(), "unknown command: nosuch")
}

func TestCmdLine_NoIdentity(t *testing.T) {
	c, loop, out := newTestConsole()
	c.RegisterCommand("lang", func(culture.UserID, []string) {
		t.Fatal("must not dispatch without an identity")
	})

	c.handleLine("cmd 1 lang")
	loop.Tick()

	assert.Contains(t, out.String(), "slot has no identity: 1")
}

func TestUnregisterCommand(t *testing.T) {
	c, loop, out := newTestConsole()
	c.RegisterCommand("lang", func(culture.UserID, []string) {
		t.Fatal("unregistered command must not dispatch")
	})
	c.UnregisterCommand("lang")

	c.handleLine("identify 1 42")
	c.handleLine("cmd 1 lang")
	loop.Tick()

	assert.Contains(t, out.String(), "unknown command: lang")
}

func TestMalformedLines_ReportUsage(t *testing.T) {
	c, _, out := newTestConsole()

	c.handleLine("connect 1")
	c.handleLine("identify x 42")
	c.handleLine("join")
	c.handleLine("cmd 1")
	c.handleLine("wat")

	s := out.String()
	assert.Contains(t, s, "usage: connect")
	assert.Contains(t, s, "bad slot: x")
	assert.Contains(t, s, "usage: join")
	assert.Contains(t, s, "usage: cmd")
	assert.Contains(t, s, "unknown input: wat")
}

func TestRun_StopsOnExitAndEOF(t *testing.T) {
	c, loop, _ := newTestConsole()

	var joins []int
	c.RegisterFullyJoinedHandler(func(slot int) { joins = append(joins, slot) })

	script := "join 1\nexit\njoin 2\n"
	require.NoError(t, c.Run(context.Background(), strings.NewReader(script)))

	loop.Tick()
	assert.Equal(t, []int{1}, joins, "lines after exit must not be read")

	require.NoError(t, c.Run(context.Background(), strings.NewReader("join 3\n")))
	loop.Tick()
	assert.Equal(t, []int{1, 3}, joins)
}

func TestTell_WritesAddressedMessage(t *testing.T) {
	c, _, out := newTestConsole()

	c.Tell(42, "command.language_changed", "Deutsch", "German (Germany)")

	assert.Contains(t, out.String(), "-> 42 command.language_changed Deutsch German (Germany)")
}
