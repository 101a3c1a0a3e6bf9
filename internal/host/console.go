// Package host provides an in-process, line-driven console host. It
// implements the dispatcher and messenger contracts over a small text
// protocol on an io.Reader, which makes the whole lifecycle drivable from a
// terminal or a scripted session.
package host

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/gameloop"
)

// Console reads one command per line and schedules the matching handler on
// the update loop, so registered handlers always run in loop context.
//
// Protocol:
//
//	connect <slot> <name> <addr>   — a connection arrives
//	identify <slot> <userid>       — resolve the slot's durable identity
//	join <slot>                    — the connection is fully in
//	cmd <slot> <command> [args...] — the user issues a chat/console command
//	disconnect <slot>              — the connection drops
//	exit | quit                    — stop reading
type Console struct {
	loop *gameloop.Loop
	out  io.Writer

	onConnect    func(slot int, name, remoteAddr string)
	onJoined     func(slot int)
	onDisconnect func(slot int)
	commands     map[string]func(user culture.UserID, argv []string)
	identities   map[int]culture.UserID
}

func NewConsole(loop *gameloop.Loop, out io.Writer) *Console {
	return &Console{
		loop:       loop,
		out:        out,
		commands:   make(map[string]func(culture.UserID, []string)),
		identities: make(map[int]culture.UserID),
	}
}

func (c *Console) RegisterConnectHandler(fn func(slot int, name, remoteAddr string)) {
	c.onConnect = fn
}

func (c *Console) RegisterFullyJoinedHandler(fn func(slot int)) {
	c.onJoined = fn
}

func (c *Console) RegisterDisconnectHandler(fn func(slot int)) {
	c.onDisconnect = fn
}

func (c *Console) RegisterCommand(name string, fn func(user culture.UserID, argv []string)) {
	c.commands[name] = fn
}

func (c *Console) UnregisterCommand(name string) {
	delete(c.commands, name)
}

// UserIdentity reports the identity recorded by an identify line. Called
// from loop context only.
func (c *Console) UserIdentity(slot int) (culture.UserID, bool) {
	user, ok := c.identities[slot]
	return user, ok
}

// Tell prints the message key and its arguments addressed to the user.
// Rendering message keys into localized text is out of scope here.
func (c *Console) Tell(user culture.UserID, key string, args ...any) {
	fmt.Fprintln(c.out, append([]any{"->", uint64(user), key}, args...)...)
}

// Run reads protocol lines until EOF, an exit command, or ctx cancellation.
// Parsed events are handed to the loop; Run itself never touches loop-owned
// state.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if !c.handleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handleLine parses one protocol line and schedules its effect on the loop.
// It reports false when the session should end.
func (c *Console) handleLine(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case "connect":
		if len(parts) != 4 {
			fmt.Fprintln(c.out, "usage: connect <slot> <name> <addr>")
			return true
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			fmt.Fprintln(c.out, "bad slot:", parts[1])
			return true
		}
		name, addr := parts[2], parts[3]
		c.loop.NextTick(func() {
			if c.onConnect != nil {
				c.onConnect(slot, name, addr)
			}
		})

	case "identify":
		if len(parts) != 3 {
			fmt.Fprintln(c.out, "usage: identify <slot> <userid>")
			return true
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			fmt.Fprintln(c.out, "bad slot:", parts[1])
			return true
		}
		user, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			fmt.Fprintln(c.out, "bad userid:", parts[2])
			return true
		}
		c.loop.NextTick(func() {
			c.identities[slot] = culture.UserID(user)
		})

	case "join":
		if slot, ok := c.parseSlot(parts, 2); ok {
			c.loop.NextTick(func() {
				if c.onJoined != nil {
					c.onJoined(slot)
				}
			})
		}

	case "cmd":
		if len(parts) < 3 {
			fmt.Fprintln(c.out, "usage: cmd <slot> <command> [args...]")
			return true
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			fmt.Fprintln(c.out, "bad slot:", parts[1])
			return true
		}
		argv := parts[2:]
		c.loop.NextTick(func() {
			user, ok := c.identities[slot]
			if !ok {
				fmt.Fprintln(c.out, "slot has no identity:", slot)
				return
			}
			fn, ok := c.commands[argv[0]]
			if !ok {
				fmt.Fprintln(c.out, "unknown command:", argv[0])
				return
			}
			fn(user, argv)
		})

	case "disconnect":
		if slot, ok := c.parseSlot(parts, 2); ok {
			c.loop.NextTick(func() {
				delete(c.identities, slot)
				if c.onDisconnect != nil {
					c.onDisconnect(slot)
				}
			})
		}

	case "exit", "quit":
		return false

	default:
		fmt.Fprintln(c.out, "unknown input:", parts[0])
	}
	return true
}

func (c *Console) parseSlot(parts []string, want int) (int, bool) {
	if len(parts) != want {
		fmt.Fprintln(c.out, "usage:", parts[0], "<slot>")
		return 0, false
	}
	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		fmt.Fprintln(c.out, "bad slot:", parts[1])
		return 0, false
	}
	return slot, true
}
