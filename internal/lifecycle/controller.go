// Package lifecycle wires the language state to the host's
// connect/fully-joined/disconnect/command events.
//
// Every handler runs on the host's main update loop and must return without
// blocking. Store round-trips run on background goroutines and re-enter the
// loop through gameloop.Loop.NextTick before touching the session tracker or
// the language manager; that rejoin is the only place background results
// become visible to loop-owned state.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/langcentral/langcentral/internal/common"
	"github.com/langcentral/langcentral/internal/config"
	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/gameloop"
	"github.com/langcentral/langcentral/internal/langstate"
	"github.com/langcentral/langcentral/internal/logging"
	"github.com/langcentral/langcentral/internal/session"
)

// CommandName is the primary chat/console command. Config aliases are
// registered in addition to it.
const CommandName = "lang"

// Message keys handed to the Messenger together with positional arguments;
// rendering is the host's concern.
const (
	MsgWelcome          = "general.welcome"
	MsgJoinLoaded       = "join.language_loaded"
	MsgJoinNotLoaded    = "join.language_not_loaded"
	MsgCurrentLanguage  = "command.current_language"
	MsgLanguageChanged  = "command.language_changed"
	MsgLanguageNotFound = "command.language_not_found"
)

// Host is the narrow contract required from the event/command dispatch
// collaborator. Handlers registered here are invoked on the main loop.
type Host interface {
	RegisterConnectHandler(fn func(slot int, name, remoteAddr string))
	RegisterFullyJoinedHandler(fn func(slot int))
	RegisterDisconnectHandler(fn func(slot int))

	// RegisterCommand binds fn to a command name; argv[0] is the name.
	RegisterCommand(name string, fn func(user culture.UserID, argv []string))

	// UnregisterCommand removes a previously registered command by name,
	// including host built-ins. Unknown names are ignored.
	UnregisterCommand(name string)

	// UserIdentity resolves the durable identity occupying slot.
	UserIdentity(slot int) (culture.UserID, bool)
}

// Messenger delivers a user-visible message identified by key; localized
// rendering happens outside the core.
type Messenger interface {
	Tell(user culture.UserID, key string, args ...any)
}

// CountryResolver is the geolocation collaborator. Lookups are best-effort.
type CountryResolver interface {
	Country(addr string) (string, error)
}

// LanguageCache is the read-through/write-through preference cache
// (satisfied by *langcache.Service). Safe for concurrent use.
type LanguageCache interface {
	Get(ctx context.Context, id culture.UserID) (culture.Culture, error)
	Save(ctx context.Context, id culture.UserID, c culture.Culture) error
}

// Controller owns the per-connection state machine
// (Connecting → Provisional → Loading → Ready, Disconnected from anywhere).
type Controller struct {
	fallback    culture.Culture
	mapping     map[string]culture.Culture
	aliases     []string
	welcome     bool
	notifyDelay time.Duration

	loop     *gameloop.Loop
	sessions *session.Tracker
	langs    *langstate.Manager
	cache    LanguageCache
	geo      CountryResolver
	msg      Messenger
	log      logging.Logger

	host Host
	ctx  context.Context
	bg   sync.WaitGroup
}

// New builds a controller. geo may be nil, which disables country hints
// entirely; every other dependency is required.
func New(
	ctx context.Context,
	cfg *config.Config,
	loop *gameloop.Loop,
	sessions *session.Tracker,
	langs *langstate.Manager,
	cache LanguageCache,
	geo CountryResolver,
	msg Messenger,
	log logging.Logger,
) *Controller {
	return &Controller{
		fallback:    cfg.FallbackLanguage,
		mapping:     cfg.CountryLanguageMapping,
		aliases:     cfg.AdditionalCommandAliases,
		welcome:     cfg.ShouldPrintWelcomeMessage,
		notifyDelay: cfg.JoinNotifyDelay,
		loop:        loop,
		sessions:    sessions,
		langs:       langs,
		cache:       cache,
		geo:         geo,
		msg:         msg,
		log:         log,
		ctx:         ctx,
	}
}

// Bind registers the controller's handlers and commands with the host.
// The host's built-in lang command, if any, is unregistered first so this
// implementation takes over the name.
func (c *Controller) Bind(h Host) {
	c.host = h

	h.UnregisterCommand(CommandName)
	h.RegisterCommand(CommandName, c.OnCommand)
	for _, alias := range c.aliases {
		h.RegisterCommand(alias, c.OnCommand)
	}

	h.RegisterConnectHandler(c.OnConnect)
	h.RegisterFullyJoinedHandler(c.OnFullyJoined)
	h.RegisterDisconnectHandler(c.OnDisconnect)
}

// Wait blocks until all outstanding background loads and saves finish.
// Used on shutdown so a disconnect-triggered save is not cut off.
func (c *Controller) Wait() {
	c.bg.Wait()
}

// OnConnect creates the session slot and attempts the geolocation lookup.
// Any lookup failure is swallowed: failing to geolocate must never affect
// the connection.
func (c *Controller) OnConnect(slot int, name, remoteAddr string) {
	c.sessions.Connect(slot)

	if c.geo == nil {
		return
	}
	country, err := c.geo.Country(remoteAddr)
	if err != nil {
		c.log.Debug(c.ctx, "geoip lookup failed", "slot", slot, "name", name, "err", err)
		return
	}
	c.sessions.SetCountry(slot, country)
}

// OnFullyJoined resolves a provisional culture (mapped country, else
// fallback), publishes it immediately so the user is never without a
// language, and dispatches the preference load off the callback path.
func (c *Controller) OnFullyJoined(slot int) {
	if !c.sessions.Exists(slot) {
		return
	}

	user, ok := c.host.UserIdentity(slot)
	if !ok {
		// Logic defect: a load cannot be keyed without an identity.
		c.log.Error(c.ctx, "no resolvable identity for slot", "slot", slot)
		return
	}

	country, _ := c.sessions.TakeCountry(slot)
	c.langs.Set(user, c.provisionalFor(country))
	c.sessions.SetIdentity(slot, user)

	if c.welcome {
		c.msg.Tell(user, MsgWelcome)
	}

	c.bg.Add(1)
	go c.loadPreference(slot, user)
}

// loadPreference runs on a worker goroutine; its continuation rejoins the
// loop before mutating anything.
func (c *Controller) loadPreference(slot int, user culture.UserID) {
	defer c.bg.Done()

	loaded, err := c.cache.Get(c.ctx, user)

	c.loop.NextTick(func() {
		// The slot may be gone, or reused by a different player, if a
		// disconnect happened while the load was in flight. Expected; no-op.
		current, ok := c.sessions.Identity(slot)
		if !ok || current != user {
			return
		}

		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// No persisted preference: the provisional culture stands.
				c.sessions.MarkLoaded(slot)
				c.notifyLater(user, MsgJoinNotLoaded)
				return
			}
			// Transient store failure. The slot never becomes Ready, so a
			// later disconnect will not overwrite a real stored preference
			// with the provisional guess.
			c.log.Error(c.ctx, "language load failed", "user", user, "err", err)
			return
		}

		c.langs.Set(user, loaded)
		c.sessions.MarkLoaded(slot)
		c.notifyLater(user, MsgJoinLoaded, loaded.NativeName())
	})
}

// OnDisconnect deallocates the slot immediately and, when the slot had
// reached Ready, dispatches a save of whatever the manager currently holds.
// The manager entry itself is kept so a quick reconnect sees the last known
// value without waiting for another load.
func (c *Controller) OnDisconnect(slot int) {
	user, loaded := c.sessions.Remove(slot)
	if !loaded {
		return
	}

	current := c.langs.Get(user)

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		err := c.cache.Save(c.ctx, user, current)
		if err == nil {
			return
		}
		c.loop.NextTick(func() {
			c.log.Error(c.ctx, "failed to save language", "user", user, "err", err)
		})
	}()
}

// OnCommand handles the lang command synchronously against the language
// manager only; persistence happens at disconnect.
//
//	lang         -> report the current culture
//	lang <tag>   -> set the culture; unrecognized tags get a not-found reply
func (c *Controller) OnCommand(user culture.UserID, argv []string) {
	switch len(argv) {
	case 1:
		current := c.langs.Get(user)
		c.msg.Tell(user, MsgCurrentLanguage, current.NativeName(), current.DisplayName())

	case 2:
		requested, err := culture.Parse(argv[1])
		if err != nil {
			c.msg.Tell(user, MsgLanguageNotFound, argv[1])
			return
		}
		c.langs.Set(user, requested)
		c.msg.Tell(user, MsgLanguageChanged, requested.NativeName(), requested.DisplayName())
	}
}

func (c *Controller) provisionalFor(country string) culture.Culture {
	if country != "" {
		if mapped, ok := c.mapping[country]; ok {
			return mapped
		}
	}
	return c.fallback
}

// notifyLater fires an informational message after the configured delay to
// avoid racing other join-time messages.
func (c *Controller) notifyLater(user culture.UserID, key string, args ...any) {
	c.loop.AddTimer(c.notifyDelay, func() {
		c.msg.Tell(user, key, args...)
	})
}
