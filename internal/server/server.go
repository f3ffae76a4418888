package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pinchlab/internal/config"
	"pinchlab/internal/world"
)

func worldSpawn(cmd Command) config.Spawn {
	return config.Spawn{Kind: cmd.Kind, X: cmd.X, Y: cmd.Y, Z: cmd.Z}
}

// staleAfter is how many ticks an actor may go unreported before the
// server drops its hold/spring state on the actor's behalf.
const staleAfter = 30

// Server owns the tick loop. The world is only ever touched from the
// tick goroutine; client readers hand their latest frame over through
// the mutex-guarded pending fields.
type Server struct {
	Addr   string
	TickHz int

	world  *world.World
	log    *zap.Logger
	upgrad websocket.Upgrader

	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	pending  InputFrame
	commands []Command
	lastSeen map[int]int
}

func New(addr string, tickHz int, w *world.World, log *zap.Logger) *Server {
	return &Server{
		Addr:   addr,
		TickHz: tickHz,
		world:  w,
		log:    log,
		upgrad: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients:  make(map[*websocket.Conn]struct{}),
		lastSeen: make(map[int]int),
	}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	httpSrv := &http.Server{Addr: s.Addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := httpSrv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return s.tickLoop(ctx)
	})

	s.log.Info("listening", zap.String("addr", s.Addr), zap.Int("tick_hz", s.TickHz))
	return g.Wait()
}

func (s *Server) handleWS(rw http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrad.Upgrade(rw, req, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	welcome, err := Encode("welcome", Welcome{
		TickHz: s.TickHz,
		Width:  s.world.Width,
		Height: s.world.Height,
	})
	if err == nil {
		err = conn.WriteMessage(websocket.TextMessage, welcome)
	}
	if err != nil {
		s.log.Warn("welcome failed", zap.Error(err))
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info("client connected", zap.Int("clients", n))

	go s.readLoop(conn)
}

func (s *Server) readLoop(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		if len(s.clients) == 0 {
			s.pending = InputFrame{}
		}
		s.mu.Unlock()
		conn.Close()
		s.log.Info("client disconnected")
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		switch env.T {
		case "input":
			frame, err := DecodePayload[InputFrame](env)
			if err != nil {
				s.log.Debug("bad input frame", zap.Error(err))
				continue
			}
			s.mu.Lock()
			s.pending = frame
			s.mu.Unlock()

		case "command":
			cmd, err := DecodePayload[Command](env)
			if err != nil {
				s.log.Debug("bad command", zap.Error(err))
				continue
			}
			s.mu.Lock()
			s.commands = append(s.commands, cmd)
			s.mu.Unlock()

		default:
			s.log.Debug("unknown message type", zap.String("type", env.T))
		}
	}
}

func (s *Server) tickLoop(ctx context.Context) error {
	interval := time.Second / time.Duration(s.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	s.mu.Lock()
	frame := s.pending
	// Frames are consumed, not latched: a silent client contributes no
	// hands next tick, so lastSeen ages and the stale drop can fire.
	s.pending = InputFrame{}
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		s.apply(cmd)
	}

	inputs := toInputs(frame)

	// Actors that stopped reporting are dropped explicitly; absence of
	// input is not release.
	for _, in := range inputs {
		s.lastSeen[in.Actor] = s.world.Tick
	}
	for actor, seen := range s.lastSeen {
		if s.world.Tick-seen > staleAfter {
			s.world.DropActor(actor)
			delete(s.lastSeen, actor)
		}
	}

	s.world.Update(inputs)
	s.broadcast()
}

func (s *Server) apply(cmd Command) {
	switch cmd.Op {
	case "spawn":
		s.world.Spawn(worldSpawn(cmd))
		s.log.Info("spawn", zap.String("kind", cmd.Kind))
	case "reset":
		s.world.Reset()
		s.lastSeen = make(map[int]int)
		s.log.Info("reset")
	default:
		s.log.Debug("unknown command", zap.String("op", cmd.Op))
	}
}

func (s *Server) broadcast() {
	data, err := Encode("state", SnapshotWorld(s.world))
	if err != nil {
		s.log.Error("snapshot encode failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}
