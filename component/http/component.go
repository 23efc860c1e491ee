package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/redoxbridge/redoxbridge/component"
	"github.com/redoxbridge/redoxbridge/lib/logging"
)

var _ component.Lifecycle = (*Component)(nil)

type Config struct {
	PublicInterface   InterfaceConfig `koanf:"public"`
	InternalInterface InterfaceConfig `koanf:"internal"`
}

type InterfaceConfig struct {
	// Listener is the address to bind to, e.g. ":8080".
	Listener string `koanf:"listener"`
}

func DefaultConfig() Config {
	return Config{
		PublicInterface:   InterfaceConfig{Listener: ":8080"},
		InternalInterface: InterfaceConfig{Listener: ":8081"},
	}
}

type Component struct {
	config         Config
	publicMux      *http.ServeMux
	publicServer   *http.Server
	publicAddr     net.Addr
	internalMux    *http.ServeMux
	internalServer *http.Server
	internalAddr   net.Addr
}

// New creates an instance of the HTTP component, which handles the HTTP interfaces for the application.
func New(config Config, publicMux *http.ServeMux, internalMux *http.ServeMux) *Component {
	return &Component{
		config:      config,
		publicMux:   publicMux,
		internalMux: internalMux,
	}
}

// Start binds both interfaces, so that an address already in use is reported here, and then serves in the background.
func (c *Component) Start() error {
	publicListener, err := net.Listen("tcp", c.config.PublicInterface.Listener)
	if err != nil {
		return fmt.Errorf("failed to bind public HTTP interface: %w", err)
	}
	internalListener, err := net.Listen("tcp", c.config.InternalInterface.Listener)
	if err != nil {
		_ = publicListener.Close()
		return fmt.Errorf("failed to bind internal HTTP interface: %w", err)
	}
	c.publicAddr = publicListener.Addr()
	c.internalAddr = internalListener.Addr()
	c.publicServer = newServer(c.publicMux)
	c.internalServer = newServer(c.internalMux)
	log.Info().Msgf("Starting HTTP servers (public-address: %s, internal-address: %s)", c.publicAddr, c.internalAddr)
	go serve(c.publicServer, publicListener, "public")
	go serve(c.internalServer, internalListener, "internal")
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	if c.publicServer != nil {
		if err := c.publicServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown public HTTP server: %w", err)
		}
	}
	if c.internalServer != nil {
		if err := c.internalServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown internal HTTP server: %w", err)
		}
	}
	return nil
}

func (c *Component) RegisterHttpHandlers(_ *http.ServeMux, _ *http.ServeMux) {
	// Nothing to do here
}

// PublicAddr returns the bound address of the public interface, after Start.
func (c *Component) PublicAddr() net.Addr {
	return c.publicAddr
}

// InternalAddr returns the bound address of the internal interface, after Start.
func (c *Component) InternalAddr() net.Addr {
	return c.internalAddr
}

func newServer(mux *http.ServeMux) *http.Server {
	return &http.Server{
		Handler:           logging.Middleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func serve(server *http.Server, listener net.Listener, name string) {
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Err(err).Msgf("Failed to serve %s HTTP interface", name)
	}
}
