// Package rpc serves a life universe over JSON-RPC 2.0.
//
// Messages are framed with Content-Length headers, as in the Language Server
// Protocol. Methods mirror the operations of [life.Universe], with additions
// for loading and saving patterns and for the pattern database.
package rpc

import (
	"context"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/245790/gemini/pkg/config"
	"github.com/245790/gemini/pkg/errutil"
	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/prog"
	"github.com/245790/gemini/pkg/store"
	"github.com/245790/gemini/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[rpc] ")

// Program is the engine service subprogram.
type Program struct {
	run    bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "serve", false, "serve the engine over JSON-RPC on stdin and stdout")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) (err error) {
	if !p.run {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -serve")
	}
	cfg, err := config.Read(*p.config)
	if err != nil {
		return err
	}

	var db storedefs.Store
	if cfg.DB != "" {
		st, err := store.NewStore(cfg.DB)
		if err != nil {
			return err
		}
		defer func() { err = errutil.Multi(err, st.Close()) }()
		db = st
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Println("serving")
	defer logger.Println("connection closed")
	return serve(ctx, transport{fds[0], fds[1]}, newServer(cfg, db))
}

// Serves requests from the stream until the peer disconnects or ctx is done.
func serve(ctx context.Context, stream io.ReadWriteCloser, s *server) error {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		return conn.Close()
	}
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	return errutil.Multi(c.in.Close(), c.out.Close())
}
