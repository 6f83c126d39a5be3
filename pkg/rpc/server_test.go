package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/245790/gemini/pkg/config"
	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/store"
	"github.com/245790/gemini/pkg/store/storedefs"
	"github.com/245790/gemini/pkg/tt"
)

type client struct {
	t    *testing.T
	conn *jsonrpc2.Conn
}

var noopHandler = jsonrpc2.HandlerWithError(
	func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) { return nil, nil })

func setup(t *testing.T, cfg config.Config, db storedefs.Store) *client {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverSide, clientSide := net.Pipe()
	done := make(chan struct{})
	go func() {
		serve(ctx, serverSide, newServer(cfg, db))
		close(done)
	}()
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), noopHandler)
	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return &client{t, conn}
}

func (c *client) call(method string, params, result any) {
	c.t.Helper()
	if result == nil {
		result = &json.RawMessage{}
	}
	if err := c.conn.Call(context.Background(), method, params, result); err != nil {
		c.t.Fatalf("%s: %v", method, err)
	}
}

func (c *client) callErr(method string, params any) *jsonrpc2.Error {
	c.t.Helper()
	var result json.RawMessage
	err := c.conn.Call(context.Background(), method, params, &result)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) {
		c.t.Fatalf("%s -> %v, want a JSON-RPC error", method, err)
	}
	return rpcErr
}

type cell struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Alive bool `json:"alive"`
}

func TestServer_CellsAndUpdate(t *testing.T) {
	c := setup(t, config.Default(), nil)

	var size sizeParams
	c.call("size", nil, &size)
	if size != (sizeParams{64, 64}) {
		t.Errorf("size -> %v, want the configured 64x64", size)
	}

	// A blinker.
	for _, y := range []int{-1, 0, 1} {
		c.call("setAlive", cell{X: 0, Y: y, Alive: true}, nil)
	}
	var alive bool
	c.call("isAlive", cell{X: 0, Y: 1}, &alive)
	if !alive {
		t.Errorf("isAlive after setAlive -> false")
	}

	var stats life.Stats
	c.call("update", nil, &stats)
	if stats.Generation != 1 || stats.Population != 3 {
		t.Errorf("update -> %+v", stats)
	}
	var array [][]int
	c.call("array", nil, &array)
	if diff := cmp.Diff([][]int{{1, 1, 1}}, array); diff != "" {
		t.Errorf("array (-want +got):\n%s", diff)
	}
	var bounds boundsResult
	c.call("bounds", nil, &bounds)
	if bounds != (boundsResult{-1, 1, 0, 0}) {
		t.Errorf("bounds -> %+v", bounds)
	}

	c.call("rotate", rotateParams{Clockwise: true}, nil)
	c.call("array", nil, &array)
	if diff := cmp.Diff([][]int{{1}, {1}, {1}}, array); diff != "" {
		t.Errorf("array after rotating (-want +got):\n%s", diff)
	}

	c.call("jump", nil, &stats)
	if stats.Generation <= 1 || stats.Population != 3 {
		t.Errorf("jump -> %+v", stats)
	}

	c.call("clear", nil, nil)
	c.call("stats", nil, &stats)
	if stats.Generation != 0 || stats.Population != 0 {
		t.Errorf("stats after clear -> %+v", stats)
	}
}

func TestServer_InitAndRandom(t *testing.T) {
	c := setup(t, config.Default(), nil)

	var stats life.Stats
	c.call("init", sizeParams{100, 10}, &stats)
	if stats.Width != 128 || stats.Population != 0 {
		t.Errorf("init -> %+v", stats)
	}

	params := map[string]any{"width": 20, "height": 20, "density": 0.5, "seed": 7}
	var first, second [][]int
	c.call("random", params, &stats)
	c.call("array", nil, &first)
	c.call("random", params, &stats)
	c.call("array", nil, &second)
	if stats.Population == 0 {
		t.Errorf("random fill has no live cells")
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("random fills with the same seed differ:\n%s", diff)
	}
}

func TestServer_Patterns(t *testing.T) {
	c := setup(t, config.Default(), nil)

	var stats life.Stats
	c.call("load", patternParams{Text: "bo$2bo$3o!", Name: "glider.rle"}, &stats)
	if stats.Population != 5 || stats.Generation != 0 {
		t.Errorf("load -> %+v", stats)
	}
	var rle string
	c.call("save", saveParams{}, &rle)
	if rle != "x = 3, y = 3, rule = B3/S23\nbo$2bo$3o!\n" {
		t.Errorf("save -> %q", rle)
	}
	var plain string
	c.call("save", saveParams{Format: "plain"}, &plain)
	if plain != ".O.\n..O\nOOO\n" {
		t.Errorf("save plain -> %q", plain)
	}

	c.call("insert", patternParams{Text: "OO\nOO", X: 10, Y: 10, Alive: true}, nil)
	c.call("stats", nil, &stats)
	if stats.Population != 9 {
		t.Errorf("population after insert -> %d", stats.Population)
	}
	c.call("insert", patternParams{Text: "OO\nOO", X: 10, Y: 10, Alive: false}, nil)
	c.call("stats", nil, &stats)
	if stats.Population != 5 {
		t.Errorf("population after erase -> %d", stats.Population)
	}

	var rects []life.Rect
	c.call("draw", drawParams{CenterX: 0, CenterY: 0, Width: 64}, &rects)
	if len(rects) != 5 {
		t.Errorf("draw -> %v, want 5 rects", rects)
	}
}

func TestServer_Errors(t *testing.T) {
	c := setup(t, config.Default(), nil)

	tests := []struct {
		method string
		params any
		code   int64
	}{
		{"nosuch", nil, jsonrpc2.CodeMethodNotFound},
		{"setAlive", "not an object", jsonrpc2.CodeInvalidParams},
		{"setAlive", cell{X: 1 << 61}, jsonrpc2.CodeInvalidParams},
		{"init", sizeParams{-1, 3}, jsonrpc2.CodeInvalidParams},
		{"random", map[string]any{"density": 2}, jsonrpc2.CodeInvalidParams},
		{"draw", drawParams{Width: 0}, jsonrpc2.CodeInvalidParams},
		{"save", saveParams{Format: "gif"}, jsonrpc2.CodeInvalidParams},
		{"load", patternParams{Text: "bq!", Name: "bad.rle"}, codeEngineError},
		{"insert", patternParams{Text: "3!", Name: "bad.rle"}, codeEngineError},
		{"store.list", nil, codeEngineError},
		{"store.save", nameParams{"g"}, codeEngineError},
		{"store.snapshots", rangeParams{}, codeEngineError},
	}
	for _, test := range tests {
		err := c.callErr(test.method, test.params)
		if err.Code != test.code {
			t.Errorf("%s(%v) -> code %d (%s), want %d", test.method, test.params, err.Code, err.Message, test.code)
		}
	}

	err := c.callErr("load", patternParams{Text: "bq!", Name: "bad.rle"})
	if want := "rle parse error: bad.rle:1:2: unexpected character 'q'"; err.Message != want {
		t.Errorf("load error message %q, want %q", err.Message, want)
	}
}

func TestServer_Compaction(t *testing.T) {
	cfg := config.Default()
	cfg.MaxNodes = 1
	c := setup(t, cfg, nil)
	c.call("load", patternParams{Text: "bo$2bo$3o!", Name: "g.rle"}, nil)
	var stats life.Stats
	c.call("update", nil, &stats)
	if stats.Memo != 0 {
		t.Errorf("memo not dropped by compaction: %+v", stats)
	}
	if stats.Population != 5 {
		t.Errorf("compaction changed the universe: %+v", stats)
	}

	cfg.MaxNodes = 0
	c = setup(t, cfg, nil)
	c.call("load", patternParams{Text: "bo$2bo$3o!", Name: "g.rle"}, nil)
	c.call("update", nil, &stats)
	if stats.Memo == 0 {
		t.Errorf("compacted with max_nodes = 0: %+v", stats)
	}
}

func TestServer_Store(t *testing.T) {
	c := setup(t, config.Default(), store.MustTempStore(t))

	c.call("load", patternParams{Text: "bo$2bo$3o!", Name: "glider.rle"}, nil)
	c.call("store.save", nameParams{"glider"}, nil)
	var names []string
	c.call("store.list", nil, &names)
	if diff := cmp.Diff([]string{"glider"}, names); diff != "" {
		t.Errorf("store.list (-want +got):\n%s", diff)
	}

	c.call("clear", nil, nil)
	var stats life.Stats
	c.call("store.load", nameParams{"glider"}, &stats)
	if stats.Population != 5 {
		t.Errorf("store.load -> %+v", stats)
	}

	// Snapshots keep the generation and the position.
	for i := 0; i < 8; i++ {
		c.call("update", nil, nil)
	}
	var before [][]int
	var bounds, restored boundsResult
	c.call("array", nil, &before)
	c.call("bounds", nil, &bounds)
	var seq int
	c.call("store.snapshot", nameParams{"glider"}, &seq)
	if seq != 1 {
		t.Errorf("store.snapshot -> %d", seq)
	}
	c.call("clear", nil, nil)
	c.call("store.restore", seqParams{seq}, &stats)
	if stats.Generation != 8 || stats.Population != 5 {
		t.Errorf("store.restore -> %+v", stats)
	}
	var after [][]int
	c.call("array", nil, &after)
	c.call("bounds", nil, &restored)
	if diff := cmp.Diff(before, after); diff != "" || bounds != restored {
		t.Errorf("restored state differs: bounds %v vs %v, cells (-want +got):\n%s", bounds, restored, diff)
	}

	c.call("update", nil, nil)
	c.call("store.snapshot", nameParams{"later"}, &seq)
	if seq != 2 {
		t.Errorf("second store.snapshot -> %d", seq)
	}
	snapshotNames := func(r rangeParams) []string {
		var snaps []storedefs.Snapshot
		c.call("store.snapshots", r, &snaps)
		names := []string{}
		for _, snap := range snaps {
			names = append(names, fmt.Sprintf("%d:%s@%d", snap.Seq, snap.Name, snap.Generation))
		}
		return names
	}
	tt.Test(t, tt.Fn("store.snapshots", snapshotNames), tt.Table{
		tt.Args(rangeParams{}).Rets([]string{"1:glider@8", "2:later@9"}),
		tt.Args(rangeParams{From: 2}).Rets([]string{"2:later@9"}),
		tt.Args(rangeParams{From: 1, Upto: 2}).Rets([]string{"1:glider@8"}),
		tt.Args(rangeParams{From: 3}).Rets([]string{}),
	})

	if err := c.callErr("store.restore", seqParams{42}); !strings.Contains(err.Message, "no such snapshot") {
		t.Errorf("store.restore of a missing snapshot -> %v", err)
	}
	if err := c.callErr("store.load", nameParams{"nosuch"}); !strings.Contains(err.Message, "no such pattern") {
		t.Errorf("store.load of a missing pattern -> %v", err)
	}

	c.call("store.delete", nameParams{"glider"}, nil)
	c.call("store.list", nil, &names)
	if len(names) != 0 {
		t.Errorf("store.list after delete -> %v", names)
	}
}
