package rpc

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/245790/gemini/pkg/config"
	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/pattern"
	"github.com/245790/gemini/pkg/store/storedefs"
)

// Code of errors from the engine, such as malformed patterns or store
// failures.
const codeEngineError = -32000

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
	errNoDB = &jsonrpc2.Error{
		Code: codeEngineError, Message: "no pattern database configured"}
)

func engineError(err error) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: codeEngineError, Message: err.Error()}
}

// Largest magnitude of a coordinate accepted from clients.
const maxCoord = 1 << (life.MaxLevel - 2)

type server struct {
	cfg config.Config
	u   *life.Universe
	// Nil when no database is configured.
	db storedefs.Store
}

func newServer(cfg config.Config, db storedefs.Store) *server {
	u := life.New(nil)
	u.InitEmpty(cfg.Width, cfg.Height)
	return &server{cfg, u, db}
}

func (s *server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"init":     s.init,
		"random":   s.random,
		"clear":    s.clear,
		"isAlive":  s.isAlive,
		"setAlive": s.setAlive,
		"size":     s.size,
		"update":   s.update,
		"jump":     s.jump,
		"stats":    s.stats,
		"rotate":   s.rotate,
		"bounds":   s.bounds,
		"array":    s.array,
		"insert":   s.insert,
		"load":     s.load,
		"save":     s.save,
		"draw":     s.draw,

		"store.save":      s.storeSave,
		"store.load":      s.storeLoad,
		"store.list":      s.storeList,
		"store.delete":    s.storeDelete,
		"store.snapshot":  s.storeSnapshot,
		"store.restore":   s.storeRestore,
		"store.snapshots": s.storeSnapshots,
	})
}

type method func(context.Context, json.RawMessage) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		params := json.RawMessage("null")
		if req.Params != nil {
			params = *req.Params
		}
		logger.Println("handling", req.Method)
		return fn(ctx, params)
	})
}

func decode(raw json.RawMessage, params any) error {
	if json.Unmarshal(raw, params) != nil {
		return errInvalidParams
	}
	return nil
}

func inRange(coords ...int) bool {
	for _, c := range coords {
		if c <= -maxCoord || c >= maxCoord {
			return false
		}
	}
	return true
}

// Handler implementations. These are all called synchronously, in the order
// the requests arrive.

type sizeParams struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *server) init(_ context.Context, raw json.RawMessage) (any, error) {
	var params sizeParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if params.Width < 0 || params.Height < 0 || !inRange(params.Width, params.Height) {
		return nil, errInvalidParams
	}
	s.u.InitEmpty(params.Width, params.Height)
	return s.u.Stats(), nil
}

type randomParams struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Density *float64 `json:"density"`
	Seed    *int64   `json:"seed"`
}

func (s *server) random(_ context.Context, raw json.RawMessage) (any, error) {
	params := randomParams{Width: s.cfg.Width, Height: s.cfg.Height}
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	density, seed := s.cfg.Density, s.cfg.Seed
	if params.Density != nil {
		density = *params.Density
	}
	if params.Seed != nil {
		seed = *params.Seed
	}
	if params.Width < 0 || params.Height < 0 || !inRange(params.Width, params.Height) ||
		!(density > 0 && density <= 1) {
		return nil, errInvalidParams
	}
	var r *rand.Rand
	if seed != 0 {
		r = rand.New(rand.NewSource(seed))
	}
	s.u.InitRandom(params.Width, params.Height, density, r)
	return s.u.Stats(), nil
}

func (s *server) clear(_ context.Context, _ json.RawMessage) (any, error) {
	s.u.Clear()
	return nil, nil
}

type cellParams struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Alive bool `json:"alive"`
}

func (s *server) isAlive(_ context.Context, raw json.RawMessage) (any, error) {
	var params cellParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	return s.u.IsAlive(params.X, params.Y), nil
}

func (s *server) setAlive(_ context.Context, raw json.RawMessage) (any, error) {
	var params cellParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if !inRange(params.X, params.Y) {
		return nil, errInvalidParams
	}
	s.u.SetAlive(params.X, params.Y, params.Alive)
	return nil, nil
}

func (s *server) size(_ context.Context, _ json.RawMessage) (any, error) {
	return sizeParams{s.u.Width(), s.u.Height()}, nil
}

func (s *server) update(_ context.Context, _ json.RawMessage) (any, error) {
	s.u.Update()
	s.maybeCompact()
	return s.u.Stats(), nil
}

func (s *server) jump(_ context.Context, _ json.RawMessage) (any, error) {
	s.u.Jump()
	s.maybeCompact()
	return s.u.Stats(), nil
}

func (s *server) maybeCompact() {
	if s.cfg.MaxNodes > 0 && s.u.Store().Len() > s.cfg.MaxNodes {
		before := s.u.Store().Len()
		s.u.Compact()
		logger.Printf("compacted node store from %d to %d nodes", before, s.u.Store().Len())
	}
}

func (s *server) stats(_ context.Context, _ json.RawMessage) (any, error) {
	return s.u.Stats(), nil
}

type rotateParams struct {
	Clockwise bool `json:"clockwise"`
}

func (s *server) rotate(_ context.Context, raw json.RawMessage) (any, error) {
	var params rotateParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if params.Clockwise {
		s.u.RotateClockwise()
	} else {
		s.u.RotateAntiClockwise()
	}
	return nil, nil
}

type boundsResult struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

func (s *server) bounds(_ context.Context, _ json.RawMessage) (any, error) {
	return boundsResult{
		s.u.LeftBoundary(), s.u.RightBoundary(),
		s.u.TopBoundary(), s.u.BottomBoundary()}, nil
}

func (s *server) array(_ context.Context, _ json.RawMessage) (any, error) {
	return s.u.As2DArray(), nil
}

type patternParams struct {
	Text  string `json:"text"`
	Name  string `json:"name"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Alive bool   `json:"alive"`
}

func (params *patternParams) name() string {
	if params.Name == "" {
		return "[request]"
	}
	return params.Name
}

func (s *server) insert(_ context.Context, raw json.RawMessage) (any, error) {
	var params patternParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if !inRange(params.X, params.Y) {
		return nil, errInvalidParams
	}
	p, err := pattern.Parse(params.name(), params.Text)
	if err != nil {
		return nil, engineError(err)
	}
	pattern.Place(s.u, p, params.X, params.Y, params.Alive)
	return nil, nil
}

func (s *server) load(_ context.Context, raw json.RawMessage) (any, error) {
	var params patternParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if err := pattern.Load(s.u, params.name(), params.Text); err != nil {
		return nil, engineError(err)
	}
	return s.u.Stats(), nil
}

type saveParams struct {
	Format string `json:"format"`
}

func (s *server) save(_ context.Context, raw json.RawMessage) (any, error) {
	var params saveParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	var sb strings.Builder
	p := pattern.Capture(s.u)
	switch params.Format {
	case "", "rle":
		pattern.WriteRLE(&sb, p)
	case "plain":
		pattern.WritePlain(&sb, p)
	default:
		return nil, errInvalidParams
	}
	return sb.String(), nil
}

type drawParams struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   float64 `json:"width"`
}

func (s *server) draw(_ context.Context, raw json.RawMessage) (any, error) {
	var params drawParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if !(params.Width > 0) {
		return nil, errInvalidParams
	}
	rects := []life.Rect{}
	s.u.Draw(func(r life.Rect) { rects = append(rects, r) },
		params.CenterX, params.CenterY, params.Width)
	return rects, nil
}

type nameParams struct {
	Name string `json:"name"`
}

func (s *server) storeSave(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params nameParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, errInvalidParams
	}
	p := pattern.Capture(s.u)
	p.Name = params.Name
	var sb strings.Builder
	pattern.WriteRLE(&sb, p)
	if err := s.db.SavePattern(params.Name, sb.String()); err != nil {
		return nil, engineError(err)
	}
	return nil, nil
}

func (s *server) storeLoad(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params nameParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	rle, err := s.db.Pattern(params.Name)
	if err != nil {
		return nil, engineError(err)
	}
	if err := pattern.Load(s.u, params.Name+".rle", rle); err != nil {
		return nil, engineError(err)
	}
	return s.u.Stats(), nil
}

func (s *server) storeList(_ context.Context, _ json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	names, err := s.db.PatternNames()
	if err != nil {
		return nil, engineError(err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *server) storeDelete(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params nameParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if err := s.db.DelPattern(params.Name); err != nil {
		return nil, engineError(err)
	}
	return nil, nil
}

func (s *server) storeSnapshot(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params nameParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	p := pattern.Capture(s.u)
	var sb strings.Builder
	pattern.WriteRLE(&sb, p)
	snap := storedefs.Snapshot{
		Name:       params.Name,
		Generation: s.u.Generation(),
		Population: s.u.Population(),
		RLE:        sb.String(),
	}
	if snap.Population > 0 {
		snap.X, snap.Y = s.u.LeftBoundary(), s.u.TopBoundary()
	}
	seq, err := s.db.AddSnapshot(snap)
	if err != nil {
		return nil, engineError(err)
	}
	return seq, nil
}

type seqParams struct {
	Seq int `json:"seq"`
}

func (s *server) storeRestore(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params seqParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	snap, err := s.db.Snapshot(params.Seq)
	if err != nil {
		return nil, engineError(err)
	}
	p, err := pattern.ParseRLE("snapshot", snap.RLE)
	if err != nil {
		return nil, engineError(err)
	}
	tmp := life.New(s.u.Store())
	tmp.InitEmpty(s.u.Width(), s.u.Height())
	pattern.Place(tmp, p, snap.X, snap.Y, true)
	tmp.SetGeneration(snap.Generation)
	s.u.Replace(tmp)
	return s.u.Stats(), nil
}

// Range of snapshot sequence numbers; Upto of 0 means no upper limit.
type rangeParams struct {
	From int `json:"from"`
	Upto int `json:"upto"`
}

func (s *server) storeSnapshots(_ context.Context, raw json.RawMessage) (any, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	var params rangeParams
	if err := decode(raw, &params); err != nil {
		return nil, err
	}
	if params.Upto == 0 {
		params.Upto = math.MaxInt
	}
	snaps, err := s.db.Snapshots(params.From, params.Upto)
	if err != nil {
		return nil, engineError(err)
	}
	if snaps == nil {
		snaps = []storedefs.Snapshot{}
	}
	return snaps, nil
}
