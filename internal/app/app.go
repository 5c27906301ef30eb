// Package app wires the draw engine to configuration, logging and reports.
// Every operation validates through the engine, logs the outcome and returns
// the rendered report alongside the raw result.
package app

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/sorteio/internal/config"
	"github.com/randomizedcoder/sorteio/internal/draw"
	"github.com/randomizedcoder/sorteio/internal/fairness"
	"github.com/randomizedcoder/sorteio/internal/parse"
	"github.com/randomizedcoder/sorteio/internal/report"
)

// Drawer runs draws for one session. It is not safe for concurrent use: the
// wheel keeps its rotation between spins.
type Drawer struct {
	cfg      *config.Config
	logger   *zap.Logger
	rng      draw.Source
	seed     uint64
	now      func() time.Time
	rotation float64
}

// Source picks the random source described by cfg and returns the seed that
// replays it. Secure sources cannot be replayed and report seed 0.
func Source(cfg *config.Config) (draw.Source, uint64) {
	switch {
	case cfg.SecureRandom:
		return draw.NewSecureSource(), 0
	case cfg.Seed != 0:
		return draw.NewSource(cfg.Seed), cfg.Seed
	default:
		seed := uint64(time.Now().UnixNano())
		return draw.NewSource(seed), seed
	}
}

// New creates a Drawer using the source selected by cfg.
func New(cfg *config.Config, logger *zap.Logger) *Drawer {
	rng, seed := Source(cfg)
	return &Drawer{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		seed:   seed,
		now:    time.Now,
	}
}

// NewWithSource creates a Drawer with a custom source and clock (for testing).
func NewWithSource(cfg *config.Config, logger *zap.Logger, rng draw.Source, now func() time.Time) *Drawer {
	return &Drawer{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		seed:   cfg.Seed,
		now:    now,
	}
}

// Seed returns the seed that replays this session, or 0 for secure sources.
func (d *Drawer) Seed() uint64 {
	return d.seed
}

// Result is the part every draw result shares.
type Result struct {
	At         time.Time
	Report     string
	ExportPath string
}

// NumbersRequest asks for Count integers from [Min, Max].
type NumbersRequest struct {
	Min, Max     int64
	Count        int
	AllowRepeats bool
}

// NumbersResult holds the drawn numbers in draw order.
type NumbersResult struct {
	Result
	Numbers []int64
}

// Numbers runs a number draw.
func (d *Drawer) Numbers(req NumbersRequest) (*NumbersResult, error) {
	nums, err := draw.Numbers(d.rng, req.Min, req.Max, req.Count, req.AllowRepeats)
	if err != nil {
		return nil, d.rejected(report.KindNumbers, err)
	}

	at := d.now()
	res := &NumbersResult{Numbers: nums}
	res.Result, err = d.finish(report.KindNumbers, at, report.Numbers(report.NumbersReport{
		At: at, Min: req.Min, Max: req.Max, Results: nums,
	}))
	if err != nil {
		return nil, err
	}

	d.logger.Info("draw completed",
		zap.String("kind", report.KindNumbers),
		zap.Int64("min", req.Min),
		zap.Int64("max", req.Max),
		zap.Int("count", req.Count),
		zap.Bool("allow_repeats", req.AllowRepeats),
		zap.Uint64("seed", d.seed),
	)
	return res, nil
}

// NamesRequest asks for Count names out of Names.
type NamesRequest struct {
	Names        []string
	Count        int
	AllowRepeats bool
}

// NamesResult holds the winners in draw order.
type NamesResult struct {
	Result
	Winners []string
}

// Names runs a name draw.
func (d *Drawer) Names(req NamesRequest) (*NamesResult, error) {
	winners, err := draw.Sample(d.rng, req.Names, req.Count, req.AllowRepeats)
	if err != nil {
		return nil, d.rejected(report.KindNames, err)
	}

	at := d.now()
	res := &NamesResult{Winners: winners}
	res.Result, err = d.finish(report.KindNames, at, report.Names(report.NamesReport{
		At: at, Total: len(req.Names), Winners: winners,
	}))
	if err != nil {
		return nil, err
	}

	d.logger.Info("draw completed",
		zap.String("kind", report.KindNames),
		zap.Int("items", len(req.Names)),
		zap.Int("count", req.Count),
		zap.Bool("allow_repeats", req.AllowRepeats),
		zap.Uint64("seed", d.seed),
	)
	return res, nil
}

// TeamsRequest asks to split Members into Teams groups.
type TeamsRequest struct {
	Members []string
	Teams   int
}

// TeamsResult holds the labelled groups.
type TeamsResult struct {
	Result
	Teams []draw.Group[string]
}

// Teams runs a team partition. Groups are named with the configured label.
func (d *Drawer) Teams(req TeamsRequest) (*TeamsResult, error) {
	label := func(i int) string { return fmt.Sprintf("%s %d", d.cfg.GroupLabel, i+1) }

	teams, err := draw.PartitionLabeled(d.rng, req.Members, req.Teams, label)
	if err != nil {
		return nil, d.rejected(report.KindTeams, err)
	}

	at := d.now()
	res := &TeamsResult{Teams: teams}
	res.Result, err = d.finish(report.KindTeams, at, report.Teams(report.TeamsReport{
		At: at, Total: len(req.Members), Teams: teams,
	}))
	if err != nil {
		return nil, err
	}

	d.logger.Info("draw completed",
		zap.String("kind", report.KindTeams),
		zap.Int("items", len(req.Members)),
		zap.Int("groups", req.Teams),
		zap.Uint64("seed", d.seed),
	)
	return res, nil
}

// WheelRequest spins a wheel with one segment per item.
type WheelRequest struct {
	Items []string
}

// WheelResult holds the spin outcome.
type WheelResult struct {
	Result
	State  draw.WheelState
	Index  int
	Winner string
}

// Wheel spins the wheel from where the previous spin stopped.
func (d *Drawer) Wheel(req WheelRequest) (*WheelResult, error) {
	opts := draw.SpinOptions{MinTurns: d.cfg.SpinMinTurns, MaxTurns: d.cfg.SpinMaxTurns}

	spin, err := draw.Spin(d.rng, len(req.Items), d.rotation, opts)
	if err != nil {
		return nil, d.rejected(report.KindWheel, err)
	}
	d.rotation = math.Mod(spin.State.FinalRotationDegrees, 360)

	at := d.now()
	res := &WheelResult{State: spin.State, Index: spin.Winner, Winner: req.Items[spin.Winner]}
	res.Result, err = d.finish(report.KindWheel, at, report.Wheel(report.WheelReport{
		At: at, Items: req.Items, State: spin.State, Winner: spin.Winner,
	}))
	if err != nil {
		return nil, err
	}

	d.logger.Info("draw completed",
		zap.String("kind", report.KindWheel),
		zap.Int("items", len(req.Items)),
		zap.Float64("final_rotation", spin.State.FinalRotationDegrees),
		zap.Int("winner_index", spin.Winner),
		zap.Uint64("seed", d.seed),
	)
	return res, nil
}

// CommentsRequest draws Winners comments out of Raw, one "author: text" per
// line.
type CommentsRequest struct {
	Raw          string
	Winners      int
	AllowRepeats bool
}

// CommentsResult holds the winning comments and the parsed pool size.
type CommentsResult struct {
	Result
	Total   int
	Winners []parse.Comment
}

// Comments parses Raw and runs a comment draw.
func (d *Drawer) Comments(req CommentsRequest) (*CommentsResult, error) {
	pool, err := parse.Comments(req.Raw, d.cfg.Placeholder)
	if err != nil {
		return nil, d.rejected(report.KindComments, err)
	}

	winners, err := draw.Sample(d.rng, pool, req.Winners, req.AllowRepeats)
	if err != nil {
		return nil, d.rejected(report.KindComments, err)
	}

	at := d.now()
	res := &CommentsResult{Total: len(pool), Winners: winners}
	res.Result, err = d.finish(report.KindComments, at, report.Comments(report.CommentsReport{
		At: at, Total: len(pool), Winners: winners,
	}))
	if err != nil {
		return nil, err
	}

	d.logger.Info("draw completed",
		zap.String("kind", report.KindComments),
		zap.Int("items", len(pool)),
		zap.Int("count", req.Winners),
		zap.Uint64("seed", d.seed),
	)
	return res, nil
}

// FakeComments returns n simulated comments drawn from the session source.
func (d *Drawer) FakeComments(n int) []parse.Comment {
	return parse.FakeComments(d.rng, n)
}

// Audit kinds.
const (
	AuditSample    = "sample"
	AuditWheel     = "wheel"
	AuditPartition = "partition"
)

// AuditRequest describes a Monte Carlo audit. K is the sample size for
// AuditSample and the group count for AuditPartition.
type AuditRequest struct {
	Kind   string
	N, K   int
	Trials int
}

// Audit runs a fairness audit on the session source.
func (d *Drawer) Audit(req AuditRequest) (fairness.Stats, error) {
	var (
		stats fairness.Stats
		err   error
	)
	switch req.Kind {
	case AuditSample:
		stats, err = fairness.SamplePositions(d.rng, req.N, req.K, req.Trials)
	case AuditWheel:
		opts := draw.SpinOptions{MinTurns: d.cfg.SpinMinTurns, MaxTurns: d.cfg.SpinMaxTurns}
		stats, err = fairness.WheelSegments(d.rng, req.N, req.Trials, opts)
	case AuditPartition:
		stats, err = fairness.PartitionSlots(d.rng, req.N, req.K, req.Trials)
	default:
		err = fmt.Errorf("%w: unknown audit %q", draw.ErrInvalidDrawConfiguration, req.Kind)
	}
	if err != nil {
		return fairness.Stats{}, d.rejected("audit", err)
	}

	d.logger.Info("audit completed",
		zap.String("kind", req.Kind),
		zap.Int("n", req.N),
		zap.Int("trials", req.Trials),
		zap.Float64("chi_square", stats.ChiSquare),
		zap.Int("dof", stats.DegreesOfFreedom()),
		zap.Uint64("seed", d.seed),
	)
	return stats, nil
}

// finish exports content when an export directory is configured.
func (d *Drawer) finish(kind string, at time.Time, content string) (Result, error) {
	res := Result{At: at, Report: content}
	if d.cfg.ExportDir == "" {
		return res, nil
	}

	path, err := report.Write(d.cfg.ExportDir, kind, content, at)
	if err != nil {
		d.logger.Error("export failed", zap.String("kind", kind), zap.Error(err))
		return Result{}, err
	}
	d.logger.Info("report exported", zap.String("kind", kind), zap.String("path", path))
	res.ExportPath = path
	return res, nil
}

func (d *Drawer) rejected(kind string, err error) error {
	d.logger.Warn("draw rejected", zap.String("kind", kind), zap.Error(err))
	return err
}
