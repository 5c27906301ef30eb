package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/randomizedcoder/sorteio/internal/config"
	"github.com/randomizedcoder/sorteio/internal/draw"
	"github.com/randomizedcoder/sorteio/internal/parse"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testConfig() *config.Config {
	return &config.Config{
		Seed:           42,
		RevealInterval: config.DefaultRevealInterval,
		SpinMinTurns:   config.DefaultSpinMinTurns,
		SpinMaxTurns:   config.DefaultSpinMaxTurns,
		GroupLabel:     config.DefaultGroupLabel,
		Placeholder:    config.DefaultPlaceholder,
	}
}

func newObserved(t *testing.T, cfg *config.Config) (*Drawer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewWithSource(cfg, zap.New(core), draw.NewSource(cfg.Seed), clock), logs
}

func TestSource(t *testing.T) {
	_, seed := Source(&config.Config{SecureRandom: true})
	assert.Zero(t, seed)

	_, seed = Source(&config.Config{Seed: 5})
	assert.Equal(t, uint64(5), seed)

	_, seed = Source(&config.Config{})
	assert.NotZero(t, seed)
}

func TestDrawer_Numbers(t *testing.T) {
	d, logs := newObserved(t, testConfig())

	res, err := d.Numbers(NumbersRequest{Min: 1, Max: 60, Count: 6})
	require.NoError(t, err)
	require.Len(t, res.Numbers, 6)

	seen := map[int64]bool{}
	for _, n := range res.Numbers {
		assert.GreaterOrEqual(t, n, int64(1))
		assert.LessOrEqual(t, n, int64(60))
		assert.False(t, seen[n], "duplicate %d", n)
		seen[n] = true
	}

	assert.Equal(t, fixedNow, res.At)
	assert.Contains(t, res.Report, "NUMBER DRAW RESULT")
	assert.Contains(t, res.Report, "Range: 1 to 60")
	assert.Empty(t, res.ExportPath)

	entries := logs.FilterMessage("draw completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "numbers", entries[0].ContextMap()["kind"])
	assert.Equal(t, uint64(42), entries[0].ContextMap()["seed"])
}

func TestDrawer_SameSeedSameResult(t *testing.T) {
	cfg := testConfig()
	names := []string{"ana", "bruno", "carla", "diego", "elisa", "felipe"}

	a := NewWithSource(cfg, zaptest.NewLogger(t), draw.NewSource(7), clock)
	b := NewWithSource(cfg, zaptest.NewLogger(t), draw.NewSource(7), clock)

	ra, err := a.Names(NamesRequest{Names: names, Count: 3})
	require.NoError(t, err)
	rb, err := b.Names(NamesRequest{Names: names, Count: 3})
	require.NoError(t, err)

	assert.Equal(t, ra.Winners, rb.Winners)
	assert.Equal(t, ra.Report, rb.Report)
}

func TestDrawer_Names_Rejected(t *testing.T) {
	d, logs := newObserved(t, testConfig())

	_, err := d.Names(NamesRequest{Count: 1})
	assert.ErrorIs(t, err, draw.ErrEmptyCollection)

	_, err = d.Names(NamesRequest{Names: []string{"a", "b"}, Count: 3})
	assert.ErrorIs(t, err, draw.ErrInvalidDrawConfiguration)

	rejected := logs.FilterMessage("draw rejected").All()
	require.Len(t, rejected, 2)
	assert.Equal(t, zapcore.WarnLevel, rejected[0].Level)
	assert.Zero(t, logs.FilterMessage("draw completed").Len())
}

func TestDrawer_Teams(t *testing.T) {
	cfg := testConfig()
	cfg.GroupLabel = "Equipe"
	d, _ := newObserved(t, cfg)

	members := []string{"a", "b", "c", "d", "e"}
	res, err := d.Teams(TeamsRequest{Members: members, Teams: 2})
	require.NoError(t, err)
	require.Len(t, res.Teams, 2)

	assert.Equal(t, "Equipe 1", res.Teams[0].Label)
	assert.Equal(t, "Equipe 2", res.Teams[1].Label)
	assert.Len(t, res.Teams[0].Members, 3)
	assert.Len(t, res.Teams[1].Members, 2)

	var all []string
	for _, g := range res.Teams {
		all = append(all, g.Members...)
	}
	assert.ElementsMatch(t, members, all)
	assert.Contains(t, res.Report, "Equipe 1 (3 members):")
}

func TestDrawer_Wheel(t *testing.T) {
	d, _ := newObserved(t, testConfig())
	items := []string{"pizza", "sushi", "tacos", "ramen"}

	first, err := d.Wheel(WheelRequest{Items: items})
	require.NoError(t, err)
	assert.Equal(t, items[first.Index], first.Winner)

	idx, err := draw.ResolveWinner(len(items), first.State.FinalRotationDegrees)
	require.NoError(t, err)
	assert.Equal(t, idx, first.Index)

	// The second spin starts where the first one stopped.
	second, err := d.Wheel(WheelRequest{Items: items})
	require.NoError(t, err)
	start := first.State.FinalRotationDegrees - 360*float64(int(first.State.FinalRotationDegrees/360))
	delta := second.State.FinalRotationDegrees - start
	assert.GreaterOrEqual(t, delta, float64(config.DefaultSpinMinTurns*360))
	assert.Less(t, delta, float64((config.DefaultSpinMaxTurns+1)*360))
}

func TestDrawer_Wheel_NeedsTwoItems(t *testing.T) {
	d, _ := newObserved(t, testConfig())

	_, err := d.Wheel(WheelRequest{})
	assert.ErrorIs(t, err, draw.ErrEmptyCollection)

	_, err = d.Wheel(WheelRequest{Items: []string{"solo"}})
	assert.ErrorIs(t, err, draw.ErrInvalidDrawConfiguration)
}

func TestDrawer_Comments(t *testing.T) {
	cfg := testConfig()
	cfg.Placeholder = "Sem texto"
	d, _ := newObserved(t, cfg)

	raw := "ana: eu quero\nbruno\ncarla: boa sorte\n"
	res, err := d.Comments(CommentsRequest{Raw: raw, Winners: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Winners, 2)
	assert.NotEqual(t, res.Winners[0], res.Winners[1])
	assert.Contains(t, res.Report, "Total comments: 3")

	all, err := parse.Comments(raw, cfg.Placeholder)
	require.NoError(t, err)
	for _, w := range res.Winners {
		assert.Contains(t, all, w)
	}
}

func TestDrawer_Comments_Errors(t *testing.T) {
	d, _ := newObserved(t, testConfig())

	_, err := d.Comments(CommentsRequest{Raw: "  \n\n", Winners: 1})
	assert.ErrorIs(t, err, parse.ErrParseNoResults)

	_, err = d.Comments(CommentsRequest{Raw: "", Winners: 1})
	assert.ErrorIs(t, err, draw.ErrEmptyCollection)

	_, err = d.Comments(CommentsRequest{Raw: "a: b", Winners: 0})
	assert.ErrorIs(t, err, draw.ErrInvalidDrawConfiguration)
}

func TestDrawer_FakeComments(t *testing.T) {
	d, _ := newObserved(t, testConfig())

	raw := parse.Format(d.FakeComments(20), "")
	res, err := d.Comments(CommentsRequest{Raw: raw, Winners: 3})
	require.NoError(t, err)
	assert.Equal(t, 20, res.Total)
}

func TestDrawer_Export(t *testing.T) {
	cfg := testConfig()
	cfg.ExportDir = t.TempDir()
	d, logs := newObserved(t, cfg)

	res, err := d.Names(NamesRequest{Names: []string{"x", "y"}, Count: 1})
	require.NoError(t, err)
	require.NotEmpty(t, res.ExportPath)
	assert.True(t, strings.HasSuffix(res.ExportPath, "names_20240309_140507.txt"))

	b, err := os.ReadFile(res.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, res.Report, string(b))
	assert.Equal(t, 1, logs.FilterMessage("report exported").Len())
}

func TestDrawer_ExportFailure(t *testing.T) {
	cfg := testConfig()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.ExportDir = filepath.Join(blocker, "sub")
	d, logs := newObserved(t, cfg)

	_, err := d.Names(NamesRequest{Names: []string{"x", "y"}, Count: 1})
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("export failed").Len())
}

func TestDrawer_Audit(t *testing.T) {
	d, logs := newObserved(t, testConfig())

	stats, err := d.Audit(AuditRequest{Kind: AuditSample, N: 6, K: 2, Trials: 6000})
	require.NoError(t, err)
	assert.Len(t, stats.Counts, 6)
	assert.True(t, stats.Fair(4))

	stats, err = d.Audit(AuditRequest{Kind: AuditWheel, N: 5, Trials: 5000})
	require.NoError(t, err)
	assert.True(t, stats.Fair(4))

	stats, err = d.Audit(AuditRequest{Kind: AuditPartition, N: 6, K: 3, Trials: 6000})
	require.NoError(t, err)
	assert.True(t, stats.Fair(4))

	assert.Equal(t, 3, logs.FilterMessage("audit completed").Len())

	_, err = d.Audit(AuditRequest{Kind: "dice", N: 6, Trials: 10})
	assert.ErrorIs(t, err, draw.ErrInvalidDrawConfiguration)
}

func TestDrawer_Audit_BadSize(t *testing.T) {
	d, logs := newObserved(t, testConfig())

	for _, kind := range []string{AuditSample, AuditWheel, AuditPartition} {
		_, err := d.Audit(AuditRequest{Kind: kind, N: -1, K: 2, Trials: 10})
		assert.ErrorIs(t, err, draw.ErrInvalidDrawConfiguration, kind)

		_, err = d.Audit(AuditRequest{Kind: kind, N: 0, K: 2, Trials: 10})
		assert.ErrorIs(t, err, draw.ErrEmptyCollection, kind)
	}
	assert.Equal(t, 6, logs.FilterMessage("draw rejected").Len())
}
