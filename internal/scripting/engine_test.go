package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestShippedDamageScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	assert.InDelta(t, 1000, e.CalcHit(HitContext{Kind: HitProjectile, BaseDamage: 1000, TickRate: 1.0 / 32}), 1e-9)
	assert.InDelta(t, 10.0/32, e.CalcHit(HitContext{Kind: HitContact, BaseDamage: 10, TickRate: 1.0 / 32}), 1e-9)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "combat"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "combat", "rules.lua"), []byte(body), 0o644))
	return dir
}

func TestCalcHitReadsTarget(t *testing.T) {
	dir := writeScript(t, `
function calc_hit(ctx)
  if ctx.target.is_player then
    return ctx.target.max_health / 2
  end
  return ctx.target.health
end
`)
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 50.0, e.CalcHit(HitContext{TargetIsPlayer: true, TargetMax: 100}))
	assert.Equal(t, 7.0, e.CalcHit(HitContext{TargetHealth: 7}))
}

func TestCalcHitFallsBack(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	missing, err := NewEngine(t.TempDir(), log)
	require.NoError(t, err)
	defer missing.Close()
	assert.Equal(t, 12.0, missing.CalcHit(HitContext{BaseDamage: 12}))
	assert.Equal(t, 1, logs.FilterMessage("lua function calc_hit not found").Len())

	failing, err := NewEngine(writeScript(t, `function calc_hit(ctx) error("nope") end`), log)
	require.NoError(t, err)
	defer failing.Close()
	assert.Equal(t, 3.0, failing.CalcHit(HitContext{BaseDamage: 3}))
	assert.Equal(t, 1, logs.FilterMessage("lua calc_hit error").Len())

	wrongType, err := NewEngine(writeScript(t, `function calc_hit(ctx) return "lots" end`), log)
	require.NoError(t, err)
	defer wrongType.Close()
	assert.Equal(t, 4.0, wrongType.CalcHit(HitContext{BaseDamage: 4}))

	negative, err := NewEngine(writeScript(t, `function calc_hit(ctx) return -5 end`), log)
	require.NoError(t, err)
	defer negative.Close()
	assert.Zero(t, negative.CalcHit(HitContext{BaseDamage: 4}))
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	_, err := NewEngine(writeScript(t, `function (`), zaptest.NewLogger(t))
	assert.Error(t, err)
}
