package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ezrec/wordstack/eval"
	"github.com/ezrec/wordstack/memory"
	"github.com/ezrec/wordstack/stack"
)

func newEnv(t *testing.T, capacity int) *Env {
	pool := memory.NewPool(64)
	s, err := stack.Allocate(pool, capacity)
	assert.NoError(t, err)

	return &Env{Stack: s, Pool: pool, Logger: zap.NewNop()}
}

func TestEnv_Defines(t *testing.T) {
	assert := assert.New(t)

	env := newEnv(t, 16)
	defines := env.defines()
	assert.Equal("16", defines["STACK_CAPACITY"])
	assert.Equal("64", defines["POOL_WORDS"])
	assert.NoError((&definesCmd{}).Run(env))
}

func TestEvalCmd_Run(t *testing.T) {
	assert := assert.New(t)

	env := newEnv(t, 16)
	assert.NoError((&evalCmd{Expr: []string{"(+", "1", "2)"}}).Run(env))
	assert.True(env.Stack.IsEmpty())

	err := (&evalCmd{Expr: []string{"(+ 1"}}).Run(env)
	assert.ErrorIs(err, eval.ErrSyntax)

	err = (&evalCmd{Expr: []string{"(+ 1 (+ 2 (+ 3 (+ 4 5))))"}}).Run(env)
	assert.ErrorIs(err, eval.ErrOutOfStack)
	assert.True(env.Stack.IsEmpty())
}

func TestRunCmd_Run(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "push.star")
	assert.NoError(os.WriteFile(path, []byte("push(1, 2, 3)\ndrop(1)\n"), 0o644))

	env := newEnv(t, 4)
	assert.NoError((&runCmd{Script: path, Dump: true}).Run(env))
	assert.Equal(2, env.Stack.Len())
	assert.Equal(3, env.Stack.HighWater())

	assert.NoError(os.WriteFile(path, []byte("push(1, 2, 3, 4, 5)\n"), 0o644))
	err := (&runCmd{Script: path}).Run(env)
	assert.ErrorIs(err, stack.ErrCapacityExceeded)
	assert.Equal(2, env.Stack.Len())
}

func parseCLI(t *testing.T, args ...string) (*kong.Context, *CLI) {
	var cli CLI

	parser, err := kong.New(&cli, kong.Name("wordstack"))
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	assert.NoError(t, err)

	return ctx, &cli
}

func TestRun_Metrics(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	conf := filepath.Join(dir, "wordstack.toml")
	assert.NoError(os.WriteFile(conf, []byte("[stack]\ncapacity = 16\n[pool]\nwords = 64\n[log]\nlevel = \"error\"\n"), 0o644))
	prom := filepath.Join(dir, "wordstack.prom")

	ctx, cli := parseCLI(t, "--config", conf, "--metrics", prom, "eval", "(+ 1 2)")
	assert.NoError(run(ctx, cli))

	data, err := os.ReadFile(prom)
	assert.NoError(err)
	text := string(data)
	assert.Contains(text, `wordstack_high_water{stack="main"} 6`)
	assert.Contains(text, `wordstack_capacity{stack="main"} 16`)
	assert.Contains(text, `wordstack_depth{stack="main"} 0`)
}

func TestRun_Error(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	conf := filepath.Join(dir, "wordstack.toml")
	assert.NoError(os.WriteFile(conf, []byte("[stack]\ncapacity = 4\n[log]\nlevel = \"error\"\n"), 0o644))
	prom := filepath.Join(dir, "wordstack.prom")

	// Metrics are still written when the command fails.
	ctx, cli := parseCLI(t, "--config", conf, "--metrics", prom, "eval", "(+ 1 (+ 2 3))")
	err := run(ctx, cli)
	assert.ErrorIs(err, eval.ErrOutOfStack)

	data, err := os.ReadFile(prom)
	assert.NoError(err)
	assert.Contains(string(data), `wordstack_high_water{stack="main"} 1`)
}
