package main

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ezrec/wordstack/eval"
	"github.com/ezrec/wordstack/internal"
	"github.com/ezrec/wordstack/memory"
	"github.com/ezrec/wordstack/script"
	"github.com/ezrec/wordstack/stack"
)

// Env is handed to every command.
type Env struct {
	Stack  *stack.Stack
	Pool   *memory.Pool
	Logger *zap.Logger
}

func (env *Env) defines() map[string]string {
	return maps.Collect(internal.IterSeq2Concat(env.Stack.Defines(), env.Pool.Defines()))
}

type runCmd struct {
	Script string `arg:"" help:"Starlark script." type:"existingfile"`
	Dump   bool   `help:"Print the stack when the script finishes."`
}

func (cmd *runCmd) Run(env *Env) error {
	sc := &script.Script{
		Stack:   env.Stack,
		Logger:  env.Logger,
		Defines: []iter.Seq2[string, string]{env.Stack.Defines(), env.Pool.Defines()},
	}

	_, err := sc.Run(cmd.Script, nil)
	if err != nil {
		return err
	}

	if cmd.Dump {
		fmt.Print(env.Stack.String())
	}
	fmt.Printf("high water: %d/%d\n", env.Stack.HighWater(), env.Stack.Cap())

	return nil
}

type evalCmd struct {
	Expr []string `arg:"" help:"Expression, e.g. '(+ 1 (* 2 3))'."`
}

func (cmd *evalCmd) Run(env *Env) error {
	prog, err := eval.Parse("<args>", strings.Join(cmd.Expr, " "))
	if err != nil {
		return err
	}

	if need := eval.Depth(prog); need > env.Stack.Cap() {
		env.Logger.Warn("expression deeper than the stack",
			zap.Int("need", need),
			zap.Int("capacity", env.Stack.Cap()))
	}

	ev := eval.NewEvaluator(env.Stack)
	ev.Logger = env.Logger
	value, err := ev.Eval(prog)
	if err != nil {
		return err
	}

	fmt.Println(value)

	return nil
}

type definesCmd struct{}

func (cmd *definesCmd) Run(env *Env) error {
	defines := env.defines()
	for _, key := range slices.Sorted(maps.Keys(defines)) {
		fmt.Printf("%v=%v\n", key, defines[key])
	}

	return nil
}
