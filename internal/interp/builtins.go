package interp

import "fmt"

// builtinNames is the closed set spec.md §4.5 names: dispatched ahead of
// any user-level function lookup, so a program can never shadow them by
// declaring a same-named fn (the analyzer's isBuiltin in
// internal/analysis/analyzer.go mirrors this set for type-checking call
// sites).
var builtinNames = map[string]bool{
	"puts": true, "print": true, "print_int": true, "println": true,
	"putchar": true, "getchar": true, "exit": true, "__builtin_putstr": true,
}

func isBuiltinName(name string) bool { return builtinNames[name] }

// callBuiltin dispatches host I/O (spec.md §4.5's builtin table). exit
// unwinds via panic/recover (exitSignal) since it must escape arbitrarily
// deep call frames, not just the current one.
func (it *Interp) callBuiltin(name string, args []Value) Value {
	switch name {
	case "puts":
		if len(args) > 0 {
			fmt.Fprintln(it.out, args[0].S)
		}
		return VoidValue()

	case "print":
		if len(args) > 0 {
			fmt.Fprint(it.out, args[0].String())
		}
		return VoidValue()

	case "print_int":
		if len(args) > 0 {
			fmt.Fprint(it.out, args[0].I)
		}
		return VoidValue()

	case "println":
		if len(args) > 0 {
			fmt.Fprintln(it.out, args[0].String())
		} else {
			fmt.Fprintln(it.out)
		}
		return VoidValue()

	case "__builtin_putstr":
		// Mirrors libc puts(3), which io_print's injected wrapper is
		// declared against: writes the string and a trailing newline.
		// The len argument is unused here since Value strings already
		// carry their own length; a native backend would honor it when
		// calling through to the real libc symbol.
		if len(args) > 0 {
			fmt.Fprintln(it.out, args[0].S)
		}
		return VoidValue()

	case "putchar":
		if len(args) > 0 {
			it.out.WriteByte(byte(args[0].I))
		}
		return VoidValue()

	case "getchar":
		b, err := it.in.ReadByte()
		if err != nil {
			return IntValue(-1)
		}
		return IntValue(int64(b))

	case "exit":
		code := 0
		if len(args) > 0 {
			code = int(args[0].I)
		}
		it.out.Flush()
		panic(exitSignal{code: code})

	default:
		return VoidValue()
	}
}
