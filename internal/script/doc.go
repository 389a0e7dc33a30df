// Package script compiles Lua source into view predicates.
//
// This package wraps the gopher-lua library to provide:
//   - A sandboxed Lua engine with only the base, table, string and math libraries
//   - Compilation of Lua chunks that define an accept function
//   - Cancellation of runaway scripts through a context
//
// # Scripts
//
// A script must define a global function accept(c, off), where c is a
// one-character string and off is the 0-based raw offset of the character
// in the backing buffer. The function returns true to keep the character:
//
//	eng := script.NewEngine()
//	defer eng.Close()
//
//	s, err := eng.Compile("vowels", `
//	    function accept(c, off)
//	        return string.find("aeiou", c, 1, true) ~= nil
//	    end`)
//	if err != nil {
//	    return err
//	}
//	v := view.New("education", s.Predicate())
//
// CompileExpr wraps a function body for one-line filters:
//
//	s, _ := eng.CompileExpr("noX", `return c ~= "x"`)
//
// # Errors
//
// A predicate cannot return an error. When accept raises an error the
// character is rejected, the error is logged and kept, and Script.Err
// returns the first such error.
//
// The engine is not goroutine-safe beyond its internal lock: predicates from
// the same engine serialize on it.
package script
