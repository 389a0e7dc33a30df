// Package view provides a non-owning, read-only filtered view over a text buffer.
//
// A View exposes only the characters of its backing buffer for which a
// predicate holds. The buffer is never copied or modified: every derived view
// (Substr, Split, Compose) shares the same backing buffer and differs only in
// its predicate. Character data is materialized on demand only, through
// String, Bytes, WriteTo and the comparison helpers.
//
// Basic usage:
//
//	v := view.New("a1b2c3", view.Char(isAlpha))
//	v.Size()        // 3
//	v.String()      // "abc"
//	c, _ := v.At(1) // 'b'
//
//	w := view.New("hello world", nil)
//	sub, _ := view.SubstrN(w, 6, 5)
//	sub.String()    // "world"
//
//	for _, part := range view.Split(view.New("c,a,t", nil), view.New(",", nil)) {
//	    fmt.Println(part) // c, a, t
//	}
//
// # Positions
//
// Two coordinate systems are used throughout the package. A logical index is
// an ordinal position among the characters that satisfy the predicate. A raw
// offset is a byte position in the backing buffer. Size, At, Index and Substr
// take logical indexes; Cursor, RawOffset and Predicate work with raw offsets.
//
// # Lifetime
//
// Views built with New reference an immutable Go string. Views built with
// FromBytes alias the caller's slice; the caller must not modify the slice
// while any view derived from it is in use. The logical size is computed once
// at construction and is not refreshed. Verify reports whether the buffer
// still agrees with the cached size.
//
// Views are not safe for concurrent mutation (Take), but any number of
// goroutines may read views over the same buffer.
package view
