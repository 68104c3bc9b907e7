// Package canonical renders metadata documents in the fixed text layout used
// for committed metadata scripts.
//
// The layout is not generic pretty-printing; reviewers diff these files, so
// every byte is fixed by the rules below (n is the current indent):
//
//   - Objects open with "{" and a newline. Each entry sits on its own line
//     indented n+4 spaces. Entries are joined by ",\n" and the closing "}"
//     follows the last entry directly.
//   - Lists of primitives stay on one line: [ v1, v2  ] (two spaces before
//     the closing bracket).
//   - Lists holding objects indent by 2 instead of 4: with inner = n+2, each
//     element starts on a new line at 2*inner spaces, its entries are joined
//     by ",\n" plus that padding, and the element's first entry follows "{"
//     on the same line. Such lists may hold only objects.
//
// The indent is threaded through every call; there is no encoder state.
package canonical
