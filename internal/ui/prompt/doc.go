// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr so stdout stays clean for piping, e.g.
// cd "$(treefrog path feature)".
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
//   - [Select]: Single selection from a list
package prompt
