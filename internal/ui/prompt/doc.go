// Package prompt provides simple interactive prompts.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt, used before destructive
//     workspace changes such as deleting a project
package prompt
