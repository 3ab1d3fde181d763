// Package config loads pick's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pick/config.toml
//  3. If the file doesn't exist, return Default()
//
// # TOML Format
//
//	[window]
//	item_height = 1        # rows per item
//	viewport_count = 0     # 0: derive from the terminal height
//	buffer = 5             # rows kept above and below the viewport
//	multi_select = false
//	match = "substring"    # or "fuzzy"
//
//	[[list]]
//	name = "hosts"
//	path = "~/hosts.txt"
//	tail = false
//	max_items = 100000
//
//	[[list]]
//	name = "services"
//	url = "http://127.0.0.1:7487/api/items"
//	poll_seconds = 30
//
// Every field is optional except a list's name and exactly one of path or
// url. Omitted item_height and buffer keep their defaults, while an explicit
// buffer = 0 disables buffering. Paths get tilde expansion.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors ("parse config: ...") and values that
// fail Validate. A missing file is not an error, so pick works out of the
// box with piped input or --file.
package config
