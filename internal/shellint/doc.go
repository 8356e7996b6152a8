package shellint

import _ "embed"

// ProtocolDoc is the Markdown reference printed by `commas protocol`.
//
//go:embed protocol.md
var ProtocolDoc string
