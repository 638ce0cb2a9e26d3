// Package template parses track-size templates such as "1fr 1fr" or
// "50px 60px" into a track count and per-track sizes.
//
// # Tokens
//
//   - Fixed length: "50px", "50vp" or a bare number "50"
//   - Flex weight: "1fr", "2.5fr"
//   - Percentage of the available size: "25%"
//   - Repetition: "repeat(3, 1fr)", "repeat(2, 100px 1fr)"
//   - Auto fill: "repeat(auto-fill, 120px)" fits as many fixed tracks as the
//     available size allows (at least one)
//
// Fixed and percentage tracks are reserved first together with the gaps
// between tracks; flex tracks share what remains in proportion to their
// weight.
//
// # Failure Mode
//
// [Parse] fails soft: any malformed token makes the whole template resolve
// to a single flexible track spanning the available size. [ParseStrict]
// returns the same fallback together with an INVALID_TEMPLATE error, which
// configuration validation uses to reject bad input early.
//
//	t := template.Parse("1fr 2fr", 300, 0)
//	// t.Count == 2, t.Sizes == []float64{100, 200}
package template
