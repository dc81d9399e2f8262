// Package naming provides string case conversions shared by the parser and
// generator, plus Rust keyword detection and escaping.
//
// The conversions split on camelCase boundaries and treat acronym runs as a
// single word, so "getHTTPResponse" becomes "get_http_response" rather than
// "get_h_t_t_p_response".
package naming
