// Package cdoc extracts structured documentation records from annotated
// source comments and hands them to renderers.
//
// A doc-comment is a block opened with "/**" and closed with "*/". The text
// that follows the comment, up to the first ";" or ")", is kept as a short
// signature preview of whatever the comment documents. Tag lines (@brief,
// @param, @return) are parsed into typed fields.
//
// This package contains domain types, interfaces and the pure extraction
// engine, following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// sqlite/, etree/, htmltomarkdown/).
package cdoc
