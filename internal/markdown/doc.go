// Package markdown renders the rich-text fields of section payloads (story
// bodies, timeline entries, event notes) into HTML fragments. Output is
// scrubbed with a bluemonday policy when sanitising is requested.
package markdown
