// Package http provides optional HTTP adapters for the website builder.
//
// Routes mount under /api/websites:
//   - Presets: /presets
//   - Section schemas: /schemas
//   - Drafts: /{owner}/{wedding} (GET, PUT)
//   - Generation: /{owner}/{wedding}/generate
//   - Projection: /{owner}/{wedding}/render?mode=preview|edit
//   - Payload checks: /{owner}/{wedding}/checks
//   - Sections: /{owner}/{wedding}/sections/{id}/visibility, /{owner}/{wedding}/reorder
//   - Publishing: /{owner}/{wedding}/publish
//
// Host applications can register handlers on their own mux as needed.
package http
