// Package sections contains the built-in block renderers: hero, story,
// event_info, gallery, rsvp, map, timeline and gift_list. Blocks only ever
// reference colours and fonts through render.ColorVar and render.FontVar.
package sections
